package notify

import "log"

type event struct {
	booking      *Booking
	cancellation *Cancellation
}

// Dispatcher delivers notifications off the request path. Booking success
// never depends on delivery: failures are logged, a full queue drops.
type Dispatcher struct {
	notifier Notifier
	queue    chan event
}

func NewDispatcher(notifier Notifier) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if d.notifier == nil {
			continue
		}

		var err error
		switch {
		case ev.booking != nil:
			err = d.notifier.NotifyBooked(*ev.booking)
		case ev.cancellation != nil:
			err = d.notifier.NotifyCancelled(*ev.cancellation)
		}

		if err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) BookingCreated(b Booking) {
	if b.To == "" {
		return
	}
	d.enqueue(event{booking: &b})
}

func (d *Dispatcher) BookingCancelled(c Cancellation) {
	if c.To == "" {
		return
	}
	d.enqueue(event{cancellation: &c})
}

func (d *Dispatcher) enqueue(ev event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("notify queue full, dropping event")
	}
}
