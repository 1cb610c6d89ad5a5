package notify

import "time"

// Booking carries everything needed to compose a confirmation message.
// Delivery is an external effect; the core only emits this payload.
type Booking struct {
	To           string
	ClientName   string
	When         time.Time
	ServiceName  string
	BarberName   string
	LocationName string
	CancelToken  string
}

type Cancellation struct {
	To          string
	ClientName  string
	When        time.Time
	ServiceName string
}

type Notifier interface {
	NotifyBooked(b Booking) error
	NotifyCancelled(c Cancellation) error
}
