package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/minorebarber/booking-api/internal/backup"
	"github.com/minorebarber/booking-api/internal/timezone"
	ucBooking "github.com/minorebarber/booking-api/internal/usecase/booking"
)

// Sweeper runs the nightly cleanup: once a day at the configured hour it
// deletes past appointments and, when a bucket is configured, uploads a
// snapshot afterwards. Revenue is untouched; checkout already wrote it.
type Sweeper struct {
	sweep    *ucBooking.Sweep
	exporter *backup.Exporter
	hour     int
}

func New(sweep *ucBooking.Sweep, exporter *backup.Exporter, hour int) *Sweeper {
	if hour < 0 || hour > 23 {
		hour = 22
	}
	return &Sweeper{sweep: sweep, exporter: exporter, hour: hour}
}

// Start launches the loop. It stops when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	for {
		wait := time.Until(s.nextRun(timezone.Now()))

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		s.runOnce(ctx)
	}
}

func (s *Sweeper) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *Sweeper) runOnce(ctx context.Context) {
	deleted, err := s.sweep.Execute(ctx)
	if err != nil {
		log.Println("sweeper error:", err)
		return
	}
	log.Printf("sweeper: deleted %d past appointments", deleted)

	if s.exporter == nil {
		return
	}

	key, err := s.exporter.Export(ctx, timezone.Now())
	if err != nil {
		log.Println("sweeper export error:", err)
		return
	}
	log.Printf("sweeper: snapshot uploaded as %s", key)
}
