package booking

import (
	"context"
	"time"

	"github.com/minorebarber/booking-api/internal/audit"
	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/timezone"
)

// Sweep deletes every appointment that started before today, whatever its
// status. Revenue was already written at checkout, so nothing is lost.
// Running it mid-day is harmless: it never touches today's rows.
type Sweep struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSweep(repo domain.Repository, auditDispatcher *audit.Dispatcher) *Sweep {
	return &Sweep{repo: repo, audit: auditDispatcher}
}

func (uc *Sweep) Execute(ctx context.Context) (int64, error) {
	now := timezone.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	count, err := uc.repo.DeleteAppointmentsBefore(ctx, startOfToday)
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointments_swept",
		Entity:   "appointment",
		Metadata: map[string]any{"deleted": count},
	})

	return count, nil
}
