package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/minorebarber/booking-api/internal/audit"
	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
	"github.com/minorebarber/booking-api/internal/notify"
	"github.com/minorebarber/booking-api/internal/refresh"
	"github.com/minorebarber/booking-api/internal/timezone"
)

// CancelAppointment is the staff path. Cancelling an already-cancelled
// appointment is a no-op (no error, no second notification); a completed one
// cannot be cancelled.
type CancelAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	notify  *notify.Dispatcher
	refresh *refresh.Trigger
}

func NewCancelAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
	refreshTrigger *refresh.Trigger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:    repo,
		audit:   auditDispatcher,
		notify:  notifyDispatcher,
		refresh: refreshTrigger,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if ap.Status == string(domain.StatusCancelled) {
		return ap, nil
	}

	now := timezone.Now()
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		LocationID: ap.LocationID,
		UserID:     userID,
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	uc.refresh.Touch(ctx)

	uc.notify.BookingCancelled(notify.Cancellation{
		To:          ap.Email,
		ClientName:  ap.ClientName,
		When:        ap.StartTime,
		ServiceName: ap.Service.Name,
	})

	return ap, nil
}
