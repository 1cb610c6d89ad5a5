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

// CancelByToken is the client self-service path: the opaque token from the
// confirmation email is the only credential. Unknown tokens and tokens whose
// appointment already left the scheduled state both answer "not found"; a
// used token must not leak state or re-trigger anything.
type CancelByToken struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	notify  *notify.Dispatcher
	refresh *refresh.Trigger
}

func NewCancelByToken(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
	refreshTrigger *refresh.Trigger,
) *CancelByToken {
	return &CancelByToken{
		repo:    repo,
		audit:   auditDispatcher,
		notify:  notifyDispatcher,
		refresh: refreshTrigger,
	}
}

func (uc *CancelByToken) Execute(
	ctx context.Context,
	cancelToken string,
) (*models.Appointment, error) {

	if cancelToken == "" {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	ap, err := uc.repo.GetAppointmentByToken(ctx, cancelToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if ap.Status != string(domain.StatusScheduled) {
		return nil, httperr.ErrBusiness("appointment_not_found")
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
		Action:     "appointment_self_cancelled",
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
