package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/minorebarber/booking-api/internal/audit"
	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
	"github.com/minorebarber/booking-api/internal/timezone"
)

// Checkout finalizes an appointment: status goes to completed and the
// effective price lands in the daily and monthly ledgers, in one transaction.
// A second checkout of the same appointment fails with invalid_state instead
// of double-counting.
type Checkout struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCheckout(repo domain.Repository, auditDispatcher *audit.Dispatcher) *Checkout {
	return &Checkout{repo: repo, audit: auditDispatcher}
}

func (uc *Checkout) Execute(
	ctx context.Context,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {

	now := timezone.Now()

	ap, err := uc.repo.CompleteWithRevenue(ctx, appointmentID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		LocationID: ap.LocationID,
		UserID:     userID,
		Action:     "appointment_completed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
