package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/minorebarber/booking-api/internal/audit"
	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
	"github.com/minorebarber/booking-api/internal/refresh"
)

type UpdateDetailsInput struct {
	AppointmentID uint
	Time          string // HH:MM, same calendar day
	Price         float64
	Duration      int // minutes
}

// UpdateAppointmentDetails moves a scheduled appointment within its day and
// records price/duration overrides, re-checking conflicts with the new
// interval (the appointment itself excluded).
type UpdateAppointmentDetails struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	refresh *refresh.Trigger
}

func NewUpdateAppointmentDetails(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	refreshTrigger *refresh.Trigger,
) *UpdateAppointmentDetails {
	return &UpdateAppointmentDetails{
		repo:    repo,
		audit:   auditDispatcher,
		refresh: refreshTrigger,
	}
}

func (uc *UpdateAppointmentDetails) Execute(
	ctx context.Context,
	userID *uint,
	in UpdateDetailsInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if ap.Status != string(domain.StatusScheduled) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	hm, err := time.Parse("15:04", in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if in.Duration <= 0 || in.Price < 0 {
		return nil, httperr.ErrBusiness("invalid_override")
	}

	cur := ap.StartTime
	newStart := time.Date(
		cur.Year(), cur.Month(), cur.Day(),
		hm.Hour(), hm.Minute(), 0, 0,
		cur.Location(),
	)
	newDur := time.Duration(in.Duration) * time.Minute

	ap.StartTime = newStart
	ap.CustomPrice = &in.Price
	ap.CustomDuration = &in.Duration

	// Conflict re-check and save are one locked store call; a separate
	// check here would race against concurrent bookings for the barber.
	if err := uc.repo.UpdateScheduled(ctx, ap, newDur); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		LocationID: ap.LocationID,
		UserID:     userID,
		Action:     "appointment_updated",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	uc.refresh.Touch(ctx)

	return ap, nil
}
