package booking

import (
	"context"
	"time"

	"github.com/minorebarber/booking-api/internal/audit"
	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
	"github.com/minorebarber/booking-api/internal/notify"
	"github.com/minorebarber/booking-api/internal/refresh"
	"github.com/minorebarber/booking-api/internal/timezone"
	"github.com/minorebarber/booking-api/internal/token"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	LocationID uint

	BarberID  uint // 0 = let the house pick
	ServiceID uint

	ClientName string
	Phone      string
	Email      string

	Date string // YYYY-MM-DD
	Time string // HH:MM

	// Walkin marks a staff-entered booking: no lead-time rule, no cancel
	// token, IsOnline stays false.
	Walkin bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	assign  *AssignBarber
	audit   *audit.Dispatcher
	notify  *notify.Dispatcher
	refresh *refresh.Trigger
}

func NewCreateAppointment(
	repo domain.Repository,
	assign *AssignBarber,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
	refreshTrigger *refresh.Trigger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		assign:  assign,
		audit:   auditDispatcher,
		notify:  notifyDispatcher,
		refresh: refreshTrigger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Requested start in shop time
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(timezone.DefaultTimezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 2. Service
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	dur := time.Duration(service.DurationMin) * time.Minute

	// --------------------------------------------------
	// 3. Lead time (clients only; walk-ins bypass)
	// --------------------------------------------------
	if !in.Walkin {
		now := timezone.Now()
		if start.Before(domain.NextBookable(now)) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	}

	// --------------------------------------------------
	// 4. Barber: explicit pick or least-loaded assignment
	// --------------------------------------------------
	var barber *models.Barber
	isRandom := false

	if in.BarberID > 0 {
		barber, err = uc.repo.GetBarber(ctx, in.BarberID)
		if err != nil {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
	} else {
		barber, err = uc.assign.Execute(ctx, in.LocationID, in.ServiceID, start)
		if err != nil {
			return nil, err
		}
		isRandom = true
	}

	// --------------------------------------------------
	// 5. Atomic conflict check + insert
	// --------------------------------------------------
	ap := &models.Appointment{
		LocationID: in.LocationID,
		BarberID:   barber.ID,
		ServiceID:  service.ID,
		ClientName: in.ClientName,
		Phone:      in.Phone,
		Email:      in.Email,
		StartTime:  start,
		Status:     string(domain.InitialStatus()),
		IsRandom:   isRandom,
		IsOnline:   !in.Walkin,
	}

	if !in.Walkin {
		ap.CancelToken = token.NewCancelToken()
	}

	if err := uc.repo.CreateScheduled(ctx, ap, dur); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Side effects off the request path
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		LocationID: in.LocationID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	uc.refresh.Touch(ctx)

	locationName := ""
	if loc, err := uc.repo.GetLocation(ctx, in.LocationID); err == nil {
		locationName = loc.Name
	}

	uc.notify.BookingCreated(notify.Booking{
		To:           in.Email,
		ClientName:   in.ClientName,
		When:         start,
		ServiceName:  service.Name,
		BarberName:   barber.Name,
		LocationName: locationName,
		CancelToken:  ap.CancelToken,
	})

	return ap, nil
}
