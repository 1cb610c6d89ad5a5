package booking

import (
	"context"
	"time"

	"github.com/minorebarber/booking-api/internal/models"
)

type Repository interface {
	// -------- Barbers --------
	ListActiveBarbers(
		ctx context.Context,
		locationID uint,
	) ([]models.Barber, error)

	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Locations --------
	GetLocation(
		ctx context.Context,
		id uint,
	) (*models.Location, error)

	// -------- Services --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Schedule --------
	GetSchedule(
		ctx context.Context,
	) (*models.Schedule, error)

	// -------- Appointments --------

	// ListBarberAppointments returns the barber's non-cancelled appointments
	// with start in [from, to), Service preloaded, ordered by start time.
	ListBarberAppointments(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	CountBarberAppointments(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) (int64, error)

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByToken(
		ctx context.Context,
		token string,
	) (*models.Appointment, error)

	// CreateScheduled runs the conflict scan and the insert as one atomic
	// unit; a racing overlap surfaces as the time_conflict business error.
	CreateScheduled(
		ctx context.Context,
		ap *models.Appointment,
		dur time.Duration,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateScheduled saves a changed start or duration, re-running the
	// day's conflict scan under the same lock CreateScheduled takes. The
	// appointment's own row is excluded from the scan.
	UpdateScheduled(
		ctx context.Context,
		ap *models.Appointment,
		dur time.Duration,
	) error

	DeleteAppointmentsBefore(
		ctx context.Context,
		t time.Time,
	) (int64, error)

	// -------- Checkout / revenue ledger --------

	// CompleteWithRevenue flips a scheduled appointment to completed and adds
	// its effective price to the daily and monthly accumulators, atomically.
	// A non-scheduled appointment fails with invalid_state and adds nothing.
	CompleteWithRevenue(
		ctx context.Context,
		appointmentID uint,
		now time.Time,
	) (*models.Appointment, error)

	// -------- Revenue reads --------
	ListDailyRevenue(
		ctx context.Context,
		fromDate string,
		toDate string,
		locationID uint,
	) ([]models.DailyRevenue, error)

	ListMonthlyRevenue(
		ctx context.Context,
		year int,
		month int,
		locationID uint,
	) ([]models.MonthlyRevenue, error)
}
