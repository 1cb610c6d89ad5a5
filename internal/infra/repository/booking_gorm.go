package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveBarbers(
	ctx context.Context,
	locationID uint,
) ([]models.Barber, error) {

	q := r.db.WithContext(ctx).Where("active = true")
	if locationID > 0 {
		q = q.Where("location_id = ?", locationID)
	}

	var barbers []models.Barber
	if err := q.Order("id ASC").Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Locations
// --------------------------------------------------

func (r *BookingGormRepository) GetLocation(
	ctx context.Context,
	id uint,
) (*models.Location, error) {

	var loc models.Location
	if err := r.db.WithContext(ctx).First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *BookingGormRepository) GetSchedule(
	ctx context.Context,
) (*models.Schedule, error) {

	var sched models.Schedule
	if err := r.db.WithContext(ctx).Order("id ASC").First(&sched).Error; err != nil {
		return nil, err
	}
	return &sched, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *BookingGormRepository) ListBarberAppointments(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"barber_id = ? AND status <> 'cancelled' AND start_time >= ? AND start_time < ?",
			barberID, from, to,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *BookingGormRepository) CountBarberAppointments(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND status <> 'cancelled' AND start_time >= ? AND start_time < ?",
			barberID, from, to,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentByToken(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		Where("cancel_token = ? AND cancel_token <> ''", token).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

// CreateScheduled holds the no-overlap invariant: the conflict scan locks the
// barber's rows for the day and the insert happens in the same transaction.
// The partial unique index on (barber_id, start_time) catches the remaining
// race on identical starts and is reported as the same conflict.
func (r *BookingGormRepository) CreateScheduled(
	ctx context.Context,
	ap *models.Appointment,
	dur time.Duration,
) error {

	day := time.Date(
		ap.StartTime.Year(), ap.StartTime.Month(), ap.StartTime.Day(),
		0, 0, 0, 0, ap.StartTime.Location(),
	)
	nextDay := day.AddDate(0, 0, 1)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Service").
			Where(
				"barber_id = ? AND status <> 'cancelled' AND start_time >= ? AND start_time < ?",
				ap.BarberID, day, nextDay,
			).
			Find(&existing).Error; err != nil {
			return err
		}

		if domain.HasConflict(ap.StartTime, dur, existing) {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})

	if err != nil && httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("time_conflict")
	}

	return err
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// UpdateScheduled applies a move or an override change. The conflict re-check
// and the save run in one transaction over the same FOR UPDATE day scan as
// CreateScheduled, so a racing booking for the barber serializes against the
// move instead of both passing their checks.
func (r *BookingGormRepository) UpdateScheduled(
	ctx context.Context,
	ap *models.Appointment,
	dur time.Duration,
) error {

	day := time.Date(
		ap.StartTime.Year(), ap.StartTime.Month(), ap.StartTime.Day(),
		0, 0, 0, 0, ap.StartTime.Location(),
	)
	nextDay := day.AddDate(0, 0, 1)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Service").
			Where(
				"barber_id = ? AND id <> ? AND status <> 'cancelled' AND start_time >= ? AND start_time < ?",
				ap.BarberID, ap.ID, day, nextDay,
			).
			Find(&existing).Error; err != nil {
			return err
		}

		if domain.HasConflict(ap.StartTime, dur, existing) {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Save(ap).Error
	})
}

func (r *BookingGormRepository) DeleteAppointmentsBefore(
	ctx context.Context,
	t time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("start_time < ?", t).
		Delete(&models.Appointment{})

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Checkout / revenue ledger
// --------------------------------------------------

// CompleteWithRevenue is the one place revenue is written. The status guard
// runs inside the transaction so replayed checkouts cannot double-count, and
// the ledger increments are pushed down to the database so concurrent
// checkouts for the same barber all add up.
func (r *BookingGormRepository) CompleteWithRevenue(
	ctx context.Context,
	appointmentID uint,
	now time.Time,
) (*models.Appointment, error) {

	var ap models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Service").
			First(&ap, appointmentID).Error; err != nil {
			return err
		}

		if err := domain.Complete(&ap, now); err != nil {
			return err
		}

		if err := tx.Save(&ap).Error; err != nil {
			return err
		}

		price := ap.EffectivePrice()
		dateStr := now.Format("2006-01-02")

		// The ledger rows are written as atomic upserts. A read-then-save
		// here would let two concurrent checkouts for the same barber and
		// day both start from the same stale total and lose one of them.
		daily := models.DailyRevenue{
			BarberID:          ap.BarberID,
			LocationID:        ap.LocationID,
			Date:              dateStr,
			Revenue:           price,
			AppointmentsCount: 1,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "barber_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"revenue":            gorm.Expr("daily_revenues.revenue + ?", price),
				"appointments_count": gorm.Expr("daily_revenues.appointments_count + 1"),
				"updated_at":         now,
			}),
		}).Create(&daily).Error; err != nil {
			return err
		}

		monthly := models.MonthlyRevenue{
			BarberID:          ap.BarberID,
			LocationID:        ap.LocationID,
			Year:              now.Year(),
			Month:             int(now.Month()),
			Revenue:           price,
			AppointmentsCount: 1,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "barber_id"}, {Name: "year"}, {Name: "month"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"revenue":            gorm.Expr("monthly_revenues.revenue + ?", price),
				"appointments_count": gorm.Expr("monthly_revenues.appointments_count + 1"),
				"updated_at":         now,
			}),
		}).Create(&monthly).Error
	})

	if err != nil {
		return nil, err
	}

	return &ap, nil
}

// --------------------------------------------------
// Revenue reads
// --------------------------------------------------

func (r *BookingGormRepository) ListDailyRevenue(
	ctx context.Context,
	fromDate string,
	toDate string,
	locationID uint,
) ([]models.DailyRevenue, error) {

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Where("date >= ? AND date <= ?", fromDate, toDate)

	if locationID > 0 {
		q = q.Where("location_id = ?", locationID)
	}

	var records []models.DailyRevenue
	if err := q.Order("date ASC, barber_id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *BookingGormRepository) ListMonthlyRevenue(
	ctx context.Context,
	year int,
	month int,
	locationID uint,
) ([]models.MonthlyRevenue, error) {

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Where("year = ? AND month = ?", year, month)

	if locationID > 0 {
		q = q.Where("location_id = ?", locationID)
	}

	var records []models.MonthlyRevenue
	if err := q.Order("barber_id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
