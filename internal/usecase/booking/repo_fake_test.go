package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/minorebarber/booking-api/internal/audit"
	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
	"github.com/minorebarber/booking-api/internal/notify"
	"github.com/minorebarber/booking-api/internal/refresh"
)

// fakeRepo is an in-memory Repository for use case tests.
type fakeRepo struct {
	barbers  []models.Barber
	services map[uint]*models.Service
	schedule *models.Schedule
	location *models.Location

	appointments map[uint]*models.Appointment
	perBarber    map[uint][]models.Appointment
	counts       map[uint]int64

	nextID    uint
	createErr error

	updateCalls          int
	updateScheduledCalls int

	deleted      int64
	deleteCutoff time.Time

	daily   []models.DailyRevenue
	monthly []models.MonthlyRevenue

	dailyFrom string
	dailyTo   string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     make(map[uint]*models.Service),
		appointments: make(map[uint]*models.Appointment),
		perBarber:    make(map[uint][]models.Appointment),
		counts:       make(map[uint]int64),
		schedule: &models.Schedule{
			StartHour: 0,
			EndHour:   24,
			IsOpen:    true,
			Monday:    true,
			Tuesday:   true,
			Wednesday: true,
			Thursday:  true,
			Friday:    true,
			Saturday:  true,
			Sunday:    true,
		},
		location: &models.Location{ID: 1, Name: "Mallorca"},
	}
}

func (f *fakeRepo) ListActiveBarbers(ctx context.Context, locationID uint) ([]models.Barber, error) {
	var out []models.Barber
	for _, b := range f.barbers {
		if b.Active {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	for i := range f.barbers {
		if f.barbers[i].ID == id {
			return &f.barbers[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetLocation(ctx context.Context, id uint) (*models.Location, error) {
	return f.location, nil
}

func (f *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetSchedule(ctx context.Context) (*models.Schedule, error) {
	return f.schedule, nil
}

func (f *fakeRepo) ListBarberAppointments(ctx context.Context, barberID uint, from, to time.Time) ([]models.Appointment, error) {
	return f.perBarber[barberID], nil
}

func (f *fakeRepo) CountBarberAppointments(ctx context.Context, barberID uint, from, to time.Time) (int64, error) {
	return f.counts[barberID], nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := f.appointments[id]; ok {
		return ap, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetAppointmentByToken(ctx context.Context, token string) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.CancelToken == token && token != "" {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateScheduled(ctx context.Context, ap *models.Appointment, dur time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	ap.ID = f.nextID
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.updateCalls++
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) UpdateScheduled(ctx context.Context, ap *models.Appointment, dur time.Duration) error {
	var others []models.Appointment
	for _, e := range f.perBarber[ap.BarberID] {
		if e.ID != ap.ID {
			others = append(others, e)
		}
	}

	if domain.HasConflict(ap.StartTime, dur, others) {
		return httperr.ErrBusiness("time_conflict")
	}

	f.updateScheduledCalls++
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) DeleteAppointmentsBefore(ctx context.Context, t time.Time) (int64, error) {
	f.deleteCutoff = t
	return f.deleted, nil
}

func (f *fakeRepo) CompleteWithRevenue(ctx context.Context, appointmentID uint, now time.Time) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	// Upsert semantics: one row per barber and day, increments accumulate.
	dateStr := now.Format("2006-01-02")
	for i := range f.daily {
		if f.daily[i].BarberID == ap.BarberID && f.daily[i].Date == dateStr {
			f.daily[i].Revenue += ap.EffectivePrice()
			f.daily[i].AppointmentsCount++
			return ap, nil
		}
	}

	f.daily = append(f.daily, models.DailyRevenue{
		BarberID:          ap.BarberID,
		Date:              dateStr,
		Revenue:           ap.EffectivePrice(),
		AppointmentsCount: 1,
	})
	return ap, nil
}

func (f *fakeRepo) ListDailyRevenue(ctx context.Context, fromDate, toDate string, locationID uint) ([]models.DailyRevenue, error) {
	f.dailyFrom = fromDate
	f.dailyTo = toDate
	return f.daily, nil
}

func (f *fakeRepo) ListMonthlyRevenue(ctx context.Context, year, month int, locationID uint) ([]models.MonthlyRevenue, error) {
	return f.monthly, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ----- shared test fixtures -----

func testDispatchers() (*audit.Dispatcher, *notify.Dispatcher, *refresh.Trigger) {
	return audit.NewDispatcher(audit.New(nil)),
		notify.NewDispatcher(nil),
		refresh.NewTrigger("", "")
}
