package booking

import (
	"context"
	"time"

	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
)

// Reports read the additive ledgers only; they never re-derive totals from
// appointments, which the sweep may already have deleted.

type DailyReport struct {
	Date              string                `json:"date"`
	Records           []models.DailyRevenue `json:"records"`
	TotalRevenue      float64               `json:"total_revenue"`
	TotalAppointments int                   `json:"total_appointments"`
}

type WeeklyBarberTotal struct {
	Barber            models.Barber `json:"barber"`
	Revenue           float64       `json:"revenue"`
	AppointmentsCount int           `json:"appointments_count"`
}

type WeeklyReport struct {
	WeekStart         string              `json:"week_start"`
	WeekEnd           string              `json:"week_end"`
	Records           []WeeklyBarberTotal `json:"records"`
	TotalRevenue      float64             `json:"total_revenue"`
	TotalAppointments int                 `json:"total_appointments"`
}

type MonthlyReport struct {
	Year              int                     `json:"year"`
	Month             int                     `json:"month"`
	Records           []models.MonthlyRevenue `json:"records"`
	TotalRevenue      float64                 `json:"total_revenue"`
	TotalAppointments int                     `json:"total_appointments"`
}

type RevenueReport struct {
	repo domain.Repository
}

func NewRevenueReport(repo domain.Repository) *RevenueReport {
	return &RevenueReport{repo: repo}
}

func (uc *RevenueReport) Daily(
	ctx context.Context,
	date string,
	locationID uint,
) (*DailyReport, error) {

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	records, err := uc.repo.ListDailyRevenue(ctx, date, date, locationID)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{Date: date, Records: records}
	for _, rec := range records {
		report.TotalRevenue += rec.Revenue
		report.TotalAppointments += rec.AppointmentsCount
	}
	return report, nil
}

func (uc *RevenueReport) Weekly(
	ctx context.Context,
	date string,
	locationID uint,
) (*WeeklyReport, error) {

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	// Week runs Monday through Sunday.
	weekStart := day.AddDate(0, 0, -int((day.Weekday()+6)%7))
	weekEnd := weekStart.AddDate(0, 0, 6)

	records, err := uc.repo.ListDailyRevenue(
		ctx,
		weekStart.Format("2006-01-02"),
		weekEnd.Format("2006-01-02"),
		locationID,
	)
	if err != nil {
		return nil, err
	}

	totals := make(map[uint]*WeeklyBarberTotal)
	var order []uint
	for _, rec := range records {
		t, ok := totals[rec.BarberID]
		if !ok {
			t = &WeeklyBarberTotal{Barber: rec.Barber}
			totals[rec.BarberID] = t
			order = append(order, rec.BarberID)
		}
		t.Revenue += rec.Revenue
		t.AppointmentsCount += rec.AppointmentsCount
	}

	report := &WeeklyReport{
		WeekStart: weekStart.Format("2006-01-02"),
		WeekEnd:   weekEnd.Format("2006-01-02"),
		Records:   make([]WeeklyBarberTotal, 0, len(order)),
	}
	for _, id := range order {
		report.Records = append(report.Records, *totals[id])
		report.TotalRevenue += totals[id].Revenue
		report.TotalAppointments += totals[id].AppointmentsCount
	}
	return report, nil
}

func (uc *RevenueReport) Monthly(
	ctx context.Context,
	year int,
	month int,
	locationID uint,
) (*MonthlyReport, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	records, err := uc.repo.ListMonthlyRevenue(ctx, year, month, locationID)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{Year: year, Month: month, Records: records}
	for _, rec := range records {
		report.TotalRevenue += rec.Revenue
		report.TotalAppointments += rec.AppointmentsCount
	}
	return report, nil
}
