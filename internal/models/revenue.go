package models

import "time"

// DailyRevenue and MonthlyRevenue are additive accumulators written at
// checkout time. They are never recomputed from appointments, which lets the
// nightly sweep delete past appointment rows without losing history.

type DailyRevenue struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LocationID uint `gorm:"default:1" json:"location_id"`

	BarberID uint   `gorm:"uniqueIndex:idx_daily_revenue_barber_date" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber"`

	Date string `gorm:"size:10;uniqueIndex:idx_daily_revenue_barber_date" json:"date"` // YYYY-MM-DD

	Revenue           float64 `gorm:"default:0" json:"revenue"`
	AppointmentsCount int     `gorm:"default:0" json:"appointments_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MonthlyRevenue struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LocationID uint `gorm:"default:1" json:"location_id"`

	BarberID uint   `gorm:"uniqueIndex:idx_monthly_revenue_barber_month" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber"`

	Year  int `gorm:"uniqueIndex:idx_monthly_revenue_barber_month" json:"year"`
	Month int `gorm:"uniqueIndex:idx_monthly_revenue_barber_month" json:"month"`

	Revenue           float64 `gorm:"default:0" json:"revenue"`
	AppointmentsCount int     `gorm:"default:0" json:"appointments_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
