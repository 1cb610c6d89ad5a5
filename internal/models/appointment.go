package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LocationID uint `gorm:"default:1" json:"location_id"`

	BarberID uint   `json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	ClientName string `gorm:"size:100;not null" json:"client_name"`
	Phone      string `gorm:"size:20" json:"phone"`
	Email      string `gorm:"size:100" json:"email"`

	StartTime time.Time `json:"start_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	// Per-appointment overrides; when set they win over the service defaults.
	CustomPrice    *float64 `json:"custom_price"`
	CustomDuration *int     `json:"custom_duration"`

	IsRandom bool `gorm:"default:false" json:"is_random"`
	IsOnline bool `gorm:"default:false" json:"is_online"`

	CancelToken string `gorm:"size:64;default:''" json:"-"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveDuration requires Service to be preloaded unless CustomDuration is set.
func (a *Appointment) EffectiveDuration() time.Duration {
	if a.CustomDuration != nil && *a.CustomDuration > 0 {
		return time.Duration(*a.CustomDuration) * time.Minute
	}
	return time.Duration(a.Service.DurationMin) * time.Minute
}

func (a *Appointment) EffectivePrice() float64 {
	if a.CustomPrice != nil {
		return *a.CustomPrice
	}
	return a.Service.Price
}

func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(a.EffectiveDuration())
}
