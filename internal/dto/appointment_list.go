package dto

import (
	"time"

	"github.com/minorebarber/booking-api/internal/models"
)

// AppointmentListDTO flattens an appointment for list views: the effective
// price and duration are resolved server-side so the dashboard never has to
// know about overrides.
type AppointmentListDTO struct {
	ID uint `json:"id"`

	LocationID uint `json:"location_id"`

	BarberID   uint   `json:"barber_id"`
	BarberName string `json:"barber_name"`

	ServiceID   uint   `json:"service_id"`
	ServiceName string `json:"service_name"`

	ClientName string `json:"client_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	Status   string `json:"status"`
	IsRandom bool   `json:"is_random"`
	IsOnline bool   `json:"is_online"`
}

func FromAppointment(ap *models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:          ap.ID,
		LocationID:  ap.LocationID,
		BarberID:    ap.BarberID,
		BarberName:  ap.Barber.Name,
		ServiceID:   ap.ServiceID,
		ServiceName: ap.Service.Name,
		ClientName:  ap.ClientName,
		Phone:       ap.Phone,
		Email:       ap.Email,
		StartTime:   ap.StartTime,
		EndTime:     ap.EndTime(),
		DurationMin: int(ap.EffectiveDuration() / time.Minute),
		Price:       ap.EffectivePrice(),
		Status:      ap.Status,
		IsRandom:    ap.IsRandom,
		IsOnline:    ap.IsOnline,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for i := range aps {
		out = append(out, FromAppointment(&aps[i]))
	}
	return out
}
