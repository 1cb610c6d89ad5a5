package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/dto"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
	"github.com/minorebarber/booking-api/internal/timezone"
	ucBooking "github.com/minorebarber/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	create        *ucBooking.CreateAppointment
	availability  *ucBooking.GetAvailability
	checkout      *ucBooking.Checkout
	cancel        *ucBooking.CancelAppointment
	updateDetails *ucBooking.UpdateAppointmentDetails
}

func NewAppointmentHandler(
	db *gorm.DB,
	create *ucBooking.CreateAppointment,
	availability *ucBooking.GetAvailability,
	checkout *ucBooking.Checkout,
	cancel *ucBooking.CancelAppointment,
	updateDetails *ucBooking.UpdateAppointmentDetails,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:            db,
		create:        create,
		availability:  availability,
		checkout:      checkout,
		cancel:        cancel,
		updateDetails: updateDetails,
	}
}

// ======================================================
// DTOs
// ======================================================

type WalkinCreateRequest struct {
	LocationID uint `json:"location_id"`
	BarberID   uint `json:"barber_id" binding:"required"`
	ServiceID  uint `json:"service_id" binding:"required"`

	ClientName string `json:"client_name" binding:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm
}

type UpdateDetailsRequest struct {
	Time     string  `json:"time" binding:"required"` // HH:mm, same day
	Price    float64 `json:"price" binding:"required"`
	Duration int     `json:"duration" binding:"required"` // minutes
}

// ======================================================
// CREATE (WALK-IN)
// ======================================================

// CreateWalkin books on behalf of a client at the desk: lead-time rules and
// the online start floor do not apply, and no cancel email goes out.
func (h *AppointmentHandler) CreateWalkin(c *gin.Context) {
	var req WalkinCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	locationID := req.LocationID
	if locationID == 0 {
		locationID = 1
	}

	ap, err := h.create.Execute(c.Request.Context(), ucBooking.CreateAppointmentInput{
		LocationID: locationID,
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		ClientName: req.ClientName,
		Phone:      req.Phone,
		Email:      req.Email,
		Date:       req.Date,
		Time:       req.Time,
		Walkin:     true,
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// AVAILABILITY (STAFF VIEW)
// ======================================================

// Availability for staff skips the client start-hour floor.
func (h *AppointmentHandler) Availability(c *gin.Context) {
	serviceID := uintQuery(c, "service_id", 0)
	if serviceID == 0 {
		httperr.BadRequest(c, "missing_service_id", "service_id is required.")
		return
	}

	times, err := h.availability.Execute(c.Request.Context(), ucBooking.AvailabilityInput{
		LocationID: uintQuery(c, "location_id", 1),
		BarberID:   uintQuery(c, "barber_id", 0),
		ServiceID:  serviceID,
		Channel:    domain.ChannelWalkin,
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_get_availability")
		return
	}

	if times == nil {
		times = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"times": times})
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) listDay(c *gin.Context, day time.Time) ([]models.Appointment, bool) {
	locationID := uintQuery(c, "location_id", 1)
	nextDay := day.AddDate(0, 0, 1)

	var appointments []models.Appointment
	if err := h.db.
		Preload("Barber").
		Preload("Service").
		Where("location_id = ? AND start_time >= ? AND start_time < ?", locationID, day, nextDay).
		Order("start_time ASC").
		Find(&appointments).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return nil, false
	}
	return appointments, true
}

// Today returns the dashboard payload for the current day: the flattened
// appointment list, per-status counts and the barber/slot grid.
func (h *AppointmentHandler) Today(c *gin.Context) {
	now := timezone.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	appointments, ok := h.listDay(c, day)
	if !ok {
		return
	}

	var sched models.Schedule
	if err := h.db.First(&sched).Error; err != nil {
		httperr.Internal(c, "failed_to_load_schedule", "Could not load the schedule.")
		return
	}

	locationID := uintQuery(c, "location_id", 1)
	var barbers []models.Barber
	if err := h.db.
		Where("location_id = ?", locationID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Could not list barbers.")
		return
	}

	counts := gin.H{"scheduled": 0, "completed": 0, "cancelled": 0}
	for i := range appointments {
		switch appointments[i].Status {
		case string(domain.StatusScheduled):
			counts["scheduled"] = counts["scheduled"].(int) + 1
		case string(domain.StatusCompleted):
			counts["completed"] = counts["completed"].(int) + 1
		case string(domain.StatusCancelled):
			counts["cancelled"] = counts["cancelled"].(int) + 1
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         day.Format("2006-01-02"),
		"appointments": dto.FromAppointments(appointments),
		"counts":       counts,
		"grid":         domain.BuildGrid(&sched, barbers, appointments),
	})
}

// ListByDate returns the appointments of an arbitrary day.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	day, err := time.ParseInLocation(
		"2006-01-02",
		c.Query("date"),
		timezone.Location(timezone.DefaultTimezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date, expected YYYY-MM-DD.")
		return
	}

	appointments, ok := h.listDay(c, day)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         day.Format("2006-01-02"),
		"appointments": dto.FromAppointments(appointments),
	})
}

// ======================================================
// LIFECYCLE
// ======================================================

// Checkout completes the appointment and writes its revenue, atomically.
func (h *AppointmentHandler) Checkout(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.checkout.Execute(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		writeBusiness(c, err, "failed_to_checkout")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		writeBusiness(c, err, "failed_to_cancel")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// UpdateDetails moves a scheduled appointment within its day and records
// price/duration overrides.
func (h *AppointmentHandler) UpdateDetails(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.updateDetails.Execute(c.Request.Context(), currentUserID(c), ucBooking.UpdateDetailsInput{
		AppointmentID: id,
		Time:          req.Time,
		Price:         req.Price,
		Duration:      req.Duration,
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_update_appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}
