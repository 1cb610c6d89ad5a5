package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/httpresp"
	"github.com/minorebarber/booking-api/internal/models"
	"github.com/minorebarber/booking-api/internal/refresh"
	ucBooking "github.com/minorebarber/booking-api/internal/usecase/booking"
	"github.com/minorebarber/booking-api/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the client-facing booking flow: no auth, location
// picked by query param, and every slot it offers respects the online
// lead-time and floor rules.
type PublicHandler struct {
	db *gorm.DB

	availability *ucBooking.GetAvailability
	create       *ucBooking.CreateAppointment
	cancelToken  *ucBooking.CancelByToken
	refresh      *refresh.Trigger
}

func NewPublicHandler(
	db *gorm.DB,
	availability *ucBooking.GetAvailability,
	create *ucBooking.CreateAppointment,
	cancelToken *ucBooking.CancelByToken,
	refreshTrigger *refresh.Trigger,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		create:       create,
		cancelToken:  cancelToken,
		refresh:      refreshTrigger,
	}
}

// ======================================================
// DTOs
// ======================================================

type PublicCreateAppointmentRequest struct {
	LocationID uint `json:"location_id"`
	BarberID   uint `json:"barber_id"` // 0 = any barber
	ServiceID  uint `json:"service_id" binding:"required"`

	ClientName string `json:"client_name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm
}

// ======================================================
// CATALOG
// ======================================================

func (h *PublicHandler) ListLocations(c *gin.Context) {
	var locations []models.Location
	if err := h.db.Order("id ASC").Find(&locations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_locations", "Could not list locations.")
		return
	}
	httpresp.List(c, locations)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	locationID := uintQuery(c, "location_id", 1)

	var services []models.Service
	if err := h.db.
		Where("location_id = ?", locationID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}
	httpresp.List(c, services)
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	locationID := uintQuery(c, "location_id", 1)

	var barbers []models.Barber
	if err := h.db.
		Where("location_id = ? AND active = true", locationID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Could not list barbers.")
		return
	}
	httpresp.List(c, barbers)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	serviceID := uintQuery(c, "service_id", 0)
	if serviceID == 0 {
		httperr.BadRequest(c, "missing_service_id", "service_id is required.")
		return
	}

	times, err := h.availability.Execute(c.Request.Context(), ucBooking.AvailabilityInput{
		LocationID: uintQuery(c, "location_id", 1),
		BarberID:   uintQuery(c, "barber_id", 0),
		ServiceID:  serviceID,
		Channel:    domain.ChannelOnline,
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
// BOOKING
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Email != "" && !validators.IsEmailDomainValid(req.Email) {
		httperr.BadRequest(c, "invalid_email", "The email address does not accept mail.")
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
		Walkin:     false,
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment":  ap,
		"cancel_token": ap.CancelToken,
	})
}

// CancelByToken redeems the opaque token from the confirmation email.
func (h *PublicHandler) CancelByToken(c *gin.Context) {
	ap, err := h.cancelToken.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeBusiness(c, err, "failed_to_cancel_appointment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "cancelled",
		"start_time": ap.StartTime,
	})
}

// ======================================================
// POLLING
// ======================================================

// LastUpdate lets clients poll for booking changes without hitting the
// database; the timestamp lives in Redis.
func (h *PublicHandler) LastUpdate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"last_update": h.refresh.Last(c.Request.Context()),
	})
}
