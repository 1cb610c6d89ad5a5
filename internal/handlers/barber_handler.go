package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/minorebarber/booking-api/internal/audit"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
	"github.com/minorebarber/booking-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type BarberHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBarberHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *BarberHandler {
	return &BarberHandler{db: db, audit: auditDispatcher}
}

// ======================================================
// DTOs
// ======================================================

type CreateBarberRequest struct {
	Name       string `json:"name" binding:"required"`
	LocationID uint   `json:"location_id"`
}

type UpdateBarberRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

type barberWithStats struct {
	models.Barber
	TodayAppointments int     `json:"today_appointments"`
	TodayRevenue      float64 `json:"today_revenue"`
}

// ======================================================
// LIST
// ======================================================

// List returns every barber of the location, active or not, with today's
// appointment count and the revenue already checked out today.
func (h *BarberHandler) List(c *gin.Context) {
	locationID := uintQuery(c, "location_id", 1)

	var barbers []models.Barber
	if err := h.db.
		Where("location_id = ?", locationID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Could not list barbers.")
		return
	}

	today := timezone.Now().Format("2006-01-02")

	var revenues []models.DailyRevenue
	h.db.Where("date = ?", today).Find(&revenues)

	byBarber := make(map[uint]models.DailyRevenue, len(revenues))
	for _, rev := range revenues {
		byBarber[rev.BarberID] = rev
	}

	out := make([]barberWithStats, 0, len(barbers))
	for _, b := range barbers {
		stats := barberWithStats{Barber: b}
		if rev, ok := byBarber[b.ID]; ok {
			stats.TodayAppointments = rev.AppointmentsCount
			stats.TodayRevenue = rev.Revenue
		}
		out = append(out, stats)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  out,
		"total": len(out),
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
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

	barber := models.Barber{
		Name:       req.Name,
		LocationID: locationID,
		Active:     true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Could not create the barber.")
		return
	}

	h.audit.Dispatch(audit.Event{
		LocationID: locationID,
		UserID:     currentUserID(c),
		Action:     "barber_created",
		Entity:     "barber",
		EntityID:   &barber.ID,
	})

	c.JSON(http.StatusCreated, barber)
}

// ======================================================
// UPDATE
// ======================================================

// Update renames a barber and/or toggles the active flag. Deactivating does
// not touch existing appointments; it only removes the barber from the
// bookable set.
func (h *BarberHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	if req.Name != nil && *req.Name != "" {
		barber.Name = *req.Name
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Could not update the barber.")
		return
	}

	h.audit.Dispatch(audit.Event{
		LocationID: barber.LocationID,
		UserID:     currentUserID(c),
		Action:     "barber_updated",
		Entity:     "barber",
		EntityID:   &barber.ID,
	})

	c.JSON(http.StatusOK, barber)
}

// ======================================================
// DELETE
// ======================================================

// Delete removes the barber together with their appointments and revenue
// rows, in one transaction.
func (h *BarberHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("barber_id = ?", id).Delete(&models.DailyRevenue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("barber_id = ?", id).Delete(&models.MonthlyRevenue{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Barber{}, id).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Could not delete the barber.")
		return
	}

	h.audit.Dispatch(audit.Event{
		LocationID: barber.LocationID,
		UserID:     currentUserID(c),
		Action:     "barber_deleted",
		Entity:     "barber",
		EntityID:   &barber.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
