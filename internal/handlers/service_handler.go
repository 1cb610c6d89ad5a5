package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/minorebarber/booking-api/internal/audit"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/httpresp"
	"github.com/minorebarber/booking-api/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	LocationID  uint    `json:"location_id"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	DurationMin *int     `json:"duration_min"`
	Price       *float64 `json:"price"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
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

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.DurationMin <= 0 || req.Price < 0 {
		httperr.BadRequest(c, "invalid_service", "Duration must be positive and price non-negative.")
		return
	}

	locationID := req.LocationID
	if locationID == 0 {
		locationID = 1
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		LocationID:  locationID,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		LocationID: locationID,
		UserID:     currentUserID(c),
		Action:     "service_created",
		Entity:     "service",
		EntityID:   &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

// Update changes the service defaults. Existing appointments keep their
// recorded overrides; only future bookings see the new values.
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if req.Name != nil && *req.Name != "" {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_service", "Duration must be positive.")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_service", "Price must be non-negative.")
			return
		}
		service.Price = *req.Price
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		LocationID: service.LocationID,
		UserID:     currentUserID(c),
		Action:     "service_updated",
		Entity:     "service",
		EntityID:   &service.ID,
	})

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var inUse int64
	h.db.Model(&models.Appointment{}).
		Where("service_id = ? AND status = 'scheduled'", id).
		Count(&inUse)
	if inUse > 0 {
		httperr.Conflict(c, "service_in_use", "The service still has scheduled appointments.")
		return
	}

	if err := h.db.Delete(&models.Service{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		LocationID: service.LocationID,
		UserID:     currentUserID(c),
		Action:     "service_deleted",
		Entity:     "service",
		EntityID:   &service.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
