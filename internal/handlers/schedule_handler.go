package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/minorebarber/booking-api/internal/audit"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
	"github.com/minorebarber/booking-api/internal/refresh"
)

// ======================================================
// HANDLER
// ======================================================

// ScheduleHandler manages the singleton opening-hours row. Changes take
// effect on the next availability read; existing appointments outside the
// new window are left alone.
type ScheduleHandler struct {
	db      *gorm.DB
	audit   *audit.Dispatcher
	refresh *refresh.Trigger
}

func NewScheduleHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	refreshTrigger *refresh.Trigger,
) *ScheduleHandler {
	return &ScheduleHandler{
		db:      db,
		audit:   auditDispatcher,
		refresh: refreshTrigger,
	}
}

// ======================================================
// DTOs
// ======================================================

type UpdateHoursRequest struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour" binding:"required"`
}

type ToggleOpenRequest struct {
	IsOpen bool `json:"is_open"`
}

type WeekdayRequest struct {
	Weekday int  `json:"weekday"` // 0 = Sunday ... 6 = Saturday
	Open    bool `json:"open"`
}

// ======================================================
// READ
// ======================================================

func (h *ScheduleHandler) Get(c *gin.Context) {
	var sched models.Schedule
	if err := h.db.First(&sched).Error; err != nil {
		httperr.Internal(c, "failed_to_load_schedule", "Could not load the schedule.")
		return
	}
	c.JSON(http.StatusOK, sched)
}

// ======================================================
// WRITE
// ======================================================

func (h *ScheduleHandler) load(c *gin.Context) (*models.Schedule, bool) {
	var sched models.Schedule
	if err := h.db.First(&sched).Error; err != nil {
		httperr.Internal(c, "failed_to_load_schedule", "Could not load the schedule.")
		return nil, false
	}
	return &sched, true
}

func (h *ScheduleHandler) save(c *gin.Context, sched *models.Schedule, action string) {
	if err := h.db.Save(sched).Error; err != nil {
		httperr.Internal(c, "failed_to_update_schedule", "Could not update the schedule.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   action,
		Entity:   "schedule",
		EntityID: &sched.ID,
	})

	h.refresh.Touch(c.Request.Context())

	c.JSON(http.StatusOK, sched)
}

// UpdateHours sets the daily window. Hours are whole numbers on a 24h clock
// and the window must be non-empty.
func (h *ScheduleHandler) UpdateHours(c *gin.Context) {
	var req UpdateHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.StartHour < 0 || req.EndHour > 24 || req.StartHour >= req.EndHour {
		httperr.BadRequest(c, "invalid_hours", "Hours must satisfy 0 <= start < end <= 24.")
		return
	}

	sched, ok := h.load(c)
	if !ok {
		return
	}

	sched.StartHour = req.StartHour
	sched.EndHour = req.EndHour
	h.save(c, sched, "schedule_hours_updated")
}

// ToggleOpen is the master switch: closed means no availability at all,
// whatever the weekday flags say.
func (h *ScheduleHandler) ToggleOpen(c *gin.Context) {
	var req ToggleOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	sched, ok := h.load(c)
	if !ok {
		return
	}

	sched.IsOpen = req.IsOpen
	h.save(c, sched, "schedule_open_toggled")
}

func (h *ScheduleHandler) SetWeekday(c *gin.Context) {
	var req WeekdayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Weekday < 0 || req.Weekday > 6 {
		httperr.BadRequest(c, "invalid_weekday", "Weekday must be between 0 (Sunday) and 6 (Saturday).")
		return
	}

	sched, ok := h.load(c)
	if !ok {
		return
	}

	sched.SetOpenOn(time.Weekday(req.Weekday), req.Open)
	h.save(c, sched, "schedule_weekday_updated")
}
