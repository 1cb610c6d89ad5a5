package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/timezone"
	ucBooking "github.com/minorebarber/booking-api/internal/usecase/booking"
)

// RevenueHandler reads the additive ledgers. The numbers survive the nightly
// appointment sweep because checkout already wrote them.
type RevenueHandler struct {
	report *ucBooking.RevenueReport
}

func NewRevenueHandler(report *ucBooking.RevenueReport) *RevenueHandler {
	return &RevenueHandler{report: report}
}

// Daily defaults to today when no date is given.
func (h *RevenueHandler) Daily(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = timezone.Now().Format("2006-01-02")
	}

	report, err := h.report.Daily(c.Request.Context(), date, uintQuery(c, "location_id", 1))
	if err != nil {
		writeBusiness(c, err, "failed_to_get_revenue")
		return
	}

	c.JSON(http.StatusOK, report)
}

// Weekly reports the Monday-through-Sunday week containing the given date.
func (h *RevenueHandler) Weekly(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = timezone.Now().Format("2006-01-02")
	}

	report, err := h.report.Weekly(c.Request.Context(), date, uintQuery(c, "location_id", 1))
	if err != nil {
		writeBusiness(c, err, "failed_to_get_revenue")
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *RevenueHandler) Monthly(c *gin.Context) {
	now := timezone.Now()

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	report, err := h.report.Monthly(c.Request.Context(), year, month, uintQuery(c, "location_id", 1))
	if err != nil {
		writeBusiness(c, err, "failed_to_get_revenue")
		return
	}

	c.JSON(http.StatusOK, report)
}
