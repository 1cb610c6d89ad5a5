package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/middleware"
)

// ----- Context helpers -----

func currentUserID(c *gin.Context) *uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

// ----- Param helpers -----

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return uint(v), true
}

func uintQuery(c *gin.Context, name string, def uint) uint {
	s := c.Query(name)
	if s == "" {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return def
	}
	return uint(v)
}

// ----- Business error mapping -----

// writeBusiness translates use case business errors into HTTP answers.
// Anything without a mapping is treated as an internal failure.
func writeBusiness(c *gin.Context, err error, fallbackCode string) {
	codes := map[string]func(*gin.Context, string, string){
		"time_conflict":       httperr.Conflict,
		"no_barber_available": httperr.Conflict,
		"invalid_state":       httperr.Conflict,

		"appointment_not_found": httperr.NotFound,
		"service_not_found":     httperr.NotFound,
		"barber_not_found":      httperr.NotFound,

		"too_soon":             httperr.BadRequest,
		"invalid_date_or_time": httperr.BadRequest,
		"invalid_date":         httperr.BadRequest,
		"invalid_month":        httperr.BadRequest,
		"invalid_override":     httperr.BadRequest,
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		if write, known := codes[be.Code]; known {
			write(c, be.Code, messageFor(be.Code))
			return
		}
	}

	httperr.Internal(c, fallbackCode, "Unexpected error.")
}

func messageFor(code string) string {
	switch code {
	case "time_conflict":
		return "That time is already taken."
	case "no_barber_available":
		return "No barber is free at that time."
	case "invalid_state":
		return "The appointment is not in a state that allows this."
	case "appointment_not_found":
		return "Appointment not found."
	case "service_not_found":
		return "Service not found."
	case "barber_not_found":
		return "Barber not found."
	case "too_soon":
		return "The requested time is too close; pick a later slot."
	case "invalid_date_or_time":
		return "Invalid date or time."
	case "invalid_date":
		return "Invalid date."
	case "invalid_month":
		return "Invalid month."
	case "invalid_override":
		return "Invalid price or duration."
	default:
		return "Request failed."
	}
}
