package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minorebarber/booking-api/internal/backup"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/timezone"
	ucBooking "github.com/minorebarber/booking-api/internal/usecase/booking"
)

// MaintenanceHandler exposes the scheduled jobs for manual runs.
type MaintenanceHandler struct {
	sweep    *ucBooking.Sweep
	exporter *backup.Exporter
}

func NewMaintenanceHandler(sweep *ucBooking.Sweep, exporter *backup.Exporter) *MaintenanceHandler {
	return &MaintenanceHandler{sweep: sweep, exporter: exporter}
}

// Sweep deletes every appointment that started before today. Idempotent;
// running it twice deletes nothing the second time.
func (h *MaintenanceHandler) Sweep(c *gin.Context) {
	deleted, err := h.sweep.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_sweep", "Could not sweep past appointments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Export uploads a catalog and revenue snapshot to S3.
func (h *MaintenanceHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		httperr.BadRequest(c, "export_not_configured", "No export bucket is configured.")
		return
	}

	key, err := h.exporter.Export(c.Request.Context(), timezone.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_export", "Could not upload the snapshot.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key})
}
