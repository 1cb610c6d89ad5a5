package booking

import (
	"time"

	"github.com/minorebarber/booking-api/internal/models"
)

// Overlaps reports whether the half-open intervals [aStart, aStart+aDur) and
// [bStart, bStart+bDur) intersect. Touching intervals do not overlap.
func Overlaps(aStart time.Time, aDur time.Duration, bStart time.Time, bDur time.Duration) bool {
	aEnd := aStart.Add(aDur)
	bEnd := bStart.Add(bDur)
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// HasConflict checks a candidate interval against a barber's existing
// appointments. Cancelled rows never block; override durations win over the
// service default, so existing must have Service preloaded.
func HasConflict(start time.Time, dur time.Duration, existing []models.Appointment) bool {
	for i := range existing {
		ap := &existing[i]
		if ap.Status == string(StatusCancelled) {
			continue
		}
		if Overlaps(start, dur, ap.StartTime, ap.EffectiveDuration()) {
			return true
		}
	}
	return false
}
