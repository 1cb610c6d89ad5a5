package booking

import (
	"time"

	"github.com/minorebarber/booking-api/internal/models"
)

// SlotInterval is the booking grid granularity. Services longer than one
// slot occupy several grid rows, but overlap math always uses exact minutes.
const SlotInterval = 30 * time.Minute

// NextBookable rounds now up to the next half-hour boundary: minute < 30
// rounds to :30 of the same hour, otherwise to :00 of the next hour.
func NextBookable(now time.Time) time.Time {
	if now.Minute() < 30 {
		return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 30, 0, 0, now.Location())
	}
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour()+1, 0, 0, 0, now.Location())
}

// TargetDay returns the day whose window AvailableTimes will enumerate:
// today, or tomorrow once now is at or past closing time.
func TargetDay(sched *models.Schedule, now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if now.Hour() >= sched.EndHour {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// AvailableTimes computes the bookable start times for one barber and one
// service duration on the target day, as ascending "HH:MM" strings.
//
// existing must hold the barber's appointments for the target day with
// Service preloaded; cancelled rows are ignored. An empty result is a valid
// answer (closed day or fully booked), not an error.
func AvailableTimes(
	sched *models.Schedule,
	dur time.Duration,
	existing []models.Appointment,
	now time.Time,
	pol Policy,
	ch Channel,
) []string {

	if !sched.IsOpen || dur <= 0 {
		return nil
	}

	day := TargetDay(sched, now)
	if !sched.OpenOn(day.Weekday()) {
		return nil
	}

	windowStart := time.Date(day.Year(), day.Month(), day.Day(), sched.StartHour, 0, 0, 0, day.Location())
	windowEnd := time.Date(day.Year(), day.Month(), day.Day(), sched.EndHour, 0, 0, 0, day.Location())

	var earliest time.Time
	if day.After(now) {
		// Rolled over past closing: the whole of tomorrow's window is fair game.
		earliest = windowStart
	} else {
		earliest = NextBookable(now)
		if earliest.Before(windowStart) {
			earliest = windowStart
		}

		if ch == ChannelOnline && pol.ClientMinStartHour > 0 {
			floor := time.Date(day.Year(), day.Month(), day.Day(), pol.ClientMinStartHour, 0, 0, 0, day.Location())
			if earliest.Before(floor) {
				earliest = floor
			}
		}
	}

	var times []string
	for cur := windowStart; cur.Before(windowEnd); cur = cur.Add(SlotInterval) {
		if cur.Before(earliest) {
			continue
		}
		if cur.Add(dur).After(windowEnd) {
			continue
		}
		if HasConflict(cur, dur, existing) {
			continue
		}
		times = append(times, cur.Format("15:04"))
	}

	return times
}
