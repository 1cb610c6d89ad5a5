package booking

import (
	"reflect"
	"testing"
	"time"

	"github.com/minorebarber/booking-api/internal/models"
)

func openSchedule(startHour, endHour int) *models.Schedule {
	return &models.Schedule{
		StartHour: startHour,
		EndHour:   endHour,
		IsOpen:    true,
		Monday:    true,
		Tuesday:   true,
		Wednesday: true,
		Thursday:  true,
		Friday:    true,
		Saturday:  true,
		Sunday:    false,
	}
}

func testPolicy() Policy {
	return Policy{ClientMinStartHour: 11, ClosedWeekday: 0}
}

func TestNextBookable(t *testing.T) {
	tests := []struct {
		now  time.Time
		want time.Time
	}{
		{at(14, 0), at(14, 30)},
		{at(14, 1), at(14, 30)},
		{at(14, 29), at(14, 30)},
		{at(14, 30), at(15, 0)},
		{at(14, 59), at(15, 0)},
	}

	for _, tt := range tests {
		if got := NextBookable(tt.now); !got.Equal(tt.want) {
			t.Fatalf("NextBookable(%v) = %v, want %v", tt.now, got, tt.want)
		}
	}
}

func TestTargetDayRollsOverAfterClosing(t *testing.T) {
	sched := openSchedule(11, 19)

	// 2026-03-10 is a Tuesday.
	day := TargetDay(sched, at(18, 59))
	if day.Day() != 10 {
		t.Fatalf("before closing the target day is today, got %v", day)
	}

	day = TargetDay(sched, at(19, 0))
	if day.Day() != 11 {
		t.Fatalf("at closing the target day is tomorrow, got %v", day)
	}
}

func TestAvailableTimesSkipsBookedSlot(t *testing.T) {
	sched := openSchedule(11, 19)
	existing := []models.Appointment{appt(14, 0, 30, "scheduled")}

	times := AvailableTimes(sched, 30*time.Minute, existing, at(9, 0), testPolicy(), ChannelWalkin)

	has := func(s string) bool {
		for _, v := range times {
			if v == s {
				return true
			}
		}
		return false
	}

	if !has("13:30") {
		t.Fatalf("13:30 should be free, got %v", times)
	}
	if has("14:00") {
		t.Fatalf("14:00 is booked, got %v", times)
	}
	if !has("14:30") {
		t.Fatalf("14:30 should be free again, got %v", times)
	}
}

func TestAvailableTimesLongServiceBlocksStraddlingStarts(t *testing.T) {
	sched := openSchedule(11, 19)
	existing := []models.Appointment{appt(14, 0, 30, "scheduled")}

	times := AvailableTimes(sched, 60*time.Minute, existing, at(9, 0), testPolicy(), ChannelWalkin)

	for _, v := range times {
		if v == "13:30" {
			t.Fatalf("a 60m service at 13:30 runs into 14:00, got %v", times)
		}
	}

	// The last start must leave room before closing: 18:00+60m = 19:00 fits,
	// 18:30 does not.
	if times[len(times)-1] != "18:00" {
		t.Fatalf("last bookable 60m start should be 18:00, got %v", times)
	}
}

func TestAvailableTimesLateEveningIsEmpty(t *testing.T) {
	sched := openSchedule(11, 19)

	// 18:50 rounds up to 19:00, which is past the last slot of today.
	times := AvailableTimes(sched, 30*time.Minute, nil, at(18, 50), testPolicy(), ChannelWalkin)
	if len(times) != 0 {
		t.Fatalf("no slot fits after 18:50, got %v", times)
	}
}

func TestAvailableTimesRollsOverToTomorrow(t *testing.T) {
	sched := openSchedule(11, 19)

	times := AvailableTimes(sched, 30*time.Minute, nil, at(19, 30), testPolicy(), ChannelWalkin)

	if len(times) == 0 || times[0] != "11:00" {
		t.Fatalf("after closing, tomorrow starts at the window start, got %v", times)
	}
	if times[len(times)-1] != "18:30" {
		t.Fatalf("tomorrow's last 30m slot is 18:30, got %v", times)
	}
	if len(times) != 16 {
		t.Fatalf("expected the full 16-slot window, got %d: %v", len(times), times)
	}
}

func TestAvailableTimesClientFloor(t *testing.T) {
	sched := openSchedule(8, 19)
	now := at(8, 10)

	online := AvailableTimes(sched, 30*time.Minute, nil, now, testPolicy(), ChannelOnline)
	if online[0] != "11:00" {
		t.Fatalf("online bookings start at the client floor, got %v", online[0])
	}

	walkin := AvailableTimes(sched, 30*time.Minute, nil, now, testPolicy(), ChannelWalkin)
	if walkin[0] != "08:30" {
		t.Fatalf("walk-ins ignore the client floor, got %v", walkin[0])
	}
}

func TestAvailableTimesClosedDay(t *testing.T) {
	sched := openSchedule(11, 19)

	// 2026-03-08 is a Sunday.
	sunday := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
	if times := AvailableTimes(sched, 30*time.Minute, nil, sunday, testPolicy(), ChannelWalkin); times != nil {
		t.Fatalf("Sunday is closed, got %v", times)
	}

	sched.IsOpen = false
	if times := AvailableTimes(sched, 30*time.Minute, nil, at(9, 0), testPolicy(), ChannelWalkin); times != nil {
		t.Fatalf("master switch off means no slots, got %v", times)
	}
}

func TestAvailableTimesAscendingNoDuplicates(t *testing.T) {
	sched := openSchedule(11, 19)
	existing := []models.Appointment{
		appt(12, 0, 60, "scheduled"),
		appt(15, 30, 30, "scheduled"),
	}

	times := AvailableTimes(sched, 30*time.Minute, existing, at(9, 0), testPolicy(), ChannelWalkin)

	seen := map[string]bool{}
	for i, v := range times {
		if seen[v] {
			t.Fatalf("duplicate slot %s", v)
		}
		seen[v] = true
		if i > 0 && times[i-1] >= v {
			t.Fatalf("slots out of order: %v", times)
		}
	}

	want := []string{"11:00", "11:30", "13:00", "13:30", "14:00", "14:30", "15:00", "16:00", "16:30", "17:00", "17:30", "18:00", "18:30"}
	if !reflect.DeepEqual(times, want) {
		t.Fatalf("got %v, want %v", times, want)
	}
}
