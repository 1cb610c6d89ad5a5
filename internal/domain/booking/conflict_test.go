package booking

import (
	"math/rand"
	"testing"
	"time"

	"github.com/minorebarber/booking-api/internal/models"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func appt(h, m, durationMin int, status string) models.Appointment {
	return models.Appointment{
		StartTime: at(h, m),
		Status:    status,
		Service:   models.Service{DurationMin: durationMin},
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart time.Time
		aDur   time.Duration
		bStart time.Time
		bDur   time.Duration
		want   bool
	}{
		{"identical", at(14, 0), 30 * time.Minute, at(14, 0), 30 * time.Minute, true},
		{"a inside b", at(14, 10), 10 * time.Minute, at(14, 0), 60 * time.Minute, true},
		{"b inside a", at(14, 0), 60 * time.Minute, at(14, 10), 10 * time.Minute, true},
		{"partial front", at(13, 45), 30 * time.Minute, at(14, 0), 30 * time.Minute, true},
		{"partial back", at(14, 15), 30 * time.Minute, at(14, 0), 30 * time.Minute, true},
		{"touching end to start", at(13, 30), 30 * time.Minute, at(14, 0), 30 * time.Minute, false},
		{"touching start to end", at(14, 30), 30 * time.Minute, at(14, 0), 30 * time.Minute, false},
		{"disjoint", at(10, 0), 30 * time.Minute, at(14, 0), 30 * time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aDur, tt.bStart, tt.bDur)
			if got != tt.want {
				t.Fatalf("Overlaps() = %v, want %v", got, tt.want)
			}

			// Overlap is symmetric.
			if Overlaps(tt.bStart, tt.bDur, tt.aStart, tt.aDur) != tt.want {
				t.Fatalf("Overlaps() not symmetric for %s", tt.name)
			}
		})
	}
}

// Cross-check the interval math against a brute-force minute grid.
func TestOverlapsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		aStart := rng.Intn(600)
		aDur := 1 + rng.Intn(120)
		bStart := rng.Intn(600)
		bDur := 1 + rng.Intn(120)

		want := false
		for m := aStart; m < aStart+aDur; m++ {
			if m >= bStart && m < bStart+bDur {
				want = true
				break
			}
		}

		got := Overlaps(
			at(0, 0).Add(time.Duration(aStart)*time.Minute),
			time.Duration(aDur)*time.Minute,
			at(0, 0).Add(time.Duration(bStart)*time.Minute),
			time.Duration(bDur)*time.Minute,
		)

		if got != want {
			t.Fatalf("a=[%d,+%d) b=[%d,+%d): got %v, want %v", aStart, aDur, bStart, bDur, got, want)
		}
	}
}

func TestHasConflict(t *testing.T) {
	existing := []models.Appointment{
		appt(14, 0, 30, "scheduled"),
		appt(16, 0, 60, "cancelled"),
	}

	if HasConflict(at(13, 30), 30*time.Minute, existing) {
		t.Fatalf("13:30+30m should not conflict with 14:00-14:30")
	}
	if !HasConflict(at(14, 0), 30*time.Minute, existing) {
		t.Fatalf("14:00+30m should conflict with 14:00-14:30")
	}
	if !HasConflict(at(13, 45), 60*time.Minute, existing) {
		t.Fatalf("13:45+60m should conflict with 14:00-14:30")
	}
	if HasConflict(at(16, 0), 30*time.Minute, existing) {
		t.Fatalf("cancelled appointments must not block")
	}
}

func TestHasConflictUsesCustomDuration(t *testing.T) {
	long := 90
	existing := []models.Appointment{
		{
			StartTime:      at(14, 0),
			Status:         "scheduled",
			Service:        models.Service{DurationMin: 30},
			CustomDuration: &long,
		},
	}

	// 15:00 is free against the 30-minute default, but the override runs
	// until 15:30.
	if !HasConflict(at(15, 0), 30*time.Minute, existing) {
		t.Fatalf("override duration should extend the blocked interval")
	}
	if HasConflict(at(15, 30), 30*time.Minute, existing) {
		t.Fatalf("15:30 is past the override end")
	}
}
