package booking

import (
	"testing"
	"time"

	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
)

func TestCancelTransition(t *testing.T) {
	now := at(15, 0)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("cancelling a scheduled appointment: %v", err)
	}
	if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil {
		t.Fatalf("cancel did not record state: %+v", ap)
	}

	if err := Cancel(ap, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("cancelled is terminal, got %v", err)
	}

	done := &models.Appointment{Status: string(StatusCompleted)}
	if err := Cancel(done, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("completed cannot be cancelled, got %v", err)
	}
}

func TestCompleteTransition(t *testing.T) {
	now := at(15, 0)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	if err := Complete(ap, now); err != nil {
		t.Fatalf("completing a scheduled appointment: %v", err)
	}
	if ap.Status != string(StatusCompleted) || ap.CompletedAt == nil {
		t.Fatalf("complete did not record state: %+v", ap)
	}

	// A second checkout must fail; revenue is written exactly once.
	if err := Complete(ap, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("completed is terminal, got %v", err)
	}

	gone := &models.Appointment{Status: string(StatusCancelled)}
	if err := Complete(gone, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("cancelled cannot be completed, got %v", err)
	}
}

func TestEffectiveOverrides(t *testing.T) {
	price := 35.0
	durMin := 45

	ap := models.Appointment{
		StartTime:      at(14, 0),
		Service:        models.Service{DurationMin: 30, Price: 20},
		CustomPrice:    &price,
		CustomDuration: &durMin,
	}

	if got := ap.EffectivePrice(); got != 35.0 {
		t.Fatalf("EffectivePrice() = %v, want 35", got)
	}
	if got := ap.EffectiveDuration(); got != 45*time.Minute {
		t.Fatalf("EffectiveDuration() = %v, want 45m", got)
	}
	if got := ap.EndTime(); !got.Equal(at(14, 45)) {
		t.Fatalf("EndTime() = %v, want 14:45", got)
	}

	plain := models.Appointment{
		StartTime: at(14, 0),
		Service:   models.Service{DurationMin: 30, Price: 20},
	}
	if plain.EffectivePrice() != 20 || plain.EffectiveDuration() != 30*time.Minute {
		t.Fatalf("defaults should come from the service")
	}
}
