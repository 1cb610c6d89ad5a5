package booking

import (
	"context"
	"testing"
	"time"

	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
)

func newUpdateUC(repo *fakeRepo) *UpdateAppointmentDetails {
	auditD, _, refreshT := testDispatchers()
	return NewUpdateAppointmentDetails(repo, auditD, refreshT)
}

func TestUpdateDetailsNotFound(t *testing.T) {
	uc := newUpdateUC(newFakeRepo())

	_, err := uc.Execute(context.Background(), nil, UpdateDetailsInput{
		AppointmentID: 99, Time: "15:00", Price: 20, Duration: 30,
	})
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("want appointment_not_found, got %v", err)
	}
}

func TestUpdateDetailsOnlyScheduled(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, string(domain.StatusCompleted), "")
	uc := newUpdateUC(repo)

	_, err := uc.Execute(context.Background(), nil, UpdateDetailsInput{
		AppointmentID: ap.ID, Time: "15:00", Price: 20, Duration: 30,
	})
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("want invalid_state, got %v", err)
	}
}

func TestUpdateDetailsValidation(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, string(domain.StatusScheduled), "")
	uc := newUpdateUC(repo)

	_, err := uc.Execute(context.Background(), nil, UpdateDetailsInput{
		AppointmentID: ap.ID, Time: "quarter past", Price: 20, Duration: 30,
	})
	if !httperr.IsBusiness(err, "invalid_date_or_time") {
		t.Fatalf("want invalid_date_or_time, got %v", err)
	}

	_, err = uc.Execute(context.Background(), nil, UpdateDetailsInput{
		AppointmentID: ap.ID, Time: "15:00", Price: 20, Duration: 0,
	})
	if !httperr.IsBusiness(err, "invalid_override") {
		t.Fatalf("want invalid_override, got %v", err)
	}

	_, err = uc.Execute(context.Background(), nil, UpdateDetailsInput{
		AppointmentID: ap.ID, Time: "15:00", Price: -1, Duration: 30,
	})
	if !httperr.IsBusiness(err, "invalid_override") {
		t.Fatalf("want invalid_override, got %v", err)
	}
}

func TestUpdateDetailsConflictWithOtherAppointment(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, string(domain.StatusScheduled), "")

	other := models.Appointment{
		ID:        99,
		BarberID:  ap.BarberID,
		StartTime: time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC),
		Status:    string(domain.StatusScheduled),
		Service:   models.Service{DurationMin: 30},
	}
	repo.perBarber[ap.BarberID] = []models.Appointment{*ap, other}

	uc := newUpdateUC(repo)

	_, err := uc.Execute(context.Background(), nil, UpdateDetailsInput{
		AppointmentID: ap.ID, Time: "16:00", Price: 20, Duration: 30,
	})
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("want time_conflict, got %v", err)
	}
}

func TestUpdateDetailsMovesAndOverrides(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, string(domain.StatusScheduled), "")

	// The appointment's own row must not block the re-check: the new
	// interval 14:00+45m overlaps the old 14:00+30m.
	repo.perBarber[ap.BarberID] = []models.Appointment{*ap}

	uc := newUpdateUC(repo)

	got, err := uc.Execute(context.Background(), nil, UpdateDetailsInput{
		AppointmentID: ap.ID, Time: "14:00", Price: 35, Duration: 45,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if got.StartTime.Hour() != 14 || got.StartTime.Minute() != 0 {
		t.Fatalf("start = %v, want 14:00", got.StartTime)
	}
	if got.StartTime.Day() != ap.StartTime.Day() {
		t.Fatalf("the move must stay on the same day")
	}
	if got.CustomPrice == nil || *got.CustomPrice != 35 {
		t.Fatalf("price override not recorded: %+v", got.CustomPrice)
	}
	if got.CustomDuration == nil || *got.CustomDuration != 45 {
		t.Fatalf("duration override not recorded: %+v", got.CustomDuration)
	}

	// The move must go through the conflict-checked write, never the plain
	// update that skips the day scan.
	if repo.updateScheduledCalls != 1 {
		t.Fatalf("updateScheduledCalls = %d, want 1", repo.updateScheduledCalls)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("updateCalls = %d, want 0", repo.updateCalls)
	}
}
