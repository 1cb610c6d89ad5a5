package booking

import (
	"context"
	"testing"
	"time"

	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
)

func seedAppointment(repo *fakeRepo, status, token string) *models.Appointment {
	repo.nextID++
	ap := &models.Appointment{
		ID:          repo.nextID,
		LocationID:  1,
		BarberID:    1,
		ServiceID:   10,
		ClientName:  "Ana",
		StartTime:   time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		Status:      status,
		CancelToken: token,
		Service:     models.Service{ID: 10, Name: "Cut", DurationMin: 30, Price: 20},
	}
	repo.appointments[ap.ID] = ap
	return ap
}

func newCancelUC(repo *fakeRepo) *CancelAppointment {
	auditD, notifyD, refreshT := testDispatchers()
	return NewCancelAppointment(repo, auditD, notifyD, refreshT)
}

func newCancelByTokenUC(repo *fakeRepo) *CancelByToken {
	auditD, notifyD, refreshT := testDispatchers()
	return NewCancelByToken(repo, auditD, notifyD, refreshT)
}

// ----- staff cancel -----

func TestCancelAppointmentNotFound(t *testing.T) {
	uc := newCancelUC(newFakeRepo())

	_, err := uc.Execute(context.Background(), nil, 99)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("want appointment_not_found, got %v", err)
	}
}

func TestCancelAppointment(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, string(domain.StatusScheduled), "")
	uc := newCancelUC(repo)

	got, err := uc.Execute(context.Background(), nil, ap.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if got.Status != string(domain.StatusCancelled) || got.CancelledAt == nil {
		t.Fatalf("appointment not cancelled: %+v", got)
	}
	if repo.updateCalls != 1 {
		t.Fatalf("updateCalls = %d, want 1", repo.updateCalls)
	}
}

func TestCancelAppointmentAlreadyCancelledIsNoop(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, string(domain.StatusCancelled), "")
	uc := newCancelUC(repo)

	got, err := uc.Execute(context.Background(), nil, ap.ID)
	if err != nil {
		t.Fatalf("repeat cancel must not error: %v", err)
	}
	if got.ID != ap.ID {
		t.Fatalf("expected the existing appointment back")
	}
	if repo.updateCalls != 0 {
		t.Fatalf("repeat cancel must not write, updateCalls = %d", repo.updateCalls)
	}
}

func TestCancelAppointmentCompletedFails(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, string(domain.StatusCompleted), "")
	uc := newCancelUC(repo)

	_, err := uc.Execute(context.Background(), nil, ap.ID)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("want invalid_state, got %v", err)
	}
}

// ----- token cancel -----

func TestCancelByToken(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, string(domain.StatusScheduled), "tok-abc")
	uc := newCancelByTokenUC(repo)

	got, err := uc.Execute(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("token cancel failed: %v", err)
	}
	if got.ID != ap.ID || got.Status != string(domain.StatusCancelled) {
		t.Fatalf("appointment not cancelled: %+v", got)
	}
}

func TestCancelByTokenDeadTokensLookAlike(t *testing.T) {
	repo := newFakeRepo()
	seedAppointment(repo, string(domain.StatusCompleted), "tok-done")
	seedAppointment(repo, string(domain.StatusCancelled), "tok-used")
	uc := newCancelByTokenUC(repo)

	// Empty, unknown, completed and already-used tokens all answer the same
	// way; a token must not leak appointment state.
	for _, tok := range []string{"", "tok-unknown", "tok-done", "tok-used"} {
		_, err := uc.Execute(context.Background(), tok)
		if !httperr.IsBusiness(err, "appointment_not_found") {
			t.Fatalf("token %q: want appointment_not_found, got %v", tok, err)
		}
	}

	if repo.updateCalls != 0 {
		t.Fatalf("dead tokens must not write, updateCalls = %d", repo.updateCalls)
	}
}
