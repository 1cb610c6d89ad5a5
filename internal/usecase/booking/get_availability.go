package booking

import (
	"context"
	"sort"
	"time"

	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/timezone"
)

type AvailabilityInput struct {
	LocationID uint
	BarberID   uint // 0 = any active barber at the location
	ServiceID  uint
	Channel    domain.Channel
}

type GetAvailability struct {
	repo   domain.Repository
	policy domain.Policy
}

func NewGetAvailability(repo domain.Repository, policy domain.Policy) *GetAvailability {
	return &GetAvailability{repo: repo, policy: policy}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]string, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	sched, err := uc.repo.GetSchedule(ctx)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()
	day := domain.TargetDay(sched, now)
	nextDay := day.AddDate(0, 0, 1)
	dur := time.Duration(service.DurationMin) * time.Minute

	if in.BarberID > 0 {
		existing, err := uc.repo.ListBarberAppointments(ctx, in.BarberID, day, nextDay)
		if err != nil {
			return nil, err
		}
		return domain.AvailableTimes(sched, dur, existing, now, uc.policy, in.Channel), nil
	}

	// No barber picked: a slot is offered if at least one active barber has
	// it free.
	barbers, err := uc.repo.ListActiveBarbers(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, b := range barbers {
		existing, err := uc.repo.ListBarberAppointments(ctx, b.ID, day, nextDay)
		if err != nil {
			return nil, err
		}
		for _, t := range domain.AvailableTimes(sched, dur, existing, now, uc.policy, in.Channel) {
			seen[t] = true
		}
	}

	times := make([]string, 0, len(seen))
	for t := range seen {
		times = append(times, t)
	}
	sort.Strings(times)

	return times, nil
}
