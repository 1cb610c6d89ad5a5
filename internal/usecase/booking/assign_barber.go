package booking

import (
	"context"
	"time"

	domain "github.com/minorebarber/booking-api/internal/domain/booking"
	"github.com/minorebarber/booking-api/internal/httperr"
	"github.com/minorebarber/booking-api/internal/models"
	"github.com/minorebarber/booking-api/internal/timezone"
)

// AssignBarber implements the "any barber" choice: among active barbers at
// the location who actually have the requested time free, pick the one with
// the fewest appointments that day. Some senior staff are never auto-assigned
// (policy exclusion list).
type AssignBarber struct {
	repo   domain.Repository
	policy domain.Policy
}

func NewAssignBarber(repo domain.Repository, policy domain.Policy) *AssignBarber {
	return &AssignBarber{repo: repo, policy: policy}
}

func (uc *AssignBarber) Execute(
	ctx context.Context,
	locationID uint,
	serviceID uint,
	at time.Time,
) (*models.Barber, error) {

	service, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	sched, err := uc.repo.GetSchedule(ctx)
	if err != nil {
		return nil, err
	}

	barbers, err := uc.repo.ListActiveBarbers(ctx, locationID)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	nextDay := day.AddDate(0, 0, 1)
	dur := time.Duration(service.DurationMin) * time.Minute
	requested := at.Format("15:04")

	var candidates []domain.Candidate
	var byID = make(map[uint]*models.Barber, len(barbers))

	for i := range barbers {
		b := &barbers[i]
		if uc.policy.IsExcludedFromAutoAssign(b.Name) {
			continue
		}

		existing, err := uc.repo.ListBarberAppointments(ctx, b.ID, day, nextDay)
		if err != nil {
			return nil, err
		}

		available := false
		for _, t := range domain.AvailableTimes(sched, dur, existing, now, uc.policy, domain.ChannelOnline) {
			if t == requested {
				available = true
				break
			}
		}
		if !available {
			continue
		}

		count, err := uc.repo.CountBarberAppointments(ctx, b.ID, day, nextDay)
		if err != nil {
			return nil, err
		}

		byID[b.ID] = b
		candidates = append(candidates, domain.Candidate{
			BarberID:   b.ID,
			TodayCount: int(count),
		})
	}

	id, ok := domain.LeastLoaded(candidates)
	if !ok {
		return nil, httperr.ErrBusiness("no_barber_available")
	}

	return byID[id], nil
}
