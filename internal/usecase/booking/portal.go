package booking

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
)

type ListPortal struct {
	repo domain.PortalRepository
	now  func() time.Time
}

func NewListPortal(repo domain.PortalRepository) *ListPortal {
	return &ListPortal{repo: repo, now: time.Now}
}

// Execute splits the client's bookings around now, newest first.
func (uc *ListPortal) Execute(
	ctx context.Context,
	who domain.PortalIdentity,
) (*dto.PortalOverview, error) {

	rows, err := uc.repo.ListForClient(ctx, who)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].StartsAt.After(rows[j].StartsAt)
	})

	now := uc.now()
	out := &dto.PortalOverview{
		Upcoming: []dto.PortalAppointment{},
		Past:     []dto.PortalAppointment{},
	}
	for _, r := range rows {
		if !r.StartsAt.Before(now) {
			out.Upcoming = append(out.Upcoming, r)
			continue
		}
		out.Past = append(out.Past, r)
		if r.Status != string(domain.StatusCancelled) {
			out.Stats.Visits++
			out.Stats.TotalSpent += r.Price
		}
	}
	out.Stats.Upcoming = len(out.Upcoming)

	return out, nil
}
