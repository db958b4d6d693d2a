package availability

import (
	"context"
	"time"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/audit"
	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/timezone"
)

// PruneAvailability drops overrides older than the retention window,
// counted from today in the site's timezone.
type PruneAvailability struct {
	repo          domain.Repository
	audit         *audit.Dispatcher
	siteTimezone  string
	retentionDays int
	now           func() time.Time
}

func NewPruneAvailability(
	repo domain.Repository,
	audit *audit.Dispatcher,
	siteTimezone string,
	retentionDays int,
) *PruneAvailability {
	return &PruneAvailability{
		repo:          repo,
		audit:         audit,
		siteTimezone:  siteTimezone,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// Cutoff is the first date that is kept.
func (uc *PruneAvailability) Cutoff() domain.DateKey {
	today := domain.DateKeyFromTime(timezone.In(uc.now(), uc.siteTimezone))
	return today.AddDays(-uc.retentionDays)
}

func (uc *PruneAvailability) Execute(ctx context.Context) (int64, error) {
	cutoff := uc.Cutoff()

	n, err := uc.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		dispatch(uc.audit, audit.Event{
			Actor:     "system",
			Action:    audit.ActionAvailabilityPruned,
			EntityKey: cutoff.String(),
			Metadata:  map[string]any{"deleted": n},
		})
	}

	return n, nil
}
