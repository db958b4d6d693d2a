package availability

import (
	"context"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/audit"
	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
)

type ResetAvailability struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewResetAvailability(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ResetAvailability {
	return &ResetAvailability{
		repo:  repo,
		audit: audit,
	}
}

// Execute returns the date to the implicit default. Resetting a date that
// has no override succeeds and reports false.
func (uc *ResetAvailability) Execute(
	ctx context.Context,
	date string,
	actor string,
) (bool, error) {

	key, err := domain.ParseDateKey(date)
	if err != nil {
		return false, err
	}

	removed, err := uc.repo.Delete(ctx, key)
	if err != nil {
		return false, err
	}

	if removed {
		dispatch(uc.audit, audit.Event{
			Actor:     actor,
			Action:    audit.ActionAvailabilityReset,
			EntityKey: key.String(),
		})
	}

	return removed, nil
}
