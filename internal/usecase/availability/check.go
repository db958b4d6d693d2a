package availability

import (
	"context"
	"errors"

	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
)

type CheckAvailability struct {
	repo    domain.Repository
	catalog *domain.SlotCatalog
}

func NewCheckAvailability(
	repo domain.Repository,
	catalog *domain.SlotCatalog,
) *CheckAvailability {
	return &CheckAvailability{
		repo:    repo,
		catalog: catalog,
	}
}

// Execute resolves the slot partition of one date. Read only.
func (uc *CheckAvailability) Execute(
	ctx context.Context,
	date string,
) (domain.Resolution, error) {

	key, err := domain.ParseDateKey(date)
	if err != nil {
		return domain.Resolution{}, err
	}

	override, err := uc.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Resolution{}, err
		}
		override = nil
	}

	return domain.Resolve(uc.catalog, key, override), nil
}
