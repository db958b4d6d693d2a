package availability

import (
	"context"
	"fmt"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/audit"
	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
)

type DeleteAvailabilityRecord struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAvailabilityRecord(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAvailabilityRecord {
	return &DeleteAvailabilityRecord{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAvailabilityRecord) Execute(
	ctx context.Context,
	id string,
	actor string,
) error {

	removed, err := uc.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: no override with id %q", domain.ErrNotFound, id)
	}

	dispatch(uc.audit, audit.Event{
		Actor:     actor,
		Action:    audit.ActionAvailabilityDeleted,
		EntityKey: id,
	})

	return nil
}
