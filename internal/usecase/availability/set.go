package availability

import (
	"context"
	"fmt"
	"strings"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/audit"
	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
)

// ======================================================
// INPUT
// ======================================================

type SetAvailabilityInput struct {
	Date      string
	TimeSlots []string
	IsBlocked bool
	Notes     string
	Actor     string
}

// ======================================================
// USE CASE
// ======================================================

type SetAvailability struct {
	repo    domain.Repository
	catalog *domain.SlotCatalog
	audit   *audit.Dispatcher
}

func NewSetAvailability(
	repo domain.Repository,
	catalog *domain.SlotCatalog,
	audit *audit.Dispatcher,
) *SetAvailability {
	return &SetAvailability{
		repo:    repo,
		catalog: catalog,
		audit:   audit,
	}
}

// Execute replaces the override of a date with exactly the given content.
func (uc *SetAvailability) Execute(
	ctx context.Context,
	in SetAvailabilityInput,
) (*domain.Override, error) {

	key, err := domain.ParseDateKey(in.Date)
	if err != nil {
		return nil, err
	}

	slots, unknown := uc.catalog.Canonicalize(in.TimeSlots)
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: unknown time slots %q", domain.ErrInvalidInput, unknown)
	}

	override, err := uc.repo.Upsert(ctx, key, domain.OverrideInput{
		TimeSlots: slots,
		IsBlocked: in.IsBlocked,
		Notes:     strings.TrimSpace(in.Notes),
	})
	if err != nil {
		return nil, err
	}

	dispatch(uc.audit, audit.Event{
		Actor:     in.Actor,
		Action:    audit.ActionAvailabilitySet,
		EntityKey: key.String(),
		Metadata: map[string]any{
			"timeSlots": override.TimeSlots,
			"isBlocked": override.IsBlocked,
		},
	})

	return override, nil
}
