package availability

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
)

type ListAvailabilityInput struct {
	StartDate string
	EndDate   string
}

type ListAvailability struct {
	repo domain.Repository
}

func NewListAvailability(repo domain.Repository) *ListAvailability {
	return &ListAvailability{repo: repo}
}

func (uc *ListAvailability) Execute(
	ctx context.Context,
	in ListAvailabilityInput,
) ([]domain.Override, error) {

	from, err := optionalDateKey(in.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := optionalDateKey(in.EndDate)
	if err != nil {
		return nil, err
	}

	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: startDate %s is after endDate %s", domain.ErrInvalidInput, from, to)
	}

	return uc.repo.List(ctx, from, to)
}

func optionalDateKey(s string) (*domain.DateKey, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	k, err := domain.ParseDateKey(s)
	if err != nil {
		return nil, err
	}
	return &k, nil
}
