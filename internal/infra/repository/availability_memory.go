package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
)

// AvailabilityMemoryRepository keeps overrides in process. Readers load an
// immutable snapshot and never wait on writers; writers copy the snapshot,
// change the copy and publish it.
type AvailabilityMemoryRepository struct {
	snapshot atomic.Pointer[map[string]domain.Override]
	writeMu  sync.Mutex
	now      func() time.Time
}

func NewAvailabilityMemoryRepository() *AvailabilityMemoryRepository {
	r := &AvailabilityMemoryRepository{now: time.Now}
	empty := map[string]domain.Override{}
	r.snapshot.Store(&empty)
	return r
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AvailabilityMemoryRepository) Get(
	_ context.Context,
	key domain.DateKey,
) (*domain.Override, error) {

	o, ok := (*r.snapshot.Load())[key.String()]
	if !ok {
		return nil, fmt.Errorf("%w: no override for %s", domain.ErrNotFound, key)
	}
	return cloneOverride(o), nil
}

func (r *AvailabilityMemoryRepository) GetByID(
	_ context.Context,
	id string,
) (*domain.Override, error) {

	for _, o := range *r.snapshot.Load() {
		if o.ID == id {
			return cloneOverride(o), nil
		}
	}
	return nil, fmt.Errorf("%w: no override with id %q", domain.ErrNotFound, id)
}

func (r *AvailabilityMemoryRepository) List(
	_ context.Context,
	from *domain.DateKey,
	to *domain.DateKey,
) ([]domain.Override, error) {

	out := []domain.Override{}
	for _, o := range *r.snapshot.Load() {
		if from != nil && o.Date.Before(*from) {
			continue
		}
		if to != nil && o.Date.After(*to) {
			continue
		}
		out = append(out, *cloneOverride(o))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *AvailabilityMemoryRepository) Upsert(
	_ context.Context,
	key domain.DateKey,
	in domain.OverrideInput,
) (*domain.Override, error) {

	var result domain.Override

	r.mutate(func(m map[string]domain.Override) bool {
		existing, ok := m[key.String()]
		if ok && existing.SameContent(in) {
			result = existing
			return false
		}

		now := r.now()
		o := domain.Override{
			ID:        uuid.NewString(),
			Date:      key,
			TimeSlots: slices.Clone(in.TimeSlots),
			IsBlocked: in.IsBlocked,
			Notes:     in.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if o.TimeSlots == nil {
			o.TimeSlots = []string{}
		}
		if ok {
			o.ID = existing.ID
			o.CreatedAt = existing.CreatedAt
		}

		m[key.String()] = o
		result = o
		return true
	})

	return cloneOverride(result), nil
}

func (r *AvailabilityMemoryRepository) Delete(
	_ context.Context,
	key domain.DateKey,
) (bool, error) {

	var removed bool
	r.mutate(func(m map[string]domain.Override) bool {
		_, removed = m[key.String()]
		delete(m, key.String())
		return removed
	})
	return removed, nil
}

func (r *AvailabilityMemoryRepository) DeleteByID(
	_ context.Context,
	id string,
) (bool, error) {

	var removed bool
	r.mutate(func(m map[string]domain.Override) bool {
		for k, o := range m {
			if o.ID == id {
				delete(m, k)
				removed = true
				break
			}
		}
		return removed
	})
	return removed, nil
}

func (r *AvailabilityMemoryRepository) DeleteBefore(
	_ context.Context,
	key domain.DateKey,
) (int64, error) {

	var n int64
	r.mutate(func(m map[string]domain.Override) bool {
		for k, o := range m {
			if o.Date.Before(key) {
				delete(m, k)
				n++
			}
		}
		return n > 0
	})
	return n, nil
}

// mutate runs fn on a private copy of the current snapshot and publishes the
// copy when fn reports a change.
func (r *AvailabilityMemoryRepository) mutate(fn func(map[string]domain.Override) bool) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	cur := *r.snapshot.Load()
	next := make(map[string]domain.Override, len(cur)+1)
	for k, v := range cur {
		next[k] = v
	}

	if fn(next) {
		r.snapshot.Store(&next)
	}
}

func cloneOverride(o domain.Override) *domain.Override {
	o.TimeSlots = slices.Clone(o.TimeSlots)
	if o.TimeSlots == nil {
		o.TimeSlots = []string{}
	}
	return &o
}

// Compile-time check
var _ domain.Repository = (*AvailabilityMemoryRepository)(nil)
