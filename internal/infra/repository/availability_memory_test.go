package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/httperr"
)

func key(t *testing.T, s string) domain.DateKey {
	t.Helper()
	k, err := domain.ParseDateKey(s)
	require.NoError(t, err)
	return k
}

func TestMemoryGetMissing(t *testing.T) {
	repo := NewAvailabilityMemoryRepository()

	o, err := repo.Get(context.Background(), key(t, "2024-06-01"))

	assert.Nil(t, o)
	assert.True(t, httperr.IsBusiness(err, domain.CodeNotFound))
}

func TestMemoryUpsertCreatesThenReplaces(t *testing.T) {
	ctx := context.Background()
	repo := NewAvailabilityMemoryRepository()
	k := key(t, "2024-06-01")

	first, err := repo.Upsert(ctx, k, domain.OverrideInput{
		TimeSlots: []string{"09:00 AM", "10:00 AM"},
		Notes:     "morning only",
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := repo.Upsert(ctx, k, domain.OverrideInput{
		TimeSlots: []string{"03:00 PM"},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, []string{"03:00 PM"}, second.TimeSlots)
	assert.Empty(t, second.Notes, "notes are replaced, not merged")

	got, err := repo.Get(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestMemoryUpsertIdenticalIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewAvailabilityMemoryRepository()
	k := key(t, "2024-06-01")

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	in := domain.OverrideInput{TimeSlots: []string{"09:00 AM"}, Notes: "n"}
	first, err := repo.Upsert(ctx, k, in)
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	second, err := repo.Upsert(ctx, k, in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
}

func TestMemoryReturnedSlotsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewAvailabilityMemoryRepository()
	k := key(t, "2024-06-01")

	in := []string{"09:00 AM"}
	o, err := repo.Upsert(ctx, k, domain.OverrideInput{TimeSlots: in})
	require.NoError(t, err)

	in[0] = "mutated"
	o.TimeSlots[0] = "mutated too"

	got, err := repo.Get(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM"}, got.TimeSlots)
}

func TestMemoryListRangeAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewAvailabilityMemoryRepository()

	for _, d := range []string{"2024-06-03", "2024-06-01", "2024-06-05", "2024-06-02"} {
		_, err := repo.Upsert(ctx, key(t, d), domain.OverrideInput{IsBlocked: true})
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-05"}, dates(all))

	from, to := key(t, "2024-06-02"), key(t, "2024-06-03")
	ranged, err := repo.List(ctx, &from, &to)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-02", "2024-06-03"}, dates(ranged))

	tail, err := repo.List(ctx, &to, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-03", "2024-06-05"}, dates(tail))

	head, err := repo.List(ctx, nil, &from)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01", "2024-06-02"}, dates(head))
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewAvailabilityMemoryRepository()
	k := key(t, "2024-06-01")

	o, err := repo.Upsert(ctx, k, domain.OverrideInput{IsBlocked: true})
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, k)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, k)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = repo.DeleteByID(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMemoryDeleteByID(t *testing.T) {
	ctx := context.Background()
	repo := NewAvailabilityMemoryRepository()

	o, err := repo.Upsert(ctx, key(t, "2024-06-01"), domain.OverrideInput{IsBlocked: true})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got.Date.String())

	removed, err := repo.DeleteByID(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = repo.GetByID(ctx, o.ID)
	assert.True(t, httperr.IsBusiness(err, domain.CodeNotFound))

	_, err = repo.Get(ctx, key(t, "2024-06-01"))
	assert.True(t, httperr.IsBusiness(err, domain.CodeNotFound))
}

func TestMemoryDeleteBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewAvailabilityMemoryRepository()

	for _, d := range []string{"2024-05-30", "2024-05-31", "2024-06-01", "2024-06-02"} {
		_, err := repo.Upsert(ctx, key(t, d), domain.OverrideInput{IsBlocked: true})
		require.NoError(t, err)
	}

	n, err := repo.DeleteBefore(ctx, key(t, "2024-06-01"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	left, err := repo.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01", "2024-06-02"}, dates(left))
}

func TestMemoryConcurrentReadersAndWriters(t *testing.T) {
	ctx := context.Background()
	repo := NewAvailabilityMemoryRepository()
	k := key(t, "2024-06-01")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			blocked := i%2 == 0
			_, _ = repo.Upsert(ctx, k, domain.OverrideInput{IsBlocked: blocked})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = repo.Get(ctx, k)
			_, _ = repo.List(ctx, nil, nil)
		}()
	}
	wg.Wait()

	all, err := repo.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func dates(os []domain.Override) []string {
	out := make([]string, 0, len(os))
	for _, o := range os {
		out = append(out, o.Date.String())
	}
	return out
}
