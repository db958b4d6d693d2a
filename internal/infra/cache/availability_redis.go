package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
)

const (
	KeyPrefix = "availability:override:"

	// stored for dates known to have no override
	absentMarker = "null"

	// a write replaces the generation token of its date; DeleteBefore
	// replaces the shared one
	genPrefix = "availability:gen:"
	genAllKey = genPrefix + "all"
	genTTL    = 24 * time.Hour
)

// fillScript stores ARGV[3] under KEYS[1] only while both generation
// tokens still hold the values read before the store was consulted.
var fillScript = redis.NewScript(`
if (redis.call('GET', KEYS[2]) or '') ~= ARGV[1] then return 0 end
if (redis.call('GET', KEYS[3]) or '') ~= ARGV[2] then return 0 end
redis.call('SET', KEYS[1], ARGV[3], 'PX', ARGV[4])
return 1
`)

// AvailabilityCache is a read-through cache in front of an override store.
// Only single-date lookups are cached. Any redis failure falls through to
// the store, so the cache never changes what callers observe.
type AvailabilityCache struct {
	next   domain.Repository
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

var _ domain.Repository = (*AvailabilityCache)(nil)

func NewAvailabilityCache(
	next domain.Repository,
	client *redis.Client,
	ttl time.Duration,
	log *zap.Logger,
) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AvailabilityCache{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func cacheKey(key domain.DateKey) string {
	return KeyPrefix + key.String()
}

func genKey(key domain.DateKey) string {
	return genPrefix + key.String()
}

// generation snapshots the tokens a later fill is checked against.
type generation struct {
	date, all string
	ok        bool
}

// ======================================================
// READS
// ======================================================

func (c *AvailabilityCache) Get(ctx context.Context, key domain.DateKey) (*domain.Override, error) {
	raw, err := c.client.Get(ctx, cacheKey(key)).Result()
	switch {
	case err == nil:
		if raw == absentMarker {
			return nil, fmt.Errorf("%w: no override for %s", domain.ErrNotFound, key)
		}
		var o domain.Override
		if err := json.Unmarshal([]byte(raw), &o); err == nil {
			return &o, nil
		}
		c.log.Warn("discarding undecodable cache entry", zap.String("date", key.String()))
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("redis get failed", zap.String("date", key.String()), zap.Error(err))
	}

	gen := c.generation(ctx, key)
	o, err := c.next.Get(ctx, key)
	switch {
	case err == nil:
		c.fill(ctx, key, gen, o)
	case errors.Is(err, domain.ErrNotFound):
		c.fill(ctx, key, gen, nil)
	}
	return o, err
}

func (c *AvailabilityCache) GetByID(ctx context.Context, id string) (*domain.Override, error) {
	return c.next.GetByID(ctx, id)
}

func (c *AvailabilityCache) List(ctx context.Context, from, to *domain.DateKey) ([]domain.Override, error) {
	return c.next.List(ctx, from, to)
}

// ======================================================
// WRITES
// ======================================================

func (c *AvailabilityCache) Upsert(
	ctx context.Context,
	key domain.DateKey,
	in domain.OverrideInput,
) (*domain.Override, error) {

	o, err := c.next.Upsert(ctx, key, in)
	c.invalidate(ctx, key)
	return o, err
}

func (c *AvailabilityCache) Delete(ctx context.Context, key domain.DateKey) (bool, error) {
	removed, err := c.next.Delete(ctx, key)
	c.invalidate(ctx, key)
	return removed, err
}

func (c *AvailabilityCache) DeleteByID(ctx context.Context, id string) (bool, error) {
	existing, lookupErr := c.next.GetByID(ctx, id)

	removed, err := c.next.DeleteByID(ctx, id)
	if lookupErr == nil {
		c.invalidate(ctx, existing.Date)
	}
	return removed, err
}

func (c *AvailabilityCache) DeleteBefore(ctx context.Context, key domain.DateKey) (int64, error) {
	n, err := c.next.DeleteBefore(ctx, key)
	if n > 0 {
		c.invalidateBefore(ctx, key)
	}
	return n, err
}

// ------------------------------------------------------
// helpers
// ------------------------------------------------------

func (c *AvailabilityCache) generation(ctx context.Context, key domain.DateKey) generation {
	vals, err := c.client.MGet(ctx, genKey(key), genAllKey).Result()
	if err != nil {
		c.log.Warn("redis generation read failed", zap.String("date", key.String()), zap.Error(err))
		return generation{}
	}
	str := func(v interface{}) string {
		s, _ := v.(string)
		return s
	}
	return generation{date: str(vals[0]), all: str(vals[1]), ok: true}
}

// fill caches what the store returned unless a write to the same date
// (or a DeleteBefore) bumped a generation token in the meantime.
func (c *AvailabilityCache) fill(ctx context.Context, key domain.DateKey, gen generation, o *domain.Override) {
	if !gen.ok {
		return
	}
	value := []byte(absentMarker)
	if o != nil {
		b, err := json.Marshal(o)
		if err != nil {
			return
		}
		value = b
	}
	err := fillScript.Run(ctx, c.client,
		[]string{cacheKey(key), genKey(key), genAllKey},
		gen.date, gen.all, value, c.ttl.Milliseconds(),
	).Err()
	if err != nil {
		c.log.Warn("redis fill failed", zap.String("date", key.String()), zap.Error(err))
	}
}

func (c *AvailabilityCache) invalidate(ctx context.Context, key domain.DateKey) {
	// the store has already changed; a cancelled caller must not leave a stale entry
	ctx = context.WithoutCancel(ctx)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, genKey(key), uuid.NewString(), genTTL)
		pipe.Del(ctx, cacheKey(key))
		return nil
	})
	if err != nil {
		c.log.Warn("redis invalidate failed", zap.String("date", key.String()), zap.Error(err))
	}
}

func (c *AvailabilityCache) invalidateBefore(ctx context.Context, key domain.DateKey) {
	ctx = context.WithoutCancel(ctx)
	cutoff := cacheKey(key)

	// fills already in flight for any date are discarded
	if err := c.client.Set(ctx, genAllKey, uuid.NewString(), genTTL).Err(); err != nil {
		c.log.Warn("redis generation bump failed", zap.Error(err))
	}

	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 200).Iterator()
	var stale []string
	for iter.Next(ctx) {
		// YYYY-MM-DD suffixes sort lexically in date order
		if k := iter.Val(); k < cutoff {
			stale = append(stale, k)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("redis scan failed", zap.Error(err))
		return
	}
	if len(stale) == 0 {
		return
	}
	if err := c.client.Del(ctx, stale...).Err(); err != nil {
		c.log.Warn("redis invalidate failed", zap.Int("keys", len(stale)), zap.Error(err))
	}
}
