package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SLOT_CATALOG", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("COPY_CONCURRENCY", "")

	cfg := Load()

	assert.Equal(t, availability.DefaultSlots, cfg.SlotCatalog)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 8, cfg.CopyConcurrency)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SLOT_CATALOG", " 08:00 AM, 09:00 AM ,,10:00 AM")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("COPY_CONCURRENCY", "not-a-number")
	t.Setenv("PUBLIC_RATE_LIMIT_RPS", "0.5")

	cfg := Load()

	assert.Equal(t, []string{"08:00 AM", "09:00 AM", "10:00 AM"}, cfg.SlotCatalog)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 8, cfg.CopyConcurrency)
	assert.Equal(t, 0.5, cfg.PublicRateLimitRPS)
}

func TestDefaultCatalogFollowsDomainDefault(t *testing.T) {
	t.Setenv("SLOT_CATALOG", "")

	original := availability.DefaultSlots
	t.Cleanup(func() { availability.DefaultSlots = original })
	availability.DefaultSlots = []string{"08:00 AM", "09:00 AM"}

	assert.Equal(t, []string{"08:00 AM", "09:00 AM"}, Load().SlotCatalog)
}

func TestValidateJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	t.Setenv("APP_ENV", "development")
	cfg := Load()
	assert.True(t, cfg.UsesDefaultJWTSecret())
	assert.NoError(t, cfg.Validate())

	t.Setenv("APP_ENV", "production")
	assert.ErrorContains(t, Load().Validate(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg = Load()
	assert.False(t, cfg.UsesDefaultJWTSecret())
	assert.NoError(t, cfg.Validate())
}
