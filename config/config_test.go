package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, "hub-central", cfg.Storage.SeedHubID)
		assert.Equal(t, model.MaxSlotsPerZone, cfg.Storage.SlotsPerZone)
		assert.Equal(t, 30*time.Second, cfg.Storage.PricingCacheTTL)
		assert.Equal(t, "parcel_service", cfg.Database.DatabaseName)
		assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
		assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("SEED_HUB_ID", "hub-north")
		_ = os.Setenv("SLOTS_PER_ZONE", "40")
		_ = os.Setenv("JWT_ACCESS_TOKEN_TTL", "5m")
		_ = os.Setenv("MONGODB_DATABASE", "parcels_test")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, "hub-north", cfg.Storage.SeedHubID)
		assert.Equal(t, 40, cfg.Storage.SlotsPerZone)
		assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
		assert.Equal(t, "parcels_test", cfg.Database.DatabaseName)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		_ = os.Setenv("SLOTS_PER_ZONE", "invalid")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, model.MaxSlotsPerZone, cfg.Storage.SlotsPerZone)
	})

	t.Run("clamps slots per zone to the slot code range", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("SLOTS_PER_ZONE", "250")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, model.MaxSlotsPerZone, cfg.Storage.SlotsPerZone)
	})

	t.Run("parses CORS origins with whitespace", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("CORS_ORIGINS", " https://hub.example.com , https://admin.example.com ")
		defer os.Clearenv()

		cfg := Load()

		assert.Contains(t, cfg.Server.CORSOrigins, "https://hub.example.com")
		assert.Contains(t, cfg.Server.CORSOrigins, "https://admin.example.com")
		// Local development origins are always included.
		assert.Contains(t, cfg.Server.CORSOrigins, "http://localhost:3000")
	})

	t.Run("keeps default origins when unset", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.Server.CORSOrigins)
	})

	t.Run("seed admin credentials default to empty", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Empty(t, cfg.Auth.AdminEmail)
		assert.Empty(t, cfg.Auth.AdminPassword)
	})
}
