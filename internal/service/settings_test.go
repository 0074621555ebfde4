package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
)

func TestActivePricingDefaultsWhenEmpty(t *testing.T) {
	svc := NewPricingService(&fakeSettingsRepo{})

	pricing := svc.ActivePricing(context.Background())
	assert.Equal(t, model.DefaultPricing(), pricing)
}

func TestActivePricingDefaultsOnRepositoryError(t *testing.T) {
	settings := &fakeSettingsRepo{getErr: errors.New("connection reset")}
	svc := NewPricingService(settings)

	pricing := svc.ActivePricing(context.Background())
	assert.Equal(t, model.DefaultPricing(), pricing)
}

func TestActivePricingReadsActiveVersion(t *testing.T) {
	settings := &fakeSettingsRepo{}
	_, err := settings.Create(context.Background(), model.PricingConfig{
		BaseFee:         2.50,
		BaseWeightKg:    1.0,
		AdditionalPerKg: 0.75,
		ZoneAMaxKg:      model.DefaultZoneAMaxKg,
		ZoneBMaxKg:      model.DefaultZoneBMaxKg,
	}, "admin")
	require.NoError(t, err)

	svc := NewPricingService(settings)
	pricing := svc.ActivePricing(context.Background())
	assert.Equal(t, 2.50, pricing.BaseFee)
	assert.Equal(t, 0.75, pricing.AdditionalPerKg)
}

func TestActivePricingCachesWithinTTL(t *testing.T) {
	settings := &fakeSettingsRepo{}
	svc := NewPricingService(settings, WithPricingCacheTTL(time.Minute))

	first := svc.ActivePricing(context.Background())
	assert.Equal(t, model.DefaultPricing(), first)

	// A new version lands behind the cache; the stale value is served
	// until the TTL expires.
	_, err := settings.Create(context.Background(), model.PricingConfig{
		BaseFee:         9.99,
		BaseWeightKg:    1.0,
		AdditionalPerKg: 1.00,
		ZoneAMaxKg:      model.DefaultZoneAMaxKg,
		ZoneBMaxKg:      model.DefaultZoneBMaxKg,
	}, "admin")
	require.NoError(t, err)

	cached := svc.ActivePricing(context.Background())
	assert.Equal(t, first.BaseFee, cached.BaseFee)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	settings := &fakeSettingsRepo{}
	svc := NewPricingService(settings, WithPricingCacheTTL(time.Minute))

	_ = svc.ActivePricing(context.Background())

	updated, err := svc.Update(context.Background(), dto.UpdatePricingRequest{
		BaseFee:         3.00,
		BaseWeightKg:    2.5,
		AdditionalPerKg: 0.60,
		ZoneAMaxKg:      1.5,
		ZoneBMaxKg:      6.0,
	}, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.Equal(t, "admin@example.com", updated.CreatedBy)

	pricing := svc.ActivePricing(context.Background())
	assert.Equal(t, 3.00, pricing.BaseFee)
	assert.Equal(t, 1.5, pricing.ZoneAMaxKg)
}

func TestUpdateFillsZoneDefaults(t *testing.T) {
	svc := NewPricingService(&fakeSettingsRepo{})

	updated, err := svc.Update(context.Background(), dto.UpdatePricingRequest{
		BaseFee:         1.75,
		BaseWeightKg:    2.0,
		AdditionalPerKg: 0.50,
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultZoneAMaxKg, updated.Pricing.ZoneAMaxKg)
	assert.Equal(t, model.DefaultZoneBMaxKg, updated.Pricing.ZoneBMaxKg)
}

func TestUpdateDeactivatesPreviousVersions(t *testing.T) {
	settings := &fakeSettingsRepo{}
	svc := NewPricingService(settings)

	_, err := svc.Update(context.Background(), dto.UpdatePricingRequest{
		BaseFee: 1.50, BaseWeightKg: 2.0, AdditionalPerKg: 0.50,
	}, "admin")
	require.NoError(t, err)
	second, err := svc.Update(context.Background(), dto.UpdatePricingRequest{
		BaseFee: 2.00, BaseWeightKg: 2.0, AdditionalPerKg: 0.50,
	}, "admin")
	require.NoError(t, err)

	history, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first; only the latest version is active.
	assert.Equal(t, second.Version, history[0].Version)
	assert.True(t, history[0].Active)
	assert.False(t, history[1].Active)
}

func TestHistoryRespectsLimit(t *testing.T) {
	settings := &fakeSettingsRepo{}
	svc := NewPricingService(settings)

	for i := 0; i < 3; i++ {
		_, err := svc.Update(context.Background(), dto.UpdatePricingRequest{
			BaseFee: 1.50, BaseWeightKg: 2.0, AdditionalPerKg: 0.50,
		}, "admin")
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestPricingWithoutRepository(t *testing.T) {
	svc := NewPricingService(nil)

	pricing := svc.ActivePricing(context.Background())
	assert.Equal(t, model.DefaultPricing(), pricing)

	_, err := svc.Update(context.Background(), dto.UpdatePricingRequest{}, "admin")
	assert.ErrorIs(t, err, ErrRepositoryNotConfigured)

	_, err = svc.History(context.Background(), 10)
	assert.ErrorIs(t, err, ErrRepositoryNotConfigured)
}
