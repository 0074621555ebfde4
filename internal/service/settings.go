package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/repository"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// defaultPricingCacheTTL bounds how stale the cached active pricing can be.
const defaultPricingCacheTTL = 30 * time.Second

// PricingService provides pricing settings operations.
type PricingService interface {
	// ActivePricing returns the active pricing configuration, falling
	// back to the compiled-in defaults when none is persisted or the
	// settings store is unavailable.
	ActivePricing(ctx context.Context) model.PricingConfig
	Update(ctx context.Context, req dto.UpdatePricingRequest, updatedBy string) (*model.PricingSettings, error)
	History(ctx context.Context, limit int) ([]model.PricingSettings, error)
}

// PricingServiceImpl implements PricingService with a short TTL cache in
// front of the settings repository. Check-in sits on the hot path and
// should not pay a settings read per request.
type PricingServiceImpl struct {
	settingsRepo repository.SettingsRepositoryInterface

	mu       sync.RWMutex
	cached   model.PricingConfig
	cachedAt time.Time
	ttl      time.Duration
}

// PricingOption configures a PricingServiceImpl.
type PricingOption func(*PricingServiceImpl)

// WithPricingCacheTTL sets the active pricing cache TTL.
func WithPricingCacheTTL(ttl time.Duration) PricingOption {
	return func(s *PricingServiceImpl) {
		s.ttl = ttl
	}
}

// NewPricingService creates a new pricing service.
func NewPricingService(settingsRepo repository.SettingsRepositoryInterface, opts ...PricingOption) *PricingServiceImpl {
	s := &PricingServiceImpl{
		settingsRepo: settingsRepo,
		ttl:          defaultPricingCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ActivePricing returns the active pricing configuration.
func (s *PricingServiceImpl) ActivePricing(ctx context.Context) model.PricingConfig {
	s.mu.RLock()
	if !s.cachedAt.IsZero() && time.Since(s.cachedAt) < s.ttl {
		pricing := s.cached
		s.mu.RUnlock()
		return pricing
	}
	s.mu.RUnlock()

	pricing := model.DefaultPricing()
	if s.settingsRepo != nil {
		settings, err := s.settingsRepo.GetActive(ctx)
		if err == nil && settings != nil {
			pricing = settings.Pricing
		}
		// On error the defaults apply; pricing must not block check-in.
	}

	s.mu.Lock()
	s.cached = pricing
	s.cachedAt = time.Now()
	s.mu.Unlock()

	return pricing
}

// Update persists new pricing settings and invalidates the cache.
func (s *PricingServiceImpl) Update(ctx context.Context, req dto.UpdatePricingRequest, updatedBy string) (*model.PricingSettings, error) {
	if s.settingsRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	pricing := model.PricingConfig{
		BaseFee:         req.BaseFee,
		BaseWeightKg:    req.BaseWeightKg,
		AdditionalPerKg: req.AdditionalPerKg,
		ZoneAMaxKg:      req.ZoneAMaxKg,
		ZoneBMaxKg:      req.ZoneBMaxKg,
	}
	if pricing.ZoneAMaxKg == 0 {
		pricing.ZoneAMaxKg = model.DefaultZoneAMaxKg
	}
	if pricing.ZoneBMaxKg == 0 {
		pricing.ZoneBMaxKg = model.DefaultZoneBMaxKg
	}

	settings, err := s.settingsRepo.Create(ctx, pricing, updatedBy)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = settings.Pricing
	s.cachedAt = time.Now()
	s.mu.Unlock()

	return settings, nil
}

// History returns pricing settings history, newest first.
func (s *PricingServiceImpl) History(ctx context.Context, limit int) ([]model.PricingSettings, error) {
	if s.settingsRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.settingsRepo.List(ctx, limit)
}
