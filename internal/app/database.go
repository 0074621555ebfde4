// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/parceltrack/parcel-service/config"
	"github.com/parceltrack/parcel-service/internal/circuitbreaker"
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/repository"
	"github.com/parceltrack/parcel-service/internal/service"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                     *repository.MongoDB
	ParcelRepo             repository.ParcelRepositoryInterface
	SlotRepo               repository.StorageLocationRepositoryInterface
	SettingsRepo           repository.SettingsRepositoryInterface
	LoggingService         service.LoggingService
	UserRepo               repository.UserRepositoryInterface
	TokenRepo              repository.TokenRepositoryInterface
	SettingsCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker     *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB, creates the repositories, and
// seeds baseline data: storage slots for the configured hub and the
// default pricing version.
func InitializeDatabase(cfg config.DatabaseConfig, storageCfg config.StorageConfig) (*DatabaseComponents, error) {
	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		return nil, err
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	// Set TTL for logs
	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	// Initialize circuit breakers
	settingsCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-settings",
	})

	logsCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-logs",
	})

	logsRepo := repository.NewLogsRepository(db)
	logsRepoWithCB := repository.NewLogsRepositoryWithCircuitBreaker(logsRepo, logsCB)
	loggingService := service.NewLoggingService(logsRepoWithCB)

	settingsRepo := repository.NewSettingsRepository(db)
	settingsRepoWithCB := repository.NewSettingsRepositoryWithCircuitBreaker(settingsRepo, settingsCB)

	parcelRepo := repository.NewParcelRepository(db)
	slotRepo := repository.NewStorageLocationRepository(db)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	if err := provisionStorageSlots(slotRepo, storageCfg); err != nil {
		log.Warn().Err(err).Msg("Failed to provision storage slots")
	}
	if err := initializeDefaultPricing(settingsRepoWithCB); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize default pricing")
	}

	return &DatabaseComponents{
		DB:                     db,
		ParcelRepo:             parcelRepo,
		SlotRepo:               slotRepo,
		SettingsRepo:           settingsRepoWithCB,
		LoggingService:         loggingService,
		UserRepo:               userRepo,
		TokenRepo:              tokenRepo,
		SettingsCircuitBreaker: settingsCB,
		LogsCircuitBreaker:     logsCB,
	}, nil
}

// provisionStorageSlots seeds the configured hub's slots. Provisioning is
// idempotent, so restarts keep existing slots untouched.
func provisionStorageSlots(repo repository.StorageLocationRepositoryInterface, cfg config.StorageConfig) error {
	if cfg.SeedHubID == "" || cfg.SlotsPerZone <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, zone := range []string{model.ZoneA, model.ZoneB, model.ZoneC} {
		if err := repo.Provision(ctx, cfg.SeedHubID, zone, cfg.SlotsPerZone); err != nil {
			return err
		}
	}
	log.Info().
		Str("hub_id", cfg.SeedHubID).
		Int("slots_per_zone", cfg.SlotsPerZone).
		Msg("Provisioned storage slots")
	return nil
}

// initializeDefaultPricing creates the default pricing version if no
// active configuration exists.
func initializeDefaultPricing(repo repository.SettingsRepositoryInterface) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	active, err := repo.GetActive(ctx)
	if err != nil {
		return err
	}

	if active == nil {
		pricing := model.DefaultPricing()
		if _, err := repo.Create(ctx, pricing, "system"); err != nil {
			return err
		}
		log.Info().
			Float64("base_fee", pricing.BaseFee).
			Float64("base_weight_kg", pricing.BaseWeightKg).
			Msg("Created default pricing")
	}

	return nil
}
