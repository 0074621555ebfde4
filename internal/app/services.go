// Package app provides service initialization.
package app

import (
	"github.com/parceltrack/parcel-service/config"
	"github.com/parceltrack/parcel-service/internal/service"
)

// ServiceComponents holds the business services.
type ServiceComponents struct {
	Pricing    service.PricingService
	CheckIn    service.CheckInService
	CheckOut   service.CheckOutService
	Recipients service.RecipientService
	Tracking   service.TrackingService
	Operator   service.OperatorService
	Auth       service.AuthService
}

// InitializeServices wires the business services on top of the
// repositories.
func InitializeServices(db *DatabaseComponents, cfg config.Config) *ServiceComponents {
	var pricingOpts []service.PricingOption
	if cfg.Storage.PricingCacheTTL > 0 {
		pricingOpts = append(pricingOpts, service.WithPricingCacheTTL(cfg.Storage.PricingCacheTTL))
	}
	pricing := service.NewPricingService(db.SettingsRepo, pricingOpts...)

	fees := service.NewFeeCalculatorService()
	allocator := service.NewStorageAllocatorService(db.SlotRepo, db.ParcelRepo)

	return &ServiceComponents{
		Pricing:    pricing,
		CheckIn:    service.NewCheckInService(db.ParcelRepo, allocator, fees, pricing),
		CheckOut:   service.NewCheckOutService(db.ParcelRepo),
		Recipients: service.NewRecipientService(db.ParcelRepo),
		Tracking:   service.NewTrackingService(db.ParcelRepo),
		Operator:   service.NewOperatorService(db.ParcelRepo, db.SlotRepo),
		Auth:       service.NewAuthService(db.UserRepo, db.TokenRepo, cfg.Auth),
	}
}
