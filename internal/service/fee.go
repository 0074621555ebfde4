package service

import (
	"math"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

// FeeCalculator computes the storage fee for a checked-in parcel.
type FeeCalculator interface {
	ComputeFee(weightKg float64) float64
	ComputeFeeWithPricing(weightKg float64, pricing model.PricingConfig) float64
}

// FeeCalculatorService implements FeeCalculator using the tiered
// base+overage model: the base fee covers the first BaseWeightKg; excess
// weight is rounded up to whole kilograms before multiplying.
type FeeCalculatorService struct {
	pricing model.PricingConfig
}

// FeeOption configures a FeeCalculatorService.
type FeeOption func(*FeeCalculatorService)

// WithPricing sets a custom default pricing configuration.
func WithPricing(pricing model.PricingConfig) FeeOption {
	return func(s *FeeCalculatorService) {
		s.pricing = pricing
	}
}

// NewFeeCalculatorService creates a new FeeCalculatorService.
func NewFeeCalculatorService(opts ...FeeOption) *FeeCalculatorService {
	s := &FeeCalculatorService{pricing: model.DefaultPricing()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputeFee computes the fee using the service's default pricing.
// Weight must already be validated as positive by the caller.
func (s *FeeCalculatorService) ComputeFee(weightKg float64) float64 {
	return s.ComputeFeeWithPricing(weightKg, s.pricing)
}

// ComputeFeeWithPricing computes the fee using the given pricing, e.g.
// the active persisted configuration.
func (s *FeeCalculatorService) ComputeFeeWithPricing(weightKg float64, pricing model.PricingConfig) float64 {
	if weightKg <= pricing.BaseWeightKg {
		return roundMoney(pricing.BaseFee)
	}
	excessKg := math.Ceil(weightKg - pricing.BaseWeightKg)
	return roundMoney(pricing.BaseFee + excessKg*pricing.AdditionalPerKg)
}

// roundMoney rounds an amount to 2 decimal places.
func roundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
