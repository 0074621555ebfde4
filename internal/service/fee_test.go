package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

func TestComputeFee(t *testing.T) {
	calc := NewFeeCalculatorService()

	tests := []struct {
		name     string
		weightKg float64
		expected float64
	}{
		{"well under base weight", 0.3, 1.50},
		{"exactly base weight", 2.0, 1.50},
		{"fraction over base rounds up to one kg", 2.1, 2.00},
		{"one kg over base", 3.0, 2.00},
		{"fraction over rounds up again", 3.5, 2.50},
		{"heavy parcel", 7.0, 4.00},
		{"very light parcel", 0.01, 1.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.ComputeFee(tt.weightKg))
		})
	}
}

func TestComputeFeeWithPricing(t *testing.T) {
	calc := NewFeeCalculatorService()

	pricing := model.PricingConfig{
		BaseFee:         2.00,
		BaseWeightKg:    1.0,
		AdditionalPerKg: 1.25,
	}

	assert.Equal(t, 2.00, calc.ComputeFeeWithPricing(1.0, pricing))
	assert.Equal(t, 3.25, calc.ComputeFeeWithPricing(1.5, pricing))
	assert.Equal(t, 4.50, calc.ComputeFeeWithPricing(3.0, pricing))
}

func TestComputeFeeCustomDefault(t *testing.T) {
	calc := NewFeeCalculatorService(WithPricing(model.PricingConfig{
		BaseFee:         5.00,
		BaseWeightKg:    10.0,
		AdditionalPerKg: 1.00,
	}))

	assert.Equal(t, 5.00, calc.ComputeFee(9.9))
	assert.Equal(t, 6.00, calc.ComputeFee(10.5))
}

func TestZoneForWeight(t *testing.T) {
	pricing := model.DefaultPricing()

	tests := []struct {
		weightKg float64
		zone     string
	}{
		{0.2, model.ZoneA},
		{1.0, model.ZoneA},
		{1.01, model.ZoneB},
		{5.0, model.ZoneB},
		{5.01, model.ZoneC},
		{50.0, model.ZoneC},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.zone, pricing.ZoneForWeight(tt.weightKg), "weight %.2f", tt.weightKg)
	}
}
