// Package model defines pricing and zone configuration.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compiled-in pricing defaults. They apply only until the persisted
// pricing settings are loaded; the active settings document is the source
// of truth at runtime.
const (
	DefaultBaseFee         = 1.50
	DefaultBaseWeightKg    = 2.0
	DefaultAdditionalPerKg = 0.50
	DefaultZoneAMaxKg      = 1.0
	DefaultZoneBMaxKg      = 5.0
)

// PricingConfig holds the tiered fee model and zone weight thresholds.
type PricingConfig struct {
	BaseFee         float64 `bson:"base_fee" json:"base_fee"`
	BaseWeightKg    float64 `bson:"base_weight_kg" json:"base_weight_kg"`
	AdditionalPerKg float64 `bson:"additional_per_kg" json:"additional_per_kg"`
	ZoneAMaxKg      float64 `bson:"zone_a_max_kg" json:"zone_a_max_kg"`
	ZoneBMaxKg      float64 `bson:"zone_b_max_kg" json:"zone_b_max_kg"`
}

// DefaultPricing returns the compiled-in pricing configuration.
func DefaultPricing() PricingConfig {
	return PricingConfig{
		BaseFee:         DefaultBaseFee,
		BaseWeightKg:    DefaultBaseWeightKg,
		AdditionalPerKg: DefaultAdditionalPerKg,
		ZoneAMaxKg:      DefaultZoneAMaxKg,
		ZoneBMaxKg:      DefaultZoneBMaxKg,
	}
}

// ZoneForWeight derives the storage zone for a parcel weight.
func (p PricingConfig) ZoneForWeight(weightKg float64) string {
	switch {
	case weightKg <= p.ZoneAMaxKg:
		return ZoneA
	case weightKg <= p.ZoneBMaxKg:
		return ZoneB
	default:
		return ZoneC
	}
}

// PricingSettings is a versioned pricing configuration document. Exactly
// one document is active at a time; updates deactivate the predecessor.
type PricingSettings struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Pricing   PricingConfig      `bson:"pricing" json:"pricing"`
	Active    bool               `bson:"active" json:"active"`
	Version   int                `bson:"version" json:"version"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	CreatedBy string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
}
