// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model, providing validation
// and serialization for API communication.
package dto

import (
	"strings"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

// Operator-facing input bounds. Weight outside (0, MaxWeightKg] is a
// validation error before any business logic runs.
const (
	MaxWeightKg          = 100.0
	TrackingIDMinLength  = 5
	TrackingIDMaxLength  = 100
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrMissingTrackingID is returned when tracking_id is empty.
	ErrMissingTrackingID = &ValidationError{Field: "tracking_id", Message: "is required"}
	// ErrInvalidTrackingID is returned when tracking_id is out of bounds.
	ErrInvalidTrackingID = &ValidationError{Field: "tracking_id", Message: "must be between 5 and 100 characters"}
	// ErrInvalidWeight is returned when weight_kg is outside (0, 100].
	ErrInvalidWeight = &ValidationError{Field: "weight_kg", Message: "must be greater than 0 and at most 100"}
	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = &ValidationError{Field: "payment_method", Message: "must be one of CASH, QR_CODE, CARD"}
	// ErrInvalidPaymentAmount is returned when the payment amount is negative.
	ErrInvalidPaymentAmount = &ValidationError{Field: "payment_amount", Message: "must not be negative"}
	// ErrMissingParcelRef is returned when neither parcel_id nor tracking_id is given.
	ErrMissingParcelRef = &ValidationError{Field: "parcel_id", Message: "parcel_id or tracking_id is required"}
	// ErrInvalidOverrideStatus is returned for an unsupported admin override target.
	ErrInvalidOverrideStatus = &ValidationError{Field: "status", Message: "must be RETURNED or CANCELLED"}
)

// CheckInRequest is the JSON body for the operator check-in endpoint.
//
// @Description Request to check in an arrived parcel
// @Example {"tracking_id": "PT1A2B3C4D", "weight_kg": 1.5}
type CheckInRequest struct {
	// TrackingID is the courier tracking code scanned or typed by the operator.
	TrackingID string `json:"tracking_id" binding:"required" example:"PT1A2B3C4D"`
	// WeightKg is the measured weight; must be in (0, 100].
	WeightKg float64 `json:"weight_kg" binding:"required" example:"1.5"`
	// IsDamaged flags visible damage noticed at intake.
	IsDamaged bool `json:"is_damaged,omitempty"`
	// Notes holds free-form intake remarks.
	Notes string `json:"notes,omitempty"`
} // @name CheckInRequest

// Validate performs custom validation on the request.
func (r *CheckInRequest) Validate() error {
	r.TrackingID = strings.TrimSpace(r.TrackingID)
	if r.TrackingID == "" {
		return ErrMissingTrackingID
	}
	if len(r.TrackingID) < TrackingIDMinLength || len(r.TrackingID) > TrackingIDMaxLength {
		return ErrInvalidTrackingID
	}
	if r.WeightKg <= 0 || r.WeightKg > MaxWeightKg {
		return ErrInvalidWeight
	}
	return nil
}

// CheckOutRequest is the JSON body for the operator check-out endpoint.
// Exactly one of ParcelID or TrackingID identifies the parcel.
//
// @Description Request to collect payment and release a parcel
// @Example {"tracking_id": "PT1A2B3C4D", "payment_amount": 5.00, "payment_method": "CASH"}
type CheckOutRequest struct {
	ParcelID   string `json:"parcel_id,omitempty" example:"65b2f0a4e13e5c0001a1b2c3"`
	TrackingID string `json:"tracking_id,omitempty" example:"PT1A2B3C4D"`
	// PaymentAmount is the amount tendered; must cover the storage fee.
	PaymentAmount float64             `json:"payment_amount" example:"5.00"`
	PaymentMethod model.PaymentMethod `json:"payment_method" binding:"required" example:"CASH"`
	// RecipientName overrides the stored recipient name (walk-in claims).
	RecipientName string `json:"recipient_name,omitempty"`
	// RecipientPhone overrides the stored recipient phone (walk-in claims).
	RecipientPhone string `json:"recipient_phone,omitempty"`
	Notes          string `json:"notes,omitempty"`
} // @name CheckOutRequest

// Validate performs custom validation on the request.
func (r *CheckOutRequest) Validate() error {
	r.ParcelID = strings.TrimSpace(r.ParcelID)
	r.TrackingID = strings.TrimSpace(r.TrackingID)
	if r.ParcelID == "" && r.TrackingID == "" {
		return ErrMissingParcelRef
	}
	if !r.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}
	if r.PaymentAmount < 0 {
		return ErrInvalidPaymentAmount
	}
	return nil
}

// PreRegisterRequest is the JSON body for recipient pre-registration.
//
// @Description Request to pre-register an expected parcel
// @Example {"tracking_id": "PT1A2B3C4D"}
type PreRegisterRequest struct {
	TrackingID string `json:"tracking_id" binding:"required" example:"PT1A2B3C4D"`
} // @name PreRegisterRequest

// Validate performs custom validation on the request.
func (r *PreRegisterRequest) Validate() error {
	r.TrackingID = strings.TrimSpace(r.TrackingID)
	if r.TrackingID == "" {
		return ErrMissingTrackingID
	}
	if len(r.TrackingID) < TrackingIDMinLength || len(r.TrackingID) > TrackingIDMaxLength {
		return ErrInvalidTrackingID
	}
	return nil
}

// OverrideStatusRequest is the JSON body for the admin status override.
//
// @Description Admin request to force a parcel into RETURNED or CANCELLED
type OverrideStatusRequest struct {
	Status model.ParcelStatus `json:"status" binding:"required" example:"RETURNED"`
	Reason string             `json:"reason,omitempty"`
} // @name OverrideStatusRequest

// Validate performs custom validation on the request.
func (r *OverrideStatusRequest) Validate() error {
	if r.Status != model.StatusReturned && r.Status != model.StatusCancelled {
		return ErrInvalidOverrideStatus
	}
	return nil
}

// UpdatePricingRequest is the JSON body for updating pricing settings.
//
// @Description Request to replace the active pricing configuration
type UpdatePricingRequest struct {
	BaseFee         float64 `json:"base_fee" example:"1.50"`
	BaseWeightKg    float64 `json:"base_weight_kg" example:"2.0"`
	AdditionalPerKg float64 `json:"additional_per_kg" example:"0.50"`
	ZoneAMaxKg      float64 `json:"zone_a_max_kg,omitempty" example:"1.0"`
	ZoneBMaxKg      float64 `json:"zone_b_max_kg,omitempty" example:"5.0"`
} // @name UpdatePricingRequest

// Validate performs custom validation on the request.
func (r *UpdatePricingRequest) Validate() error {
	if r.BaseFee < 0 {
		return &ValidationError{Field: "base_fee", Message: "must not be negative"}
	}
	if r.BaseWeightKg <= 0 {
		return &ValidationError{Field: "base_weight_kg", Message: "must be positive"}
	}
	if r.AdditionalPerKg < 0 {
		return &ValidationError{Field: "additional_per_kg", Message: "must not be negative"}
	}
	if r.ZoneAMaxKg != 0 && r.ZoneBMaxKg != 0 && r.ZoneAMaxKg >= r.ZoneBMaxKg {
		return &ValidationError{Field: "zone_a_max_kg", Message: "must be less than zone_b_max_kg"}
	}
	return nil
}
