package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

func TestCheckInRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CheckInRequest
		wantErr error
	}{
		{"valid", CheckInRequest{TrackingID: "PT1A2B3C4D", WeightKg: 1.5}, nil},
		{"trims whitespace", CheckInRequest{TrackingID: "  PT1A2B3C4D  ", WeightKg: 1.5}, nil},
		{"missing tracking id", CheckInRequest{WeightKg: 1.5}, ErrMissingTrackingID},
		{"whitespace tracking id", CheckInRequest{TrackingID: "   ", WeightKg: 1.5}, ErrMissingTrackingID},
		{"tracking id too short", CheckInRequest{TrackingID: "PT12", WeightKg: 1.5}, ErrInvalidTrackingID},
		{"tracking id too long", CheckInRequest{TrackingID: strings.Repeat("X", 101), WeightKg: 1.5}, ErrInvalidTrackingID},
		{"zero weight", CheckInRequest{TrackingID: "PT1A2B3C4D"}, ErrInvalidWeight},
		{"negative weight", CheckInRequest{TrackingID: "PT1A2B3C4D", WeightKg: -1}, ErrInvalidWeight},
		{"weight over limit", CheckInRequest{TrackingID: "PT1A2B3C4D", WeightKg: 100.5}, ErrInvalidWeight},
		{"weight at limit", CheckInRequest{TrackingID: "PT1A2B3C4D", WeightKg: 100}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantErr, err)
			}
		})
	}
}

func TestCheckInRequestValidateTrims(t *testing.T) {
	req := CheckInRequest{TrackingID: "  PT1A2B3C4D  ", WeightKg: 1.0}
	require.NoError(t, req.Validate())
	assert.Equal(t, "PT1A2B3C4D", req.TrackingID)
}

func TestCheckOutRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CheckOutRequest
		wantErr error
	}{
		{"by tracking id", CheckOutRequest{TrackingID: "PT1A2B3C4D", PaymentAmount: 5, PaymentMethod: model.PaymentCash}, nil},
		{"by parcel id", CheckOutRequest{ParcelID: "65b2f0a4e13e5c0001a1b2c3", PaymentAmount: 5, PaymentMethod: model.PaymentQR}, nil},
		{"missing both refs", CheckOutRequest{PaymentAmount: 5, PaymentMethod: model.PaymentCash}, ErrMissingParcelRef},
		{"unknown method", CheckOutRequest{TrackingID: "PT1A2B3C4D", PaymentAmount: 5, PaymentMethod: "CHEQUE"}, ErrInvalidPaymentMethod},
		{"negative amount", CheckOutRequest{TrackingID: "PT1A2B3C4D", PaymentAmount: -1, PaymentMethod: model.PaymentCash}, ErrInvalidPaymentAmount},
		{"zero amount is allowed", CheckOutRequest{TrackingID: "PT1A2B3C4D", PaymentAmount: 0, PaymentMethod: model.PaymentCard}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantErr, err)
			}
		})
	}
}

func TestPreRegisterRequestValidate(t *testing.T) {
	valid := PreRegisterRequest{TrackingID: "PT1A2B3C4D"}
	assert.NoError(t, valid.Validate())

	empty := PreRegisterRequest{TrackingID: " "}
	assert.Equal(t, ErrMissingTrackingID, empty.Validate())

	short := PreRegisterRequest{TrackingID: "PT"}
	assert.Equal(t, ErrInvalidTrackingID, short.Validate())
}

func TestOverrideStatusRequestValidate(t *testing.T) {
	assert.NoError(t, (&OverrideStatusRequest{Status: model.StatusReturned}).Validate())
	assert.NoError(t, (&OverrideStatusRequest{Status: model.StatusCancelled}).Validate())
	assert.Equal(t, ErrInvalidOverrideStatus, (&OverrideStatusRequest{Status: model.StatusCollected}).Validate())
	assert.Equal(t, ErrInvalidOverrideStatus, (&OverrideStatusRequest{Status: "LOST"}).Validate())
}

func TestUpdatePricingRequestValidate(t *testing.T) {
	valid := UpdatePricingRequest{BaseFee: 1.50, BaseWeightKg: 2.0, AdditionalPerKg: 0.50, ZoneAMaxKg: 1.0, ZoneBMaxKg: 5.0}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		req   UpdatePricingRequest
		field string
	}{
		{"negative base fee", UpdatePricingRequest{BaseFee: -1, BaseWeightKg: 2, AdditionalPerKg: 0.5}, "base_fee"},
		{"zero base weight", UpdatePricingRequest{BaseFee: 1.5, AdditionalPerKg: 0.5}, "base_weight_kg"},
		{"negative per-kg", UpdatePricingRequest{BaseFee: 1.5, BaseWeightKg: 2, AdditionalPerKg: -0.5}, "additional_per_kg"},
		{"inverted zone thresholds", UpdatePricingRequest{BaseFee: 1.5, BaseWeightKg: 2, AdditionalPerKg: 0.5, ZoneAMaxKg: 5, ZoneBMaxKg: 1}, "zone_a_max_kg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}
