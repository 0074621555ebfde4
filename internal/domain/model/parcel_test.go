package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    ParcelStatus
		to      ParcelStatus
		allowed bool
	}{
		{"expected to ready", StatusExpected, StatusReadyForPickup, true},
		{"expected to cancelled", StatusExpected, StatusCancelled, true},
		{"expected to collected", StatusExpected, StatusCollected, false},
		{"expected to unclaimed", StatusExpected, StatusArrivedUnclaimed, false},
		{"unclaimed to collected", StatusArrivedUnclaimed, StatusCollected, true},
		{"unclaimed to returned", StatusArrivedUnclaimed, StatusReturned, true},
		{"unclaimed to cancelled", StatusArrivedUnclaimed, StatusCancelled, true},
		{"unclaimed to ready", StatusArrivedUnclaimed, StatusReadyForPickup, false},
		{"ready to collected", StatusReadyForPickup, StatusCollected, true},
		{"ready to returned", StatusReadyForPickup, StatusReturned, true},
		{"ready to cancelled", StatusReadyForPickup, StatusCancelled, true},
		{"collected is terminal", StatusCollected, StatusReturned, false},
		{"returned is terminal", StatusReturned, StatusCollected, false},
		{"cancelled is terminal", StatusCancelled, StatusReadyForPickup, false},
		{"unknown status", ParcelStatus("LOST"), StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusReadyForPickup.IsLive())
	assert.True(t, StatusArrivedUnclaimed.IsLive())
	assert.False(t, StatusExpected.IsLive())
	assert.False(t, StatusCollected.IsLive())

	assert.True(t, StatusCollected.IsTerminal())
	assert.True(t, StatusReturned.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusExpected.IsTerminal())
	assert.False(t, StatusReadyForPickup.IsTerminal())

	assert.True(t, StatusExpected.Valid())
	assert.False(t, ParcelStatus("LOST").Valid())
	assert.False(t, ParcelStatus("").Valid())
}

func TestLiveStatusesMatchPredicate(t *testing.T) {
	for _, s := range LiveStatuses {
		assert.True(t, s.IsLive(), "status %s", s)
	}
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentCash.Valid())
	assert.True(t, PaymentQR.Valid())
	assert.True(t, PaymentCard.Valid())
	assert.False(t, PaymentMethod("CHEQUE").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestZoneForWeight(t *testing.T) {
	pricing := DefaultPricing()

	tests := []struct {
		weightKg float64
		zone     string
	}{
		{0.2, ZoneA},
		{1.0, ZoneA},
		{1.01, ZoneB},
		{5.0, ZoneB},
		{5.01, ZoneC},
		{42.0, ZoneC},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.zone, pricing.ZoneForWeight(tt.weightKg), "weight %.2f", tt.weightKg)
	}
}
