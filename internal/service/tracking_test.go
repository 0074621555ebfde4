package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

func TestTrackReadyForPickup(t *testing.T) {
	parcels := newFakeParcelRepo()
	parcels.add(&model.Parcel{
		TrackingID:      "PT-TRK-01",
		HubID:           "hub-1",
		Status:          model.StatusReadyForPickup,
		RecipientName:   "Jane Tan",
		RecipientPhone:  "0123456789",
		StorageZone:     model.ZoneA,
		StorageLocation: "A-07",
		FeeAmount:       1.50,
	})
	svc := NewTrackingService(parcels)

	info, err := svc.Track(context.Background(), "PT-TRK-01")
	require.NoError(t, err)

	assert.Equal(t, model.StatusReadyForPickup, info.Status)
	assert.Equal(t, "A-07", info.StorageLocation)
	assert.Equal(t, 1.50, info.FeeAmount)
}

func TestTrackHidesLocationBeforePickup(t *testing.T) {
	parcels := newFakeParcelRepo()
	parcels.add(&model.Parcel{
		TrackingID:      "PT-TRK-02",
		HubID:           "hub-1",
		Status:          model.StatusArrivedUnclaimed,
		StorageZone:     model.ZoneB,
		StorageLocation: "B-02",
		FeeAmount:       2.00,
	})
	svc := NewTrackingService(parcels)

	info, err := svc.Track(context.Background(), "PT-TRK-02")
	require.NoError(t, err)

	assert.Equal(t, model.StatusArrivedUnclaimed, info.Status)
	assert.Empty(t, info.StorageLocation)
	assert.Zero(t, info.FeeAmount)
}

func TestTrackNeverExposesRecipientDetails(t *testing.T) {
	parcels := newFakeParcelRepo()
	parcels.add(&model.Parcel{
		TrackingID:     "PT-TRK-03",
		HubID:          "hub-1",
		Status:         model.StatusReadyForPickup,
		RecipientName:  "Jane Tan",
		RecipientPhone: "0123456789",
		RecipientEmail: "jane@example.com",
	})
	svc := NewTrackingService(parcels)

	info, err := svc.Track(context.Background(), "PT-TRK-03")
	require.NoError(t, err)

	payload, err := json.Marshal(info)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "Jane Tan")
	assert.NotContains(t, string(payload), "0123456789")
	assert.NotContains(t, string(payload), "jane@example.com")
}

func TestTrackUnknownTrackingID(t *testing.T) {
	svc := NewTrackingService(newFakeParcelRepo())

	_, err := svc.Track(context.Background(), "PT-NOPE")
	assert.ErrorIs(t, err, ErrParcelNotFound)
}

func TestTrackSearchesAcrossHubs(t *testing.T) {
	parcels := newFakeParcelRepo()
	parcels.add(&model.Parcel{
		TrackingID: "PT-TRK-04",
		HubID:      "hub-east",
		Status:     model.StatusExpected,
	})
	svc := NewTrackingService(parcels)

	info, err := svc.Track(context.Background(), "PT-TRK-04")
	require.NoError(t, err)
	assert.Equal(t, model.StatusExpected, info.Status)
}
