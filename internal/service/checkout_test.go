package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
)

func storedParcel(parcels *fakeParcelRepo, trackingID string, fee float64) *model.Parcel {
	return parcels.add(&model.Parcel{
		TrackingID:      trackingID,
		HubID:           "hub-1",
		Status:          model.StatusReadyForPickup,
		RecipientName:   "Jane Tan",
		RecipientPhone:  "0123456789",
		WeightKg:        1.5,
		StorageZone:     model.ZoneB,
		StorageLocation: "B-03",
		FeeAmount:       fee,
		PaymentStatus:   model.PaymentPending,
	})
}

func TestCheckOutByTrackingID(t *testing.T) {
	parcels := newFakeParcelRepo()
	storedParcel(parcels, "PT-OUT-01", 2.00)
	svc := NewCheckOutService(parcels)

	result, err := svc.CheckOut(context.Background(), "hub-1", "op-1", dto.CheckOutRequest{
		TrackingID:    "PT-OUT-01",
		PaymentAmount: 5.00,
		PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCollected, result.Parcel.Status)
	assert.Equal(t, model.PaymentPaid, result.Parcel.PaymentStatus)
	assert.Equal(t, 3.00, result.Change)
	assert.Equal(t, model.PaymentCash, result.Payment.Method)
	assert.NotNil(t, result.Parcel.CheckedOutAt)
}

func TestCheckOutByParcelID(t *testing.T) {
	parcels := newFakeParcelRepo()
	p := storedParcel(parcels, "PT-OUT-02", 1.50)
	svc := NewCheckOutService(parcels)

	result, err := svc.CheckOut(context.Background(), "hub-1", "op-1", dto.CheckOutRequest{
		ParcelID:      p.ID.Hex(),
		PaymentAmount: 1.50,
		PaymentMethod: model.PaymentQR,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.00, result.Change)
}

func TestCheckOutInsufficientPayment(t *testing.T) {
	parcels := newFakeParcelRepo()
	storedParcel(parcels, "PT-OUT-03", 2.00)
	svc := NewCheckOutService(parcels)

	_, err := svc.CheckOut(context.Background(), "hub-1", "op-1", dto.CheckOutRequest{
		TrackingID:    "PT-OUT-03",
		PaymentAmount: 1.50,
		PaymentMethod: model.PaymentCash,
	})

	var payErr *InsufficientPaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, 2.00, payErr.Required)
	assert.Equal(t, 1.50, payErr.Received)
	assert.Equal(t, 0.50, payErr.Shortfall())

	// The parcel stays live and keeps its slot.
	current, _ := parcels.FindByTrackingID(context.Background(), "hub-1", "PT-OUT-03")
	assert.Equal(t, model.StatusReadyForPickup, current.Status)
}

func TestCheckOutExactPayment(t *testing.T) {
	parcels := newFakeParcelRepo()
	storedParcel(parcels, "PT-OUT-04", 2.00)
	svc := NewCheckOutService(parcels)

	result, err := svc.CheckOut(context.Background(), "hub-1", "op-1", dto.CheckOutRequest{
		TrackingID:    "PT-OUT-04",
		PaymentAmount: 2.00,
		PaymentMethod: model.PaymentCard,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.00, result.Change)
}

func TestCheckOutHubMismatch(t *testing.T) {
	parcels := newFakeParcelRepo()
	p := storedParcel(parcels, "PT-OUT-05", 2.00)
	svc := NewCheckOutService(parcels)

	_, err := svc.CheckOut(context.Background(), "hub-2", "op-9", dto.CheckOutRequest{
		ParcelID:      p.ID.Hex(),
		PaymentAmount: 5.00,
		PaymentMethod: model.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrHubMismatch)
}

func TestCheckOutNotLive(t *testing.T) {
	parcels := newFakeParcelRepo()
	parcels.add(&model.Parcel{
		TrackingID: "PT-OUT-06",
		HubID:      "hub-1",
		Status:     model.StatusCollected,
	})
	svc := NewCheckOutService(parcels)

	_, err := svc.CheckOut(context.Background(), "hub-1", "op-1", dto.CheckOutRequest{
		TrackingID:    "PT-OUT-06",
		PaymentAmount: 5.00,
		PaymentMethod: model.PaymentCash,
	})

	var statusErr *InvalidStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, model.StatusCollected, statusErr.Current)
	assert.Equal(t, model.StatusCollected, statusErr.Target)
}

func TestCheckOutUnknownParcel(t *testing.T) {
	svc := NewCheckOutService(newFakeParcelRepo())

	_, err := svc.CheckOut(context.Background(), "hub-1", "op-1", dto.CheckOutRequest{
		TrackingID:    "PT-MISSING",
		PaymentAmount: 5.00,
		PaymentMethod: model.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrParcelNotFound)

	_, err = svc.CheckOut(context.Background(), "hub-1", "op-1", dto.CheckOutRequest{
		ParcelID:      "not-a-hex-id",
		PaymentAmount: 5.00,
		PaymentMethod: model.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrParcelNotFound)
}

func TestCheckOutWalkInOverridesRecipient(t *testing.T) {
	parcels := newFakeParcelRepo()
	parcels.add(&model.Parcel{
		TrackingID:      "PT-OUT-07",
		HubID:           "hub-1",
		Status:          model.StatusArrivedUnclaimed,
		RecipientName:   WalkInRecipientName,
		RecipientPhone:  WalkInRecipientPhone,
		StorageZone:     model.ZoneA,
		StorageLocation: "A-04",
		FeeAmount:       1.50,
	})
	svc := NewCheckOutService(parcels)

	result, err := svc.CheckOut(context.Background(), "hub-1", "op-1", dto.CheckOutRequest{
		TrackingID:     "PT-OUT-07",
		PaymentAmount:  2.00,
		PaymentMethod:  model.PaymentCash,
		RecipientName:  "Ali Hassan",
		RecipientPhone: "0198765432",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ali Hassan", result.Parcel.RecipientName)
	assert.Equal(t, "0198765432", result.Parcel.RecipientPhone)
}
