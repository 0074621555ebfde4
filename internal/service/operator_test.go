package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/repository"
)

func TestOperatorSearch(t *testing.T) {
	parcels := newFakeParcelRepo()
	parcels.add(&model.Parcel{TrackingID: "PT-OP-01", HubID: "hub-1", Status: model.StatusReadyForPickup, RecipientName: "Jane Tan"})
	parcels.add(&model.Parcel{TrackingID: "PT-OP-02", HubID: "hub-1", Status: model.StatusExpected, RecipientName: "Ali Hassan"})
	parcels.add(&model.Parcel{TrackingID: "PT-OP-03", HubID: "hub-2", Status: model.StatusExpected, RecipientName: "Jane Tan"})

	svc := NewOperatorService(parcels, newFakeSlotRepo())

	results, err := svc.Search(context.Background(), "hub-1", "jane")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "PT-OP-01", results[0].TrackingID)
}

func TestOperatorGetParcelScopedToHub(t *testing.T) {
	parcels := newFakeParcelRepo()
	p := parcels.add(&model.Parcel{TrackingID: "PT-OP-04", HubID: "hub-1", Status: model.StatusExpected})

	svc := NewOperatorService(parcels, newFakeSlotRepo())

	got, err := svc.GetParcel(context.Background(), "hub-1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.GetParcel(context.Background(), "hub-2", p.ID)
	assert.ErrorIs(t, err, ErrParcelNotFound)

	_, err = svc.GetParcel(context.Background(), "hub-1", primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrParcelNotFound)
}

func TestOperatorListParcelsClampsPaging(t *testing.T) {
	parcels := newFakeParcelRepo()
	for _, id := range []string{"PT-PG-01", "PT-PG-02", "PT-PG-03"} {
		parcels.add(&model.Parcel{
			TrackingID: id,
			HubID:      "hub-1",
			Status:     model.StatusExpected,
		})
	}
	svc := NewOperatorService(parcels, newFakeSlotRepo())

	page, err := svc.ListParcels(context.Background(), repository.ParcelFilter{HubID: "hub-1", Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Parcels, 3)
}

func TestOperatorDashboard(t *testing.T) {
	parcels := newFakeParcelRepo()
	slots := newFakeSlotRepo()
	ctx := context.Background()
	require.NoError(t, slots.Provision(ctx, "hub-1", model.ZoneA, 10))

	now := time.Now()
	yesterday := now.Add(-36 * time.Hour)

	ready := parcels.add(&model.Parcel{TrackingID: "PT-D-01", HubID: "hub-1", Status: model.StatusReadyForPickup, StorageZone: model.ZoneA, StorageLocation: "A-01"})
	ready.CheckedInAt = &now
	parcels.add(ready)

	unclaimed := parcels.add(&model.Parcel{TrackingID: "PT-D-02", HubID: "hub-1", Status: model.StatusArrivedUnclaimed, StorageZone: model.ZoneA, StorageLocation: "A-02"})
	unclaimed.CheckedInAt = &yesterday
	parcels.add(unclaimed)

	collected := parcels.add(&model.Parcel{TrackingID: "PT-D-03", HubID: "hub-1", Status: model.StatusCollected})
	collected.CheckedOutAt = &now
	parcels.add(collected)

	parcels.add(&model.Parcel{TrackingID: "PT-D-04", HubID: "hub-1", Status: model.StatusExpected})

	svc := NewOperatorService(parcels, slots)
	stats, err := svc.Dashboard(ctx, "hub-1")
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.Today.CheckedIn)
	assert.Equal(t, int64(1), stats.Today.CheckedOut)
	assert.Equal(t, int64(2), stats.Today.PendingPickup)
	assert.Equal(t, int64(10), stats.Storage.TotalCapacity)
	assert.Equal(t, int64(2), stats.Storage.Occupied)
	assert.Equal(t, int64(1), stats.Status[model.StatusExpected])
	assert.Equal(t, int64(1), stats.Status[model.StatusCollected])
}

func TestOperatorInventoryGroupsByZone(t *testing.T) {
	parcels := newFakeParcelRepo()
	parcels.add(&model.Parcel{TrackingID: "PT-I-01", HubID: "hub-1", Status: model.StatusReadyForPickup, StorageZone: model.ZoneB, StorageLocation: "B-02"})
	parcels.add(&model.Parcel{TrackingID: "PT-I-02", HubID: "hub-1", Status: model.StatusArrivedUnclaimed, StorageZone: model.ZoneB, StorageLocation: "B-01"})
	parcels.add(&model.Parcel{TrackingID: "PT-I-03", HubID: "hub-1", Status: model.StatusCollected, StorageZone: model.ZoneA, StorageLocation: "A-01"})

	svc := NewOperatorService(parcels, newFakeSlotRepo())
	inventory, err := svc.Inventory(context.Background(), "hub-1")
	require.NoError(t, err)
	require.Len(t, inventory, 3)

	assert.Equal(t, model.ZoneA, inventory[0].Zone)
	assert.Empty(t, inventory[0].Parcels)

	assert.Equal(t, model.ZoneB, inventory[1].Zone)
	require.Len(t, inventory[1].Parcels, 2)
	assert.Equal(t, "B-01", inventory[1].Parcels[0].StorageLocation)
	assert.Equal(t, "B-02", inventory[1].Parcels[1].StorageLocation)

	assert.Equal(t, model.ZoneC, inventory[2].Zone)
}

func TestStorageSummaryClampsAvailable(t *testing.T) {
	parcels := newFakeParcelRepo()
	slots := newFakeSlotRepo()
	ctx := context.Background()

	// Unprovisioned hub with synthetic occupancy: available must not go
	// negative.
	parcels.add(&model.Parcel{TrackingID: "PT-S-01", HubID: "hub-new", Status: model.StatusArrivedUnclaimed, StorageZone: model.ZoneA, StorageLocation: "A-01"})

	svc := NewOperatorService(parcels, slots)
	summary, err := svc.StorageSummary(ctx, "hub-new")
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalCapacity)
	assert.Equal(t, int64(1), summary.Occupied)
	assert.Equal(t, int64(0), summary.Available)
}

func TestOverrideStatusReturnsParcel(t *testing.T) {
	parcels := newFakeParcelRepo()
	p := parcels.add(&model.Parcel{
		TrackingID:      "PT-OV-01",
		HubID:           "hub-1",
		Status:          model.StatusArrivedUnclaimed,
		StorageZone:     model.ZoneA,
		StorageLocation: "A-01",
	})

	svc := NewOperatorService(parcels, newFakeSlotRepo())
	updated, err := svc.OverrideStatus(context.Background(), "hub-1", p.ID, dto.OverrideStatusRequest{
		Status: model.StatusReturned,
		Reason: "unclaimed past retention window",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusReturned, updated.Status)
	assert.Equal(t, "unclaimed past retention window", updated.Notes)
}

func TestOverrideStatusCancelsExpected(t *testing.T) {
	parcels := newFakeParcelRepo()
	p := parcels.add(&model.Parcel{TrackingID: "PT-OV-02", HubID: "hub-1", Status: model.StatusExpected})

	svc := NewOperatorService(parcels, newFakeSlotRepo())
	updated, err := svc.OverrideStatus(context.Background(), "hub-1", p.ID, dto.OverrideStatusRequest{
		Status: model.StatusCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, updated.Status)
	assert.NotNil(t, updated.CancelledAt)
}

func TestOverrideStatusRejectsInvalidTransition(t *testing.T) {
	parcels := newFakeParcelRepo()
	p := parcels.add(&model.Parcel{TrackingID: "PT-OV-03", HubID: "hub-1", Status: model.StatusCollected})

	svc := NewOperatorService(parcels, newFakeSlotRepo())
	_, err := svc.OverrideStatus(context.Background(), "hub-1", p.ID, dto.OverrideStatusRequest{
		Status: model.StatusReturned,
	})

	var statusErr *InvalidStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, model.StatusCollected, statusErr.Current)
	assert.Equal(t, model.StatusReturned, statusErr.Target)
}

func TestOverrideStatusHubMismatch(t *testing.T) {
	parcels := newFakeParcelRepo()
	p := parcels.add(&model.Parcel{TrackingID: "PT-OV-04", HubID: "hub-1", Status: model.StatusReadyForPickup})

	svc := NewOperatorService(parcels, newFakeSlotRepo())
	_, err := svc.OverrideStatus(context.Background(), "hub-2", p.ID, dto.OverrideStatusRequest{
		Status: model.StatusReturned,
	})
	assert.ErrorIs(t, err, ErrHubMismatch)
}
