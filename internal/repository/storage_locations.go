// Package repository provides data access for storage locations.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

// StorageLocationRepository implements StorageLocationRepositoryInterface.
type StorageLocationRepository struct {
	collection *mongo.Collection
}

// NewStorageLocationRepository creates a new storage location repository.
func NewStorageLocationRepository(db *MongoDB) *StorageLocationRepository {
	return &StorageLocationRepository{collection: db.StorageLocations}
}

// ListCodes returns the provisioned slot codes for a hub zone in ascending
// order. Codes are zero-padded, so lexicographic order is positional order.
func (r *StorageLocationRepository) ListCodes(ctx context.Context, hubID, zone string) ([]string, error) {
	filter := bson.M{"hub_id": hubID, "zone": zone}
	opts := options.Find().
		SetSort(bson.D{{Key: "code", Value: 1}}).
		SetProjection(bson.M{"code": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []struct {
		Code string `bson:"code"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(docs))
	for _, d := range docs {
		codes = append(codes, d.Code)
	}
	return codes, nil
}

// CountForHub returns the number of slots provisioned across all zones of
// a hub.
func (r *StorageLocationRepository) CountForHub(ctx context.Context, hubID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"hub_id": hubID})
}

// Provision seeds count slots for a hub zone, capped at MaxSlotsPerZone.
// Existing codes are left in place; the unique (hub_id, code) index makes
// re-provisioning idempotent.
func (r *StorageLocationRepository) Provision(ctx context.Context, hubID, zone string, count int) error {
	if count <= 0 {
		return nil
	}
	if count > model.MaxSlotsPerZone {
		count = model.MaxSlotsPerZone
	}

	now := time.Now()
	docs := make([]interface{}, 0, count)
	for position := 1; position <= count; position++ {
		docs = append(docs, model.StorageLocation{
			ID:        primitive.NewObjectID(),
			HubID:     hubID,
			Zone:      zone,
			Code:      model.SlotCode(zone, position),
			CreatedAt: now,
		})
	}

	opts := options.InsertMany().SetOrdered(false)
	_, err := r.collection.InsertMany(ctx, docs, opts)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if bulkErr, ok := err.(mongo.BulkWriteException); ok {
		for _, we := range bulkErr.WriteErrors {
			if we.Code != 11000 {
				return err
			}
		}
		return nil
	}
	return err
}
