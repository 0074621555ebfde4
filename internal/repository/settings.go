// Package repository provides data access for pricing settings.
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

// SettingsRepository provides methods for pricing settings operations.
type SettingsRepository struct {
	collection *mongo.Collection
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *MongoDB) *SettingsRepository {
	return &SettingsRepository{
		collection: db.Settings,
	}
}

// GetActive returns the active pricing settings.
func (r *SettingsRepository) GetActive(ctx context.Context) (*model.PricingSettings, error) {
	var settings model.PricingSettings
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return nil, nil // No active settings found
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Create creates new pricing settings and deactivates the predecessor.
func (r *SettingsRepository) Create(ctx context.Context, pricing model.PricingConfig, createdBy string) (*model.PricingSettings, error) {
	current, err := r.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	version := 1
	if current != nil {
		version = current.Version + 1
	}

	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return nil, err
	}

	settings := model.PricingSettings{
		ID:        primitive.NewObjectID(),
		Pricing:   pricing,
		Active:    true,
		Version:   version,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		CreatedBy: createdBy,
	}

	_, err = r.collection.InsertOne(ctx, settings)
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// List returns pricing settings history, newest first.
func (r *SettingsRepository) List(ctx context.Context, limit int) ([]model.PricingSettings, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var history []model.PricingSettings
	if err := cursor.All(ctx, &history); err != nil {
		return nil, err
	}

	return history, nil
}
