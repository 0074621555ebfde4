// Package repository provides the data access layer for MongoDB.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	EnableCompression      bool
}

// DefaultMongoConfig returns production-oriented MongoDB configuration.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            10,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides MongoDB client and collection access.
type MongoDB struct {
	Client           *mongo.Client
	Database         *mongo.Database
	Parcels          *mongo.Collection
	StorageLocations *mongo.Collection
	Hubs             *mongo.Collection
	Settings         *mongo.Collection
	Users            *mongo.Collection
	Tokens           *mongo.Collection
	Logs             *mongo.Collection
}

// NewMongoDB creates a new MongoDB connection with default configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig creates a new MongoDB connection with custom configuration.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	clientOptions.SetRetryWrites(true)
	clientOptions.SetRetryReads(true)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	mongoDB := &MongoDB{
		Client:           client,
		Database:         db,
		Parcels:          db.Collection("parcels"),
		StorageLocations: db.Collection("storage_locations"),
		Hubs:             db.Collection("hubs"),
		Settings:         db.Collection("settings"),
		Users:            db.Collection("users"),
		Tokens:           db.Collection("tokens"),
		Logs:             db.Collection("logs"),
	}

	if err := mongoDB.createIndexes(ctx); err != nil {
		return nil, err
	}

	return mongoDB, nil
}

// createIndexes creates the indexes the service relies on. The partial
// unique index on (hub_id, storage_location) over live parcels is what
// makes slot claiming atomic: a second live parcel on the same slot is
// rejected by the server, not detected by a read.
func (m *MongoDB) createIndexes(ctx context.Context) error {
	liveSlotIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "hub_id", Value: 1}, {Key: "storage_location", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"status": bson.M{"$in": model.LiveStatuses},
			}),
	}
	if _, err := m.Parcels.Indexes().CreateOne(ctx, liveSlotIndex); err != nil {
		return err
	}

	trackingIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "hub_id", Value: 1}, {Key: "tracking_id", Value: 1}},
	}
	_, _ = m.Parcels.Indexes().CreateOne(ctx, trackingIndex)

	statusIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "hub_id", Value: 1}, {Key: "status", Value: 1}},
	}
	_, _ = m.Parcels.Indexes().CreateOne(ctx, statusIndex)

	recipientIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
	}
	_, _ = m.Parcels.Indexes().CreateOne(ctx, recipientIndex)

	// Storage slots are provisioned once; codes are unique per hub.
	slotCodeIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "hub_id", Value: 1}, {Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = m.StorageLocations.Indexes().CreateOne(ctx, slotCodeIndex)

	zoneIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "hub_id", Value: 1}, {Key: "zone", Value: 1}},
	}
	_, _ = m.StorageLocations.Indexes().CreateOne(ctx, zoneIndex)

	settingsIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "active", Value: 1}},
	}
	_, _ = m.Settings.Indexes().CreateOne(ctx, settingsIndex)

	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = m.Users.Indexes().CreateOne(ctx, emailIndex)

	tokenIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = m.Tokens.Indexes().CreateOne(ctx, tokenIndex)

	userTypeIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}},
	}
	_, _ = m.Tokens.Indexes().CreateOne(ctx, userTypeIndex)

	tokenTTLIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0), // expire at expires_at
	}
	_, _ = m.Tokens.Indexes().CreateOne(ctx, tokenTTLIndex)

	requestIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "request_id", Value: 1}},
	}
	_, _ = m.Logs.Indexes().CreateOne(ctx, requestIDIndex)

	return nil
}

// SetLogsTTL updates the TTL index for the logs collection.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttlDays int) error {
	_, _ = m.Logs.Indexes().DropOne(ctx, "timestamp_1")

	ttlSeconds := int32(ttlDays * 24 * 60 * 60)
	ttlIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(ttlSeconds),
	}
	_, err := m.Logs.Indexes().CreateOne(ctx, ttlIndex)
	return err
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck verifies the MongoDB connection is healthy.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
