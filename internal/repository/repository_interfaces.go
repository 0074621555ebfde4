// Package repository provides interfaces for repository operations.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

var (
	// ErrSlotTaken is returned when a write would give a second live
	// parcel the same (hub, storage location) pair. The partial unique
	// index on live parcels rejects the write; callers retry with a
	// different slot.
	ErrSlotTaken = errors.New("storage location already held by a live parcel")
	// ErrStaleStatus is returned when a guarded status transition matched
	// no document, i.e. the parcel moved to another status concurrently.
	ErrStaleStatus = errors.New("parcel status changed concurrently")
)

// CheckInFields are the fields stamped onto a parcel at check-in.
type CheckInFields struct {
	WeightKg        float64
	StorageZone     string
	StorageLocation string
	FeeAmount       float64
	IsDamaged       bool
	Notes           string
	OperatorID      string
	CheckedInAt     time.Time
}

// CollectFields are the fields stamped onto a parcel at check-out.
type CollectFields struct {
	OperatorID     string
	CheckedOutAt   time.Time
	RecipientName  string // optional walk-in override
	RecipientPhone string // optional walk-in override
	Notes          string
}

// ParcelFilter narrows parcel listings.
type ParcelFilter struct {
	HubID       string
	RecipientID string
	Status      model.ParcelStatus
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        int
	Limit       int
}

// ParcelRepositoryInterface defines parcel data access. All guarded
// transitions are single atomic conditional updates so that concurrent
// operators cannot double-process a parcel.
type ParcelRepositoryInterface interface {
	Insert(ctx context.Context, p *model.Parcel) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Parcel, error)
	// FindByTrackingID looks a parcel up by tracking ID. An empty hubID
	// searches across hubs (public tracking).
	FindByTrackingID(ctx context.Context, hubID, trackingID string) (*model.Parcel, error)
	// CheckInExpected transitions an EXPECTED parcel to READY_FOR_PICKUP,
	// stamping the check-in fields. Returns ErrStaleStatus if the parcel
	// is no longer EXPECTED and ErrSlotTaken on a slot claim conflict.
	CheckInExpected(ctx context.Context, id primitive.ObjectID, f CheckInFields) (*model.Parcel, error)
	// Collect transitions a live parcel to COLLECTED and marks it paid.
	Collect(ctx context.Context, id primitive.ObjectID, f CollectFields) (*model.Parcel, error)
	// CancelExpected transitions an EXPECTED parcel to CANCELLED.
	CancelExpected(ctx context.Context, id primitive.ObjectID, at time.Time) (*model.Parcel, error)
	// OverrideStatus force-transitions a live parcel to RETURNED or
	// CANCELLED (admin action).
	OverrideStatus(ctx context.Context, id primitive.ObjectID, to model.ParcelStatus, reason string, at time.Time) (*model.Parcel, error)
	// OccupiedCodes returns the slot codes held by live parcels in a
	// hub zone.
	OccupiedCodes(ctx context.Context, hubID, zone string) ([]string, error)
	Search(ctx context.Context, hubID, query string, limit int64) ([]model.Parcel, error)
	List(ctx context.Context, f ParcelFilter) ([]model.Parcel, int64, error)
	ListLive(ctx context.Context, hubID string) ([]model.Parcel, error)
	CountByStatus(ctx context.Context, hubID string) (map[model.ParcelStatus]int64, error)
	CountLive(ctx context.Context, hubID string) (int64, error)
	CountCheckedInBetween(ctx context.Context, hubID string, from, to time.Time) (int64, error)
	CountCheckedOutBetween(ctx context.Context, hubID string, from, to time.Time) (int64, error)
}

// StorageLocationRepositoryInterface defines slot provisioning and lookup.
type StorageLocationRepositoryInterface interface {
	// ListCodes returns all provisioned codes for a hub zone, ascending.
	ListCodes(ctx context.Context, hubID, zone string) ([]string, error)
	// CountForHub returns the number of slots provisioned across all
	// zones of a hub. Zero distinguishes a configuration gap from
	// genuine exhaustion.
	CountForHub(ctx context.Context, hubID string) (int64, error)
	// Provision seeds slots for a hub zone, ignoring existing codes.
	Provision(ctx context.Context, hubID, zone string, count int) error
}

// SettingsRepositoryInterface defines pricing settings access.
type SettingsRepositoryInterface interface {
	GetActive(ctx context.Context) (*model.PricingSettings, error)
	Create(ctx context.Context, pricing model.PricingConfig, createdBy string) (*model.PricingSettings, error)
	List(ctx context.Context, limit int) ([]model.PricingSettings, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// UserRepositoryInterface defines user data access.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

// TokenRepositoryInterface defines refresh/blacklist token data access.
type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.Token) error
	FindByToken(ctx context.Context, tokenString string) (*model.Token, error)
	DeleteByToken(ctx context.Context, tokenString string) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID, tokenType string) error
	IsBlacklisted(ctx context.Context, tokenString string) (bool, error)
}
