// Package model defines the core domain entities for the parcel service.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParcelStatus is the lifecycle state of a parcel.
type ParcelStatus string

const (
	// StatusExpected means the parcel was pre-registered and has not arrived yet.
	StatusExpected ParcelStatus = "EXPECTED"
	// StatusArrivedUnclaimed means the parcel arrived without a matching pre-registration.
	StatusArrivedUnclaimed ParcelStatus = "ARRIVED_UNCLAIMED"
	// StatusReadyForPickup means the parcel is checked in, stored, and awaiting collection.
	StatusReadyForPickup ParcelStatus = "READY_FOR_PICKUP"
	// StatusCollected means the parcel was paid for and handed over.
	StatusCollected ParcelStatus = "COLLECTED"
	// StatusReturned means the parcel was sent back to the courier.
	StatusReturned ParcelStatus = "RETURNED"
	// StatusCancelled means the pre-registration or parcel was cancelled.
	StatusCancelled ParcelStatus = "CANCELLED"
)

// LiveStatuses are the statuses under which a parcel occupies a storage slot.
// Slot occupancy is derived exclusively from parcels in these statuses.
var LiveStatuses = []ParcelStatus{StatusReadyForPickup, StatusArrivedUnclaimed}

// IsTerminal reports whether no further transitions are allowed from s.
func (s ParcelStatus) IsTerminal() bool {
	switch s {
	case StatusCollected, StatusReturned, StatusCancelled:
		return true
	}
	return false
}

// IsLive reports whether a parcel in status s occupies its storage slot.
func (s ParcelStatus) IsLive() bool {
	return s == StatusReadyForPickup || s == StatusArrivedUnclaimed
}

// Valid reports whether s is a known parcel status.
func (s ParcelStatus) Valid() bool {
	switch s {
	case StatusExpected, StatusArrivedUnclaimed, StatusReadyForPickup,
		StatusCollected, StatusReturned, StatusCancelled:
		return true
	}
	return false
}

// allowedTransitions is the lifecycle transition table. Absent entries
// (including every terminal state) permit no outgoing transition.
var allowedTransitions = map[ParcelStatus][]ParcelStatus{
	StatusExpected:         {StatusReadyForPickup, StatusCancelled},
	StatusArrivedUnclaimed: {StatusCollected, StatusReturned, StatusCancelled},
	StatusReadyForPickup:   {StatusCollected, StatusReturned, StatusCancelled},
}

// CanTransition reports whether the lifecycle permits moving from one
// status to another.
func CanTransition(from, to ParcelStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PaymentStatus tracks whether the storage fee has been settled.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentWaived  PaymentStatus = "WAIVED"
)

// PaymentMethod is how the recipient settled the fee at the counter.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentQR   PaymentMethod = "QR_CODE"
	PaymentCard PaymentMethod = "CARD"
)

// Valid reports whether m is an accepted payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentQR, PaymentCard:
		return true
	}
	return false
}

// Parcel is the central entity: a physical parcel moving through a hub.
//
// StorageLocation is set at check-in and retained after collection for
// history; only parcels in a live status count as occupying the slot.
type Parcel struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrackingID     string             `bson:"tracking_id" json:"tracking_id"`
	HubID          string             `bson:"hub_id" json:"hub_id"`
	Status         ParcelStatus       `bson:"status" json:"status"`
	RecipientID    string             `bson:"recipient_id,omitempty" json:"recipient_id,omitempty"`
	RecipientName  string             `bson:"recipient_name" json:"recipient_name"`
	RecipientPhone string             `bson:"recipient_phone" json:"recipient_phone"`
	RecipientEmail string             `bson:"recipient_email,omitempty" json:"recipient_email,omitempty"`

	WeightKg        float64       `bson:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	StorageZone     string        `bson:"storage_zone,omitempty" json:"storage_zone,omitempty"`
	StorageLocation string        `bson:"storage_location,omitempty" json:"storage_location,omitempty"`
	FeeAmount       float64       `bson:"fee_amount,omitempty" json:"fee_amount"`
	PaymentStatus   PaymentStatus `bson:"payment_status" json:"payment_status"`

	IsDamaged bool   `bson:"is_damaged,omitempty" json:"is_damaged,omitempty"`
	Notes     string `bson:"notes,omitempty" json:"notes,omitempty"`

	CheckedInByID  string `bson:"checked_in_by_id,omitempty" json:"checked_in_by_id,omitempty"`
	CheckedOutByID string `bson:"checked_out_by_id,omitempty" json:"checked_out_by_id,omitempty"`

	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
	CheckedInAt  *time.Time `bson:"checked_in_at,omitempty" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `bson:"checked_out_at,omitempty" json:"checked_out_at,omitempty"`
	CancelledAt  *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
}
