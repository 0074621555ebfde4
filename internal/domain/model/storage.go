// Package model defines hub and storage entities.
package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage zones, ordered by maximum parcel weight.
const (
	ZoneA = "A" // small items
	ZoneB = "B" // medium items
	ZoneC = "C" // large items
)

// Hub is a physical pickup location. It owns a namespace of storage
// locations and the users (operators, recipients) assigned to it.
type Hub struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code      string             `bson:"code" json:"code"`
	Name      string             `bson:"name" json:"name"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// StorageLocation is a concrete slot within a hub zone, provisioned once
// at seed time. There is no occupancy flag: a slot is occupied exactly
// when a live parcel references its code.
type StorageLocation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HubID     string             `bson:"hub_id" json:"hub_id"`
	Zone      string             `bson:"zone" json:"zone"`
	Code      string             `bson:"code" json:"code"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// MaxSlotsPerZone is the highest position a slot code can hold. The
// two-digit padding keeps lexicographic order equal to numeric order,
// which the first-fit allocator relies on; "A-100" would sort before
// "A-11".
const MaxSlotsPerZone = 99

// SlotCode formats a slot code for a zone and position, zero-padded so
// lexicographic order equals numeric order ("A-01".."A-99").
func SlotCode(zone string, position int) string {
	return fmt.Sprintf("%s-%02d", zone, position)
}
