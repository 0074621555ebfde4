// Package model defines user-related domain entities.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole is the fixed role a user holds. Roles are a closed set; there
// is no per-role permission configuration.
type UserRole string

const (
	RoleRecipient UserRole = "RECIPIENT"
	RoleOperator  UserRole = "OPERATOR"
	RoleAdmin     UserRole = "ADMIN"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleRecipient, RoleOperator, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the system. Every user belongs to exactly
// one hub; operators act only within their assigned hub.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // Never serialize password
	FullName  string             `bson:"full_name" json:"full_name"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role      UserRole           `bson:"role" json:"role"`
	HubID     string             `bson:"hub_id" json:"hub_id"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Token represents a refresh token or a blacklisted access token.
type Token struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Token     string             `bson:"token" json:"token"`
	Type      string             `bson:"type" json:"type"` // "refresh" or "blacklist"
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
