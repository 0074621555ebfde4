// Package dto defines Data Transfer Objects for authentication.
package dto

import (
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRequest is the JSON body for the login endpoint.
//
// @Description Request to authenticate a user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"operator@hub-central.example"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
} // @name LoginRequest

// RegisterRequest is the JSON body for the register endpoint. Self-service
// registration always creates a RECIPIENT account at the chosen hub;
// operator and admin accounts are provisioned out of band.
//
// @Description Request to register a new recipient account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
	FullName string `json:"full_name" binding:"required" example:"Jane Tan"`
	Phone    string `json:"phone,omitempty" example:"0123456789"`
	HubID    string `json:"hub_id" binding:"required" example:"hub-central"`
} // @name RegisterRequest

// UserResponse is the sanitized user representation returned by auth endpoints.
type UserResponse struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	FullName string         `json:"full_name"`
	Role     model.UserRole `json:"role"`
	HubID    string         `json:"hub_id"`
} // @name UserResponse

// NewUserResponse builds a UserResponse from a user model.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:       u.ID.Hex(),
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		HubID:    u.HubID,
	}
}

// LoginResponse is the JSON body returned on successful authentication.
//
// @Description Successful authentication response with JWT tokens
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
} // @name LoginResponse

// TokenPair holds a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// ExpiresIn is the access token lifetime in seconds
	ExpiresIn int64 `json:"expires_in"`
}

// Claims are the application claims embedded in JWT tokens. HubID scopes
// every operator action to their assigned hub.
type Claims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
	Role   model.UserRole     `json:"role"`
	HubID  string             `json:"hub_id"`
}
