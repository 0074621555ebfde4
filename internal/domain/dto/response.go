package dto

import (
	"net/http"
	"time"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions or a hub mismatch.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"

	// ErrCodeStorageFull indicates every provisioned slot in the target
	// zone is occupied. Distinct from a hub with no slots provisioned.
	ErrCodeStorageFull = "storage_full"
	// ErrCodeInvalidStatus indicates the parcel's lifecycle state does not
	// permit the requested transition.
	ErrCodeInvalidStatus = "invalid_status"
	// ErrCodeInsufficientPayment indicates the tendered amount does not
	// cover the storage fee.
	ErrCodeInsufficientPayment = "insufficient_payment"
	// ErrCodeDuplicateTracking indicates the tracking ID is already
	// registered at this hub.
	ErrCodeDuplicateTracking = "duplicate_tracking_id"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response payload
	Data interface{} `json:"data" swaggertype:"object"`
	// Message is a human-readable status line for UI display
	Message string `json:"message,omitempty" example:"Parcel matched! Assigned to A-15."`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"insufficient_payment"`
	Message string `json:"message,omitempty" example:"Insufficient payment. Required: RM2.00, Received: RM1.50"`
	// Details contains additional error details, e.g. the payment shortfall
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time              `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetails adds structured details to the error response.
func (e ErrorResponse) WithDetails(details map[string]interface{}) ErrorResponse {
	e.Details = details
	return e
}

// ErrCodeFromStatus returns the appropriate generic error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}

// CheckInResult is the payload returned by a successful check-in.
//
// @Description Result of checking in an arrived parcel
type CheckInResult struct {
	Parcel *model.Parcel `json:"parcel"`
	// Matched reports whether a pre-registration was found for the tracking ID
	Matched bool `json:"matched" example:"true"`
	// StorageLocation is the slot assigned to the parcel
	StorageLocation string `json:"storage_location" example:"A-15"`
	StorageZone     string `json:"storage_zone" example:"A"`
	FeeAmount       float64 `json:"fee_amount" example:"1.50"`
	// SyntheticSlot is set when the hub had no provisioned slots and a
	// best-effort code was generated instead
	SyntheticSlot bool `json:"synthetic_slot,omitempty"`
} // @name CheckInResult

// PaymentInfo describes the payment collected at check-out.
type PaymentInfo struct {
	Method    model.PaymentMethod `json:"method" example:"CASH"`
	Amount    float64             `json:"amount" example:"5.00"`
	Timestamp time.Time           `json:"timestamp"`
} // @name PaymentInfo

// CheckOutResult is the payload returned by a successful check-out.
//
// @Description Result of releasing a parcel to its recipient
type CheckOutResult struct {
	Parcel  *model.Parcel `json:"parcel"`
	Payment PaymentInfo   `json:"payment"`
	// Change is the amount to hand back to the recipient
	Change float64 `json:"change" example:"3.00"`
} // @name CheckOutResult

// PublicTracking is the anonymized projection served to unauthenticated
// callers. It must never carry recipient PII.
//
// @Description Public tracking information for a parcel
type PublicTracking struct {
	TrackingID  string             `json:"tracking_id" example:"PT1A2B3C4D"`
	Status      model.ParcelStatus `json:"status" example:"READY_FOR_PICKUP"`
	CreatedAt   time.Time          `json:"created_at"`
	CheckedInAt *time.Time         `json:"checked_in_at,omitempty"`
	// StorageLocation is exposed only while the parcel is ready for pickup
	StorageLocation string  `json:"storage_location,omitempty" example:"A-15"`
	FeeAmount       float64 `json:"fee_amount,omitempty" example:"1.50"`
} // @name PublicTracking

// ParcelPage is a paginated list of parcels.
type ParcelPage struct {
	Parcels    []model.Parcel `json:"parcels"`
	Page       int            `json:"page" example:"1"`
	Limit      int            `json:"limit" example:"20"`
	Total      int64          `json:"total" example:"42"`
	TotalPages int            `json:"total_pages" example:"3"`
} // @name ParcelPage

// StorageSummary reports hub storage capacity and occupancy.
type StorageSummary struct {
	TotalCapacity int64 `json:"total_capacity" example:"300"`
	Occupied      int64 `json:"occupied" example:"120"`
	Available     int64 `json:"available" example:"180"`
} // @name StorageSummary

// DashboardStats is the operator dashboard payload.
type DashboardStats struct {
	Today struct {
		CheckedIn     int64 `json:"checked_in"`
		CheckedOut    int64 `json:"checked_out"`
		PendingPickup int64 `json:"pending_pickup"`
	} `json:"today"`
	Storage StorageSummary             `json:"storage"`
	Status  map[model.ParcelStatus]int64 `json:"status"`
} // @name DashboardStats

// ZoneInventory is one zone's live parcels grouped by slot.
type ZoneInventory struct {
	Zone    string         `json:"zone" example:"A"`
	Parcels []model.Parcel `json:"parcels"`
} // @name ZoneInventory
