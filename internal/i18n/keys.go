// Package i18n provides internationalization support for the parcel service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyInvalidCredentials indicates invalid login credentials.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"

	// ErrKeyParcelNotFound indicates an unknown parcel or tracking ID.
	ErrKeyParcelNotFound = "error.parcel_not_found"
	// ErrKeyStorageFull indicates every slot in the target zone is occupied.
	ErrKeyStorageFull = "error.storage_full"
	// ErrKeyInvalidStatus indicates the parcel lifecycle forbids the action.
	ErrKeyInvalidStatus = "error.invalid_status"
	// ErrKeyInsufficientPayment indicates the tendered amount is short.
	ErrKeyInsufficientPayment = "error.insufficient_payment"
	// ErrKeyDuplicateTracking indicates the tracking ID is already registered.
	ErrKeyDuplicateTracking = "error.duplicate_tracking"
)

// Success message translation keys.
const (
	// SuccessKeyParcelMatched indicates a check-in matched a pre-registration.
	SuccessKeyParcelMatched = "success.parcel_matched"
	// SuccessKeyParcelUnmatched indicates a check-in without a pre-registration.
	SuccessKeyParcelUnmatched = "success.parcel_unmatched"
	// SuccessKeyParcelCollected indicates a completed check-out.
	SuccessKeyParcelCollected = "success.parcel_collected"
	// SuccessKeyPreRegistered indicates a recorded pre-registration.
	SuccessKeyPreRegistered = "success.pre_registered"
)
