package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/i18n"
	"github.com/parceltrack/parcel-service/internal/middleware"
	"github.com/parceltrack/parcel-service/internal/service"
)

// respondServiceError maps a service-layer error to its HTTP response.
// Lifecycle conflicts and slot exhaustion are 409s with a machine-readable
// code; a payment shortfall is a 400 carrying the exact amounts so the
// counter UI can display them.
func respondServiceError(c *gin.Context, builder *ResponseBuilder, err error) {
	locale := i18n.GetLocale(c)
	translate := func(key string) string {
		return i18n.GetTranslator().Translate(key, locale)
	}

	var invalidStatus *service.InvalidStatusError
	if errors.As(err, &invalidStatus) {
		builder.ErrorCode(http.StatusConflict, dto.ErrCodeInvalidStatus,
			translate(i18n.ErrKeyInvalidStatus), err, map[string]interface{}{
				"current_status": invalidStatus.Current,
				"target_status":  invalidStatus.Target,
			})
		return
	}

	var insufficient *service.InsufficientPaymentError
	if errors.As(err, &insufficient) {
		builder.ErrorCode(http.StatusBadRequest, dto.ErrCodeInsufficientPayment,
			translate(i18n.ErrKeyInsufficientPayment), err, map[string]interface{}{
				"required":  insufficient.Required,
				"received":  insufficient.Received,
				"shortfall": insufficient.Shortfall(),
			})
		return
	}

	switch {
	case errors.Is(err, service.ErrStorageFull):
		builder.ErrorCode(http.StatusConflict, dto.ErrCodeStorageFull,
			translate(i18n.ErrKeyStorageFull), err, nil)
	case errors.Is(err, service.ErrParcelNotFound):
		builder.ErrorCode(http.StatusNotFound, dto.ErrCodeNotFound,
			translate(i18n.ErrKeyParcelNotFound), err, nil)
	case errors.Is(err, service.ErrDuplicateTracking):
		builder.ErrorCode(http.StatusConflict, dto.ErrCodeDuplicateTracking,
			translate(i18n.ErrKeyDuplicateTracking), err, nil)
	case errors.Is(err, service.ErrHubMismatch), errors.Is(err, service.ErrNotParcelOwner):
		builder.ErrorCode(http.StatusForbidden, dto.ErrCodeForbidden,
			translate(i18n.ErrKeyForbidden), err, nil)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// respondValidationError maps a request validation error to a 400.
func respondValidationError(builder *ResponseBuilder, err error) {
	var validationErr *dto.ValidationError
	if errors.As(err, &validationErr) {
		builder.ErrorWithMessage(http.StatusBadRequest, validationErr.Error(), err)
		return
	}
	builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}

// auditLog records an audit entry when the logging service is wired.
func auditLog(c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, actionType, message, fields)
		}
	}
}
