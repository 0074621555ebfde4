package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/i18n"
	"github.com/parceltrack/parcel-service/internal/middleware"
	"github.com/parceltrack/parcel-service/internal/service"
)

// AdminHandler provides HTTP handlers for administrative operations.
type AdminHandler struct {
	operator service.OperatorService
	pricing  service.PricingService
	logging  service.LoggingService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	operator service.OperatorService,
	pricing service.PricingService,
	logging service.LoggingService,
) *AdminHandler {
	return &AdminHandler{
		operator: operator,
		pricing:  pricing,
		logging:  logging,
	}
}

// OverrideStatus handles POST /api/admin/parcels/:id/override requests.
//
// @Summary      Override a parcel's status
// @Description  Force-moves a parcel to RETURNED or CANCELLED, recording the reason
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Parcel ID"
// @Param        request body dto.OverrideStatusRequest true "Target status and reason"
// @Success      200 {object} dto.SuccessResponse "Updated parcel"
// @Failure      400 {object} dto.ErrorResponse "Bad request - unsupported target status"
// @Failure      404 {object} dto.ErrorResponse "Parcel not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - transition not allowed"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/admin/parcels/{id}/override [post]
func (h *AdminHandler) OverrideStatus(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyParcelNotFound, err)
		return
	}

	req, err := BuildRequestAndValidate[dto.OverrideStatusRequest](c)
	if err != nil {
		respondValidationError(builder, err)
		return
	}

	claims := middleware.GetClaims(c)
	parcel, err := h.operator.OverrideStatus(c.Request.Context(), claims.HubID, id, *req)
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	auditLog(c, "override_status", "Parcel status overridden", map[string]interface{}{
		"tracking_id": parcel.TrackingID,
		"parcel_id":   parcel.ID.Hex(),
		"status":      parcel.Status,
		"reason":      req.Reason,
	})
	builder.SuccessOK(parcel)
}

// GetPricing handles GET /api/admin/pricing requests.
//
// @Summary      Get active pricing
// @Description  Returns the pricing configuration currently applied at check-in
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SuccessResponse "Active pricing"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/admin/pricing [get]
func (h *AdminHandler) GetPricing(c *gin.Context) {
	builder := NewResponseBuilder(c)
	builder.SuccessOK(h.pricing.ActivePricing(c.Request.Context()))
}

// UpdatePricing handles PUT /api/admin/pricing requests.
//
// @Summary      Update pricing
// @Description  Replaces the active pricing configuration; the previous version is kept for history
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdatePricingRequest true "New pricing configuration"
// @Success      200 {object} dto.SuccessResponse "Stored pricing version"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid pricing values"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/admin/pricing [put]
func (h *AdminHandler) UpdatePricing(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpdatePricingRequest](c)
	if err != nil {
		respondValidationError(builder, err)
		return
	}

	claims := middleware.GetClaims(c)
	settings, err := h.pricing.Update(c.Request.Context(), *req, claims.Email)
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	auditLog(c, "update_pricing", "Pricing updated", map[string]interface{}{
		"version":  settings.Version,
		"base_fee": settings.Pricing.BaseFee,
	})
	builder.SuccessOK(settings)
}

// PricingHistory handles GET /api/admin/pricing/history requests.
//
// @Summary      Pricing history
// @Description  Returns stored pricing versions, newest first
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Maximum versions to return" default(20)
// @Success      200 {object} dto.SuccessResponse "Pricing versions"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/admin/pricing/history [get]
func (h *AdminHandler) PricingHistory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	history, err := h.pricing.History(c.Request.Context(), intQuery(c, "limit", 20))
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	builder.SuccessOK(history)
}

// QueryLogs handles GET /api/admin/logs requests.
//
// @Summary      Query audit logs
// @Description  Returns stored request and audit log entries matching the filters
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        request_id query string false "Filter by request ID"
// @Param        level query string false "Filter by log level"
// @Param        action_type query string false "Filter by audit action"
// @Param        hub_id query string false "Filter by hub"
// @Param        start_time query string false "Filter by timestamp (RFC 3339)"
// @Param        end_time query string false "Filter by timestamp (RFC 3339)"
// @Param        limit query int false "Maximum entries to return" default(100)
// @Param        skip query int false "Entries to skip" default(0)
// @Success      200 {object} dto.SuccessResponse "Matching log entries"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid time filter"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/admin/logs [get]
func (h *AdminHandler) QueryLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	opts := model.LogQueryOptions{
		RequestID:  c.Query("request_id"),
		Level:      c.Query("level"),
		ActionType: c.Query("action_type"),
		HubID:      c.Query("hub_id"),
		Limit:      intQuery(c, "limit", 100),
		Skip:       intQuery(c, "skip", 0),
	}
	if start := c.Query("start_time"); start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			builder.ErrorWithMessage(http.StatusBadRequest, "start_time: must be RFC 3339", err)
			return
		}
		opts.StartTime = &t
	}
	if end := c.Query("end_time"); end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			builder.ErrorWithMessage(http.StatusBadRequest, "end_time: must be RFC 3339", err)
			return
		}
		opts.EndTime = &t
	}

	entries, err := h.logging.QueryLogs(c.Request.Context(), opts)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	total, err := h.logging.CountLogs(c.Request.Context(), opts)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(gin.H{
		"logs":  entries,
		"total": total,
		"limit": opts.Limit,
		"skip":  opts.Skip,
	})
}
