package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parceltrack/parcel-service/internal/service"
)

// TrackingHandler serves the unauthenticated tracking lookup.
type TrackingHandler struct {
	tracking service.TrackingService
}

// NewTrackingHandler creates a new tracking handler.
func NewTrackingHandler(tracking service.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

// Track handles GET /api/track/:trackingId requests.
//
// @Summary      Track a parcel
// @Description  Returns anonymized status information for a tracking ID. No recipient details are exposed
// @Tags         Tracking
// @Produce      json
// @Param        trackingId path string true "Courier tracking ID"
// @Success      200 {object} dto.SuccessResponse{data=dto.PublicTracking} "Tracking information"
// @Failure      404 {object} dto.ErrorResponse "Unknown tracking ID"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/track/{trackingId} [get]
func (h *TrackingHandler) Track(c *gin.Context) {
	builder := NewResponseBuilder(c)

	trackingID := strings.TrimSpace(c.Param("trackingId"))
	if trackingID == "" {
		respondServiceError(c, builder, service.ErrParcelNotFound)
		return
	}

	info, err := h.tracking.Track(c.Request.Context(), trackingID)
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	builder.SuccessOK(info)
}
