package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/i18n"
	"github.com/parceltrack/parcel-service/internal/middleware"
	"github.com/parceltrack/parcel-service/internal/repository"
	"github.com/parceltrack/parcel-service/internal/service"
)

// RecipientHandler provides HTTP handlers for recipient self-service.
type RecipientHandler struct {
	recipients service.RecipientService
	userRepo   repository.UserRepositoryInterface
}

// NewRecipientHandler creates a new recipient handler.
func NewRecipientHandler(recipients service.RecipientService, userRepo repository.UserRepositoryInterface) *RecipientHandler {
	return &RecipientHandler{
		recipients: recipients,
		userRepo:   userRepo,
	}
}

// PreRegister handles POST /api/me/parcels requests.
//
// @Summary      Pre-register an expected parcel
// @Description  Records a tracking ID ahead of arrival so the parcel is matched to the recipient at check-in
// @Tags         Recipient
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PreRegisterRequest true "Tracking ID to pre-register"
// @Success      201 {object} dto.SuccessResponse "Pre-registration recorded"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid tracking ID"
// @Failure      409 {object} dto.ErrorResponse "Conflict - tracking ID already registered"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/me/parcels [post]
func (h *RecipientHandler) PreRegister(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.PreRegisterRequest](c)
	if err != nil {
		respondValidationError(builder, err)
		return
	}

	claims := middleware.GetClaims(c)
	// The parcel snapshots the recipient's contact details, so load the
	// full profile rather than trusting the token's subset.
	user, err := h.userRepo.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	if user == nil {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyUnauthorized, nil)
		return
	}

	parcel, err := h.recipients.PreRegister(c.Request.Context(), user, *req)
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	auditLog(c, "pre_register", "Parcel pre-registered", map[string]interface{}{
		"tracking_id": parcel.TrackingID,
		"parcel_id":   parcel.ID.Hex(),
	})
	builder.SuccessWithMessage(http.StatusCreated, parcel, i18n.SuccessKeyPreRegistered)
}

// ListMine handles GET /api/me/parcels requests.
//
// @Summary      List my parcels
// @Description  Returns the authenticated recipient's parcels, newest first
// @Tags         Recipient
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status"
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(20)
// @Success      200 {object} dto.SuccessResponse{data=dto.ParcelPage} "Page of parcels"
// @Failure      400 {object} dto.ErrorResponse "Bad request - unknown status"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/me/parcels [get]
func (h *RecipientHandler) ListMine(c *gin.Context) {
	builder := NewResponseBuilder(c)
	claims := middleware.GetClaims(c)

	var status model.ParcelStatus
	if s := c.Query("status"); s != "" {
		status = model.ParcelStatus(s)
		if !status.Valid() {
			builder.ErrorWithMessage(http.StatusBadRequest, "status: unknown parcel status", nil)
			return
		}
	}

	page, err := h.recipients.ListParcels(c.Request.Context(), claims.UserID.Hex(),
		status, intQuery(c, "page", 1), intQuery(c, "limit", 20))
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	builder.SuccessOK(page)
}

// GetMine handles GET /api/me/parcels/:id requests.
//
// @Summary      Get one of my parcels
// @Description  Returns a single parcel belonging to the authenticated recipient
// @Tags         Recipient
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Parcel ID"
// @Success      200 {object} dto.SuccessResponse "Parcel details"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - not the parcel's owner"
// @Failure      404 {object} dto.ErrorResponse "Parcel not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/me/parcels/{id} [get]
func (h *RecipientHandler) GetMine(c *gin.Context) {
	builder := NewResponseBuilder(c)
	claims := middleware.GetClaims(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyParcelNotFound, err)
		return
	}

	parcel, err := h.recipients.GetParcel(c.Request.Context(), claims.UserID.Hex(), id)
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	builder.SuccessOK(parcel)
}

// Cancel handles DELETE /api/me/parcels/:id requests.
//
// @Summary      Cancel a pre-registration
// @Description  Cancels the recipient's own pre-registration while the parcel has not yet arrived
// @Tags         Recipient
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Parcel ID"
// @Success      200 {object} dto.SuccessResponse "Pre-registration cancelled"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - not the parcel's owner"
// @Failure      404 {object} dto.ErrorResponse "Parcel not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - parcel already arrived"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/me/parcels/{id} [delete]
func (h *RecipientHandler) Cancel(c *gin.Context) {
	builder := NewResponseBuilder(c)
	claims := middleware.GetClaims(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyParcelNotFound, err)
		return
	}

	parcel, err := h.recipients.Cancel(c.Request.Context(), claims.UserID.Hex(), id)
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	auditLog(c, "cancel_preregistration", "Pre-registration cancelled", map[string]interface{}{
		"tracking_id": parcel.TrackingID,
		"parcel_id":   parcel.ID.Hex(),
	})
	builder.SuccessOK(parcel)
}
