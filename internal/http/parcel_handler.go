// Package http provides HTTP handlers for the parcel service.
package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/i18n"
	"github.com/parceltrack/parcel-service/internal/metrics"
	"github.com/parceltrack/parcel-service/internal/middleware"
	"github.com/parceltrack/parcel-service/internal/repository"
	"github.com/parceltrack/parcel-service/internal/service"
)

// ParcelHandler provides HTTP handlers for operator parcel operations.
// Every operation is scoped to the hub in the operator's JWT claims.
type ParcelHandler struct {
	checkIn  service.CheckInService
	checkOut service.CheckOutService
	operator service.OperatorService
}

// NewParcelHandler creates a new parcel handler.
func NewParcelHandler(
	checkIn service.CheckInService,
	checkOut service.CheckOutService,
	operator service.OperatorService,
) *ParcelHandler {
	return &ParcelHandler{
		checkIn:  checkIn,
		checkOut: checkOut,
		operator: operator,
	}
}

// CheckIn handles POST /api/parcels/check-in requests.
//
// @Summary      Check in an arrived parcel
// @Description  Records an arrived parcel: matches it against pre-registrations, computes the storage fee from the weight, and assigns a storage slot
// @Tags         Parcels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckInRequest true "Check-in details"
// @Success      201 {object} dto.SuccessResponse{data=dto.CheckInResult} "Parcel checked in"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Conflict - invalid status or storage full"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/parcels/check-in [post]
func (h *ParcelHandler) CheckIn(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CheckInRequest](c)
	if err != nil {
		respondValidationError(builder, err)
		return
	}

	claims := middleware.GetClaims(c)
	result, err := h.checkIn.CheckIn(c.Request.Context(), claims.HubID, claims.UserID.Hex(), *req)
	if err != nil {
		metrics.RecordCheckIn("error", false, "", false)
		respondServiceError(c, builder, err)
		return
	}

	metrics.RecordCheckIn("ok", result.Matched, result.StorageZone, result.SyntheticSlot)
	auditLog(c, "check_in", "Parcel checked in", map[string]interface{}{
		"tracking_id":      result.Parcel.TrackingID,
		"parcel_id":        result.Parcel.ID.Hex(),
		"matched":          result.Matched,
		"storage_location": result.StorageLocation,
		"fee_amount":       result.FeeAmount,
		"synthetic_slot":   result.SyntheticSlot,
	})

	messageKey := i18n.SuccessKeyParcelMatched
	if !result.Matched {
		messageKey = i18n.SuccessKeyParcelUnmatched
	}
	builder.SuccessWithMessage(http.StatusCreated, result, messageKey)
}

// CheckOut handles POST /api/parcels/check-out requests.
//
// @Summary      Check out a parcel
// @Description  Collects payment and releases a stored parcel to its recipient, freeing the storage slot
// @Tags         Parcels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckOutRequest true "Check-out details"
// @Success      200 {object} dto.SuccessResponse{data=dto.CheckOutResult} "Parcel released"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input or insufficient payment"
// @Failure      404 {object} dto.ErrorResponse "Parcel not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - parcel not collectible"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/parcels/check-out [post]
func (h *ParcelHandler) CheckOut(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CheckOutRequest](c)
	if err != nil {
		respondValidationError(builder, err)
		return
	}

	claims := middleware.GetClaims(c)
	result, err := h.checkOut.CheckOut(c.Request.Context(), claims.HubID, claims.UserID.Hex(), *req)
	if err != nil {
		metrics.RecordCheckOut("error", string(req.PaymentMethod), 0)
		respondServiceError(c, builder, err)
		return
	}

	metrics.RecordCheckOut("ok", string(req.PaymentMethod), result.Parcel.FeeAmount)
	auditLog(c, "check_out", "Parcel checked out", map[string]interface{}{
		"tracking_id":    result.Parcel.TrackingID,
		"parcel_id":      result.Parcel.ID.Hex(),
		"payment_method": req.PaymentMethod,
		"payment_amount": result.Payment.Amount,
		"change":         result.Change,
	})

	builder.SuccessWithMessage(http.StatusOK, result, i18n.SuccessKeyParcelCollected)
}

// Search handles GET /api/parcels/search requests.
//
// @Summary      Search parcels
// @Description  Finds parcels at the operator's hub by tracking ID, recipient name, phone, or email
// @Tags         Parcels
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Search query"
// @Success      200 {object} dto.SuccessResponse "Matching parcels"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing query"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/parcels/search [get]
func (h *ParcelHandler) Search(c *gin.Context) {
	builder := NewResponseBuilder(c)

	query := c.Query("q")
	if query == "" {
		builder.ErrorWithMessage(http.StatusBadRequest, "q: search query is required", nil)
		return
	}

	claims := middleware.GetClaims(c)
	parcels, err := h.operator.Search(c.Request.Context(), claims.HubID, query)
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	builder.SuccessOK(parcels)
}

// List handles GET /api/parcels requests.
//
// @Summary      List parcels
// @Description  Returns a filtered, paginated list of the hub's parcels
// @Tags         Parcels
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status"
// @Param        date_from query string false "Filter by creation date (RFC 3339)"
// @Param        date_to query string false "Filter by creation date (RFC 3339)"
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(20)
// @Success      200 {object} dto.SuccessResponse{data=dto.ParcelPage} "Page of parcels"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid filter"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/parcels [get]
func (h *ParcelHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)
	claims := middleware.GetClaims(c)

	filter := repository.ParcelFilter{
		HubID: claims.HubID,
		Page:  intQuery(c, "page", 1),
		Limit: intQuery(c, "limit", 20),
	}

	if status := c.Query("status"); status != "" {
		parcelStatus := model.ParcelStatus(status)
		if !parcelStatus.Valid() {
			builder.ErrorWithMessage(http.StatusBadRequest, "status: unknown parcel status", nil)
			return
		}
		filter.Status = parcelStatus
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			builder.ErrorWithMessage(http.StatusBadRequest, "date_from: must be RFC 3339", err)
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			builder.ErrorWithMessage(http.StatusBadRequest, "date_to: must be RFC 3339", err)
			return
		}
		filter.DateTo = &t
	}

	page, err := h.operator.ListParcels(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	builder.SuccessOK(page)
}

// Get handles GET /api/parcels/:id requests.
//
// @Summary      Get a parcel
// @Description  Returns a single parcel at the operator's hub
// @Tags         Parcels
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Parcel ID"
// @Success      200 {object} dto.SuccessResponse "Parcel details"
// @Failure      404 {object} dto.ErrorResponse "Parcel not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/parcels/{id} [get]
func (h *ParcelHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)
	claims := middleware.GetClaims(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyParcelNotFound, err)
		return
	}

	parcel, err := h.operator.GetParcel(c.Request.Context(), claims.HubID, id)
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	builder.SuccessOK(parcel)
}

// Dashboard handles GET /api/dashboard requests.
//
// @Summary      Operator dashboard
// @Description  Returns today's intake and release counts, storage occupancy, and parcel counts by status
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SuccessResponse{data=dto.DashboardStats} "Dashboard statistics"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/dashboard [get]
func (h *ParcelHandler) Dashboard(c *gin.Context) {
	builder := NewResponseBuilder(c)
	claims := middleware.GetClaims(c)

	stats, err := h.operator.Dashboard(c.Request.Context(), claims.HubID)
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	metrics.StorageOccupancy.WithLabelValues(claims.HubID).Set(float64(stats.Storage.Occupied))
	builder.SuccessOK(stats)
}

// Inventory handles GET /api/storage/inventory requests.
//
// @Summary      Storage inventory
// @Description  Returns the hub's live parcels grouped by storage zone
// @Tags         Storage
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SuccessResponse "Zone inventory"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/storage/inventory [get]
func (h *ParcelHandler) Inventory(c *gin.Context) {
	builder := NewResponseBuilder(c)
	claims := middleware.GetClaims(c)

	inventory, err := h.operator.Inventory(c.Request.Context(), claims.HubID)
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	builder.SuccessOK(inventory)
}

// StorageSummary handles GET /api/storage/summary requests.
//
// @Summary      Storage summary
// @Description  Returns provisioned capacity, occupancy, and available slots for the hub
// @Tags         Storage
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SuccessResponse{data=dto.StorageSummary} "Storage summary"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/storage/summary [get]
func (h *ParcelHandler) StorageSummary(c *gin.Context) {
	builder := NewResponseBuilder(c)
	claims := middleware.GetClaims(c)

	summary, err := h.operator.StorageSummary(c.Request.Context(), claims.HubID)
	if err != nil {
		respondServiceError(c, builder, err)
		return
	}

	builder.SuccessOK(summary)
}

// intQuery parses an integer query parameter with a default.
func intQuery(c *gin.Context, name string, defaultValue int) int {
	if v := c.Query(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}
