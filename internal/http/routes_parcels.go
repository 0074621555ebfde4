package http

import (
	"github.com/gin-gonic/gin"

	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/middleware"
)

// ParcelRoutes registers the parcel-domain routes: the public tracking
// lookup, recipient self-service, the operator counter, and the admin
// surface.
type ParcelRoutes struct {
	parcels    *ParcelHandler
	recipients *RecipientHandler
	tracking   *TrackingHandler
	admin      *AdminHandler
}

// NewParcelRoutes creates a new ParcelRoutes instance.
func NewParcelRoutes(
	parcels *ParcelHandler,
	recipients *RecipientHandler,
	tracking *TrackingHandler,
	admin *AdminHandler,
) *ParcelRoutes {
	return &ParcelRoutes{
		parcels:    parcels,
		recipients: recipients,
		tracking:   tracking,
		admin:      admin,
	}
}

// RegisterPublicRoutes registers routes that require no authentication.
func (r *ParcelRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/track/:trackingId", r.tracking.Track)
}

// RegisterProtectedRoutes registers routes behind JWT authentication.
// Role checks are layered per group: recipients reach only their own
// parcels, operators run the counter, admins get overrides and settings.
func (r *ParcelRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	// Recipient self-service. Operators and admins may act on their own
	// account too, so any authenticated role passes.
	me := rg.Group("/me")
	{
		me.POST("/parcels", r.recipients.PreRegister)
		me.GET("/parcels", r.recipients.ListMine)
		me.GET("/parcels/:id", r.recipients.GetMine)
		me.DELETE("/parcels/:id", r.recipients.Cancel)
	}

	// Operator counter, hub-scoped via JWT claims.
	operator := rg.Group("", middleware.RequireRole(model.RoleOperator, model.RoleAdmin))
	{
		operator.POST("/parcels/check-in", r.parcels.CheckIn)
		operator.POST("/parcels/check-out", r.parcels.CheckOut)
		operator.GET("/parcels/search", r.parcels.Search)
		operator.GET("/parcels", r.parcels.List)
		operator.GET("/parcels/:id", r.parcels.Get)
		operator.GET("/dashboard", r.parcels.Dashboard)
		operator.GET("/storage/inventory", r.parcels.Inventory)
		operator.GET("/storage/summary", r.parcels.StorageSummary)
	}

	// Admin surface.
	admin := rg.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	{
		admin.POST("/parcels/:id/override", r.admin.OverrideStatus)
		admin.GET("/pricing", r.admin.GetPricing)
		admin.PUT("/pricing", r.admin.UpdatePricing)
		admin.GET("/pricing/history", r.admin.PricingHistory)
		admin.GET("/logs", r.admin.QueryLogs)
	}
}
