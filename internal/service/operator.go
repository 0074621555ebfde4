package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/repository"
)

// searchResultLimit caps operator search results.
const searchResultLimit = 20

// OperatorService provides hub-scoped queries and administrative
// overrides for the operator console.
type OperatorService interface {
	Search(ctx context.Context, hubID, query string) ([]model.Parcel, error)
	GetParcel(ctx context.Context, hubID string, parcelID primitive.ObjectID) (*model.Parcel, error)
	ListParcels(ctx context.Context, f repository.ParcelFilter) (*dto.ParcelPage, error)
	Dashboard(ctx context.Context, hubID string) (*dto.DashboardStats, error)
	Inventory(ctx context.Context, hubID string) ([]dto.ZoneInventory, error)
	StorageSummary(ctx context.Context, hubID string) (*dto.StorageSummary, error)
	// OverrideStatus force-moves a live parcel to RETURNED or CANCELLED.
	// Admin only; routing enforces the role.
	OverrideStatus(ctx context.Context, hubID string, parcelID primitive.ObjectID, req dto.OverrideStatusRequest) (*model.Parcel, error)
}

// OperatorServiceImpl implements OperatorService.
type OperatorServiceImpl struct {
	parcelRepo repository.ParcelRepositoryInterface
	slotRepo   repository.StorageLocationRepositoryInterface
}

// NewOperatorService creates a new operator service.
func NewOperatorService(
	parcelRepo repository.ParcelRepositoryInterface,
	slotRepo repository.StorageLocationRepositoryInterface,
) *OperatorServiceImpl {
	return &OperatorServiceImpl{
		parcelRepo: parcelRepo,
		slotRepo:   slotRepo,
	}
}

// Search finds parcels by tracking ID or recipient details.
func (s *OperatorServiceImpl) Search(ctx context.Context, hubID, query string) ([]model.Parcel, error) {
	return s.parcelRepo.Search(ctx, hubID, query, searchResultLimit)
}

// GetParcel returns a single parcel, scoped to the caller's hub.
func (s *OperatorServiceImpl) GetParcel(ctx context.Context, hubID string, parcelID primitive.ObjectID) (*model.Parcel, error) {
	parcel, err := s.parcelRepo.FindByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	if parcel == nil || parcel.HubID != hubID {
		return nil, ErrParcelNotFound
	}
	return parcel, nil
}

// ListParcels returns a filtered page of the hub's parcels.
func (s *OperatorServiceImpl) ListParcels(ctx context.Context, f repository.ParcelFilter) (*dto.ParcelPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	parcels, total, err := s.parcelRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &dto.ParcelPage{
		Parcels:    parcels,
		Page:       f.Page,
		Limit:      f.Limit,
		Total:      total,
		TotalPages: totalPages(total, f.Limit),
	}, nil
}

// Dashboard aggregates today's activity and current storage state.
func (s *OperatorServiceImpl) Dashboard(ctx context.Context, hubID string) (*dto.DashboardStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	checkedIn, err := s.parcelRepo.CountCheckedInBetween(ctx, hubID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	checkedOut, err := s.parcelRepo.CountCheckedOutBetween(ctx, hubID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.parcelRepo.CountByStatus(ctx, hubID)
	if err != nil {
		return nil, err
	}
	storage, err := s.StorageSummary(ctx, hubID)
	if err != nil {
		return nil, err
	}

	stats := &dto.DashboardStats{
		Storage: *storage,
		Status:  byStatus,
	}
	stats.Today.CheckedIn = checkedIn
	stats.Today.CheckedOut = checkedOut
	stats.Today.PendingPickup = byStatus[model.StatusReadyForPickup] + byStatus[model.StatusArrivedUnclaimed]
	return stats, nil
}

// Inventory returns the hub's live parcels grouped by zone, ordered by
// slot code within each zone.
func (s *OperatorServiceImpl) Inventory(ctx context.Context, hubID string) ([]dto.ZoneInventory, error) {
	live, err := s.parcelRepo.ListLive(ctx, hubID)
	if err != nil {
		return nil, err
	}

	zones := []string{model.ZoneA, model.ZoneB, model.ZoneC}
	inventory := make([]dto.ZoneInventory, 0, len(zones))
	for _, zone := range zones {
		zi := dto.ZoneInventory{Zone: zone, Parcels: []model.Parcel{}}
		for _, p := range live {
			if p.StorageZone == zone {
				zi.Parcels = append(zi.Parcels, p)
			}
		}
		inventory = append(inventory, zi)
	}
	return inventory, nil
}

// StorageSummary reports provisioned capacity against live occupancy.
func (s *OperatorServiceImpl) StorageSummary(ctx context.Context, hubID string) (*dto.StorageSummary, error) {
	capacity, err := s.slotRepo.CountForHub(ctx, hubID)
	if err != nil {
		return nil, err
	}
	occupied, err := s.parcelRepo.CountLive(ctx, hubID)
	if err != nil {
		return nil, err
	}

	available := capacity - occupied
	if available < 0 {
		// Synthetic slots can push occupancy past provisioned capacity.
		available = 0
	}
	return &dto.StorageSummary{
		TotalCapacity: capacity,
		Occupied:      occupied,
		Available:     available,
	}, nil
}

// OverrideStatus force-transitions a live parcel.
func (s *OperatorServiceImpl) OverrideStatus(ctx context.Context, hubID string, parcelID primitive.ObjectID, req dto.OverrideStatusRequest) (*model.Parcel, error) {
	parcel, err := s.parcelRepo.FindByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}
	if parcel.HubID != hubID {
		return nil, ErrHubMismatch
	}
	if !model.CanTransition(parcel.Status, req.Status) {
		return nil, &InvalidStatusError{Current: parcel.Status, Target: req.Status}
	}

	var updated *model.Parcel
	if parcel.Status == model.StatusExpected {
		// EXPECTED parcels hold no slot; only cancellation applies.
		updated, err = s.parcelRepo.CancelExpected(ctx, parcelID, time.Now())
	} else {
		updated, err = s.parcelRepo.OverrideStatus(ctx, parcelID, req.Status, req.Reason, time.Now())
	}
	if errors.Is(err, repository.ErrStaleStatus) {
		current, ferr := s.parcelRepo.FindByID(ctx, parcelID)
		if ferr == nil && current != nil {
			return nil, &InvalidStatusError{Current: current.Status, Target: req.Status}
		}
		return nil, ErrParcelNotFound
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}
