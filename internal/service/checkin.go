package service

import (
	"context"
	"errors"
	"time"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/metrics"
	"github.com/parceltrack/parcel-service/internal/repository"
)

// Placeholder recipient recorded on parcels that arrive without a
// matching pre-registration. Real details are captured at check-out.
const (
	WalkInRecipientName  = "Walk-in Guest"
	WalkInRecipientPhone = "000000000"
)

// CheckInService handles parcel intake at the counter.
type CheckInService interface {
	CheckIn(ctx context.Context, hubID, operatorID string, req dto.CheckInRequest) (*dto.CheckInResult, error)
}

// CheckInServiceImpl implements CheckInService. It matches the scanned
// tracking ID against pre-registrations, computes zone and fee from the
// measured weight, and claims a storage slot.
//
// Slot claiming is optimistic: the allocator proposes the lowest free
// code and the write either lands or is rejected by the unique index on
// live (hub, slot) pairs. A rejected claim excludes the contested code
// and retries, bounded by maxAllocationAttempts.
type CheckInServiceImpl struct {
	parcelRepo repository.ParcelRepositoryInterface
	allocator  StorageAllocator
	fees       FeeCalculator
	pricing    PricingService
}

// NewCheckInService creates a new check-in service.
func NewCheckInService(
	parcelRepo repository.ParcelRepositoryInterface,
	allocator StorageAllocator,
	fees FeeCalculator,
	pricing PricingService,
) *CheckInServiceImpl {
	return &CheckInServiceImpl{
		parcelRepo: parcelRepo,
		allocator:  allocator,
		fees:       fees,
		pricing:    pricing,
	}
}

// CheckIn processes an arrived parcel.
func (s *CheckInServiceImpl) CheckIn(ctx context.Context, hubID, operatorID string, req dto.CheckInRequest) (*dto.CheckInResult, error) {
	pricing := s.pricing.ActivePricing(ctx)
	zone := pricing.ZoneForWeight(req.WeightKg)
	fee := s.fees.ComputeFeeWithPricing(req.WeightKg, pricing)

	existing, err := s.parcelRepo.FindByTrackingID(ctx, hubID, req.TrackingID)
	if err != nil {
		return nil, err
	}

	matched := existing != nil && existing.Status == model.StatusExpected
	if existing != nil && !matched {
		// Live parcels already occupy a slot; terminal ones are rejected
		// rather than silently re-opened as a fresh arrival. A terminal
		// tracking ID becomes usable again only through a new
		// pre-registration.
		return nil, &InvalidStatusError{Current: existing.Status, Target: model.StatusReadyForPickup}
	}

	now := time.Now()
	exclude := make(map[string]struct{})

	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		code, synthetic, err := s.allocator.Allocate(ctx, hubID, zone, exclude)
		if err != nil {
			return nil, err
		}

		var parcel *model.Parcel
		if matched {
			parcel, err = s.parcelRepo.CheckInExpected(ctx, existing.ID, repository.CheckInFields{
				WeightKg:        req.WeightKg,
				StorageZone:     zone,
				StorageLocation: code,
				FeeAmount:       fee,
				IsDamaged:       req.IsDamaged,
				Notes:           req.Notes,
				OperatorID:      operatorID,
				CheckedInAt:     now,
			})
		} else {
			parcel = &model.Parcel{
				TrackingID:      req.TrackingID,
				HubID:           hubID,
				Status:          model.StatusArrivedUnclaimed,
				RecipientName:   WalkInRecipientName,
				RecipientPhone:  WalkInRecipientPhone,
				WeightKg:        req.WeightKg,
				StorageZone:     zone,
				StorageLocation: code,
				FeeAmount:       fee,
				PaymentStatus:   model.PaymentPending,
				IsDamaged:       req.IsDamaged,
				Notes:           req.Notes,
				CheckedInByID:   operatorID,
				CheckedInAt:     &now,
			}
			err = s.parcelRepo.Insert(ctx, parcel)
		}

		if errors.Is(err, repository.ErrSlotTaken) {
			metrics.SlotAllocationRetries.Inc()
			exclude[code] = struct{}{}
			continue
		}
		if errors.Is(err, repository.ErrStaleStatus) {
			// The pre-registration moved under us, e.g. a concurrent
			// cancel or a double scan at another counter.
			current, ferr := s.parcelRepo.FindByID(ctx, existing.ID)
			if ferr == nil && current != nil {
				return nil, &InvalidStatusError{Current: current.Status, Target: model.StatusReadyForPickup}
			}
			return nil, ErrParcelNotFound
		}
		if err != nil {
			return nil, err
		}

		return &dto.CheckInResult{
			Parcel:          parcel,
			Matched:         matched,
			StorageLocation: parcel.StorageLocation,
			StorageZone:     parcel.StorageZone,
			FeeAmount:       parcel.FeeAmount,
			SyntheticSlot:   synthetic,
		}, nil
	}

	// Every attempt lost its slot race. With the zone this contended the
	// honest answer is the same as exhaustion.
	return nil, ErrStorageFull
}
