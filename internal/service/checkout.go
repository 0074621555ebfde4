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

// CheckOutService handles payment collection and parcel release.
type CheckOutService interface {
	CheckOut(ctx context.Context, hubID, operatorID string, req dto.CheckOutRequest) (*dto.CheckOutResult, error)
}

// CheckOutServiceImpl implements CheckOutService. The release itself is a
// single conditional update on the parcel's live status, so two counters
// handing out the same parcel cannot both succeed.
type CheckOutServiceImpl struct {
	parcelRepo repository.ParcelRepositoryInterface
}

// NewCheckOutService creates a new check-out service.
func NewCheckOutService(parcelRepo repository.ParcelRepositoryInterface) *CheckOutServiceImpl {
	return &CheckOutServiceImpl{parcelRepo: parcelRepo}
}

// CheckOut validates payment and releases the parcel to its recipient.
func (s *CheckOutServiceImpl) CheckOut(ctx context.Context, hubID, operatorID string, req dto.CheckOutRequest) (*dto.CheckOutResult, error) {
	parcel, err := s.findParcel(ctx, hubID, req)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}
	if parcel.HubID != hubID {
		return nil, ErrHubMismatch
	}
	if !parcel.Status.IsLive() {
		return nil, &InvalidStatusError{Current: parcel.Status, Target: model.StatusCollected}
	}

	// Payment is validated before the transition so a shortfall never
	// leaves a half-collected parcel.
	if roundMoney(req.PaymentAmount) < roundMoney(parcel.FeeAmount) {
		return nil, &InsufficientPaymentError{
			Required: parcel.FeeAmount,
			Received: req.PaymentAmount,
		}
	}

	now := time.Now()
	released, err := s.parcelRepo.Collect(ctx, parcel.ID, repository.CollectFields{
		OperatorID:     operatorID,
		CheckedOutAt:   now,
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		Notes:          req.Notes,
	})
	if errors.Is(err, repository.ErrStaleStatus) {
		current, ferr := s.parcelRepo.FindByID(ctx, parcel.ID)
		if ferr == nil && current != nil {
			return nil, &InvalidStatusError{Current: current.Status, Target: model.StatusCollected}
		}
		return nil, ErrParcelNotFound
	}
	if err != nil {
		return nil, err
	}

	return &dto.CheckOutResult{
		Parcel: released,
		Payment: dto.PaymentInfo{
			Method:    req.PaymentMethod,
			Amount:    roundMoney(req.PaymentAmount),
			Timestamp: now,
		},
		Change: roundMoney(req.PaymentAmount - released.FeeAmount),
	}, nil
}

func (s *CheckOutServiceImpl) findParcel(ctx context.Context, hubID string, req dto.CheckOutRequest) (*model.Parcel, error) {
	if req.ParcelID != "" {
		id, err := primitive.ObjectIDFromHex(req.ParcelID)
		if err != nil {
			return nil, ErrParcelNotFound
		}
		return s.parcelRepo.FindByID(ctx, id)
	}
	return s.parcelRepo.FindByTrackingID(ctx, hubID, req.TrackingID)
}
