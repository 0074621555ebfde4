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

// RecipientService handles recipient self-service operations.
type RecipientService interface {
	// PreRegister records an expected parcel for the recipient at their hub.
	PreRegister(ctx context.Context, user *model.User, req dto.PreRegisterRequest) (*model.Parcel, error)
	// ListParcels returns the recipient's own parcels, newest first,
	// optionally filtered by status.
	ListParcels(ctx context.Context, recipientID string, status model.ParcelStatus, page, limit int) (*dto.ParcelPage, error)
	// GetParcel returns one of the recipient's own parcels.
	GetParcel(ctx context.Context, recipientID string, parcelID primitive.ObjectID) (*model.Parcel, error)
	// Cancel cancels the recipient's own pre-registration while it is
	// still EXPECTED.
	Cancel(ctx context.Context, recipientID string, parcelID primitive.ObjectID) (*model.Parcel, error)
}

// RecipientServiceImpl implements RecipientService.
type RecipientServiceImpl struct {
	parcelRepo repository.ParcelRepositoryInterface
}

// NewRecipientService creates a new recipient service.
func NewRecipientService(parcelRepo repository.ParcelRepositoryInterface) *RecipientServiceImpl {
	return &RecipientServiceImpl{parcelRepo: parcelRepo}
}

// PreRegister records an expected parcel.
func (s *RecipientServiceImpl) PreRegister(ctx context.Context, user *model.User, req dto.PreRegisterRequest) (*model.Parcel, error) {
	existing, err := s.parcelRepo.FindByTrackingID(ctx, user.HubID, req.TrackingID)
	if err != nil {
		return nil, err
	}
	// A tracking ID can be re-registered only after its previous parcel
	// reached a terminal state.
	if existing != nil && !existing.Status.IsTerminal() {
		return nil, ErrDuplicateTracking
	}

	parcel := &model.Parcel{
		TrackingID:     req.TrackingID,
		HubID:          user.HubID,
		Status:         model.StatusExpected,
		RecipientID:    user.ID.Hex(),
		RecipientName:  user.FullName,
		RecipientPhone: user.Phone,
		RecipientEmail: user.Email,
		PaymentStatus:  model.PaymentPending,
	}
	if err := s.parcelRepo.Insert(ctx, parcel); err != nil {
		return nil, err
	}
	return parcel, nil
}

// ListParcels returns the recipient's own parcels.
func (s *RecipientServiceImpl) ListParcels(ctx context.Context, recipientID string, status model.ParcelStatus, page, limit int) (*dto.ParcelPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	parcels, total, err := s.parcelRepo.List(ctx, repository.ParcelFilter{
		RecipientID: recipientID,
		Status:      status,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ParcelPage{
		Parcels:    parcels,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages(total, limit),
	}, nil
}

// GetParcel returns a parcel if it belongs to the recipient.
func (s *RecipientServiceImpl) GetParcel(ctx context.Context, recipientID string, parcelID primitive.ObjectID) (*model.Parcel, error) {
	parcel, err := s.parcelRepo.FindByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}
	if parcel.RecipientID != recipientID {
		return nil, ErrNotParcelOwner
	}
	return parcel, nil
}

// Cancel cancels a pre-registration.
func (s *RecipientServiceImpl) Cancel(ctx context.Context, recipientID string, parcelID primitive.ObjectID) (*model.Parcel, error) {
	parcel, err := s.parcelRepo.FindByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}
	if parcel.RecipientID != recipientID {
		return nil, ErrNotParcelOwner
	}
	if parcel.Status != model.StatusExpected {
		return nil, &InvalidStatusError{Current: parcel.Status, Target: model.StatusCancelled}
	}

	cancelled, err := s.parcelRepo.CancelExpected(ctx, parcelID, time.Now())
	if errors.Is(err, repository.ErrStaleStatus) {
		current, ferr := s.parcelRepo.FindByID(ctx, parcelID)
		if ferr == nil && current != nil {
			return nil, &InvalidStatusError{Current: current.Status, Target: model.StatusCancelled}
		}
		return nil, ErrParcelNotFound
	}
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
