package service

import (
	"context"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/repository"
)

// TrackingService serves the public, unauthenticated tracking lookup.
type TrackingService interface {
	Track(ctx context.Context, trackingID string) (*dto.PublicTracking, error)
}

// TrackingServiceImpl implements TrackingService. The projection carries
// no recipient details; the storage slot and fee are shown only while the
// parcel is ready for pickup, which is what the recipient needs at the
// counter.
type TrackingServiceImpl struct {
	parcelRepo repository.ParcelRepositoryInterface
}

// NewTrackingService creates a new tracking service.
func NewTrackingService(parcelRepo repository.ParcelRepositoryInterface) *TrackingServiceImpl {
	return &TrackingServiceImpl{parcelRepo: parcelRepo}
}

// Track looks up a tracking ID across all hubs.
func (s *TrackingServiceImpl) Track(ctx context.Context, trackingID string) (*dto.PublicTracking, error) {
	parcel, err := s.parcelRepo.FindByTrackingID(ctx, "", trackingID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}

	tracking := &dto.PublicTracking{
		TrackingID:  parcel.TrackingID,
		Status:      parcel.Status,
		CreatedAt:   parcel.CreatedAt,
		CheckedInAt: parcel.CheckedInAt,
	}
	if parcel.Status == model.StatusReadyForPickup {
		tracking.StorageLocation = parcel.StorageLocation
		tracking.FeeAmount = parcel.FeeAmount
	}
	return tracking, nil
}
