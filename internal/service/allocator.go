package service

import (
	"context"

	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/repository"
)

// maxAllocationAttempts bounds the retry loop around slot claiming. Each
// attempt excludes the slots that lost a race in earlier attempts.
const maxAllocationAttempts = 3

// StorageAllocator picks a free storage slot for an arriving parcel.
type StorageAllocator interface {
	// Allocate returns the first free slot code in the zone, skipping
	// codes in exclude. The synthetic flag is set when the hub has no
	// provisioned slots at all and a best-effort code was generated.
	// Returns ErrStorageFull when every provisioned slot is occupied.
	Allocate(ctx context.Context, hubID, zone string, exclude map[string]struct{}) (code string, synthetic bool, err error)
}

// StorageAllocatorService implements StorageAllocator. Slots are assigned
// deterministically: the lowest free code in the zone wins, so concurrent
// check-ins contend on the same code and the loser retries with it
// excluded.
type StorageAllocatorService struct {
	slotRepo   repository.StorageLocationRepositoryInterface
	parcelRepo repository.ParcelRepositoryInterface
}

// NewStorageAllocatorService creates a new storage allocator.
func NewStorageAllocatorService(
	slotRepo repository.StorageLocationRepositoryInterface,
	parcelRepo repository.ParcelRepositoryInterface,
) *StorageAllocatorService {
	return &StorageAllocatorService{
		slotRepo:   slotRepo,
		parcelRepo: parcelRepo,
	}
}

// Allocate picks the first free slot in the zone.
func (s *StorageAllocatorService) Allocate(ctx context.Context, hubID, zone string, exclude map[string]struct{}) (string, bool, error) {
	codes, err := s.slotRepo.ListCodes(ctx, hubID, zone)
	if err != nil {
		return "", false, err
	}

	occupied, err := s.occupiedSet(ctx, hubID, zone)
	if err != nil {
		return "", false, err
	}

	if len(codes) == 0 {
		// A zone with no slots on a hub that has slots elsewhere is full
		// by definition. Only a hub with no provisioning at all gets a
		// synthetic code, so a configuration gap never blocks intake.
		total, err := s.slotRepo.CountForHub(ctx, hubID)
		if err != nil {
			return "", false, err
		}
		if total > 0 {
			return "", false, ErrStorageFull
		}
		code, ok := syntheticCode(zone, occupied, exclude)
		if !ok {
			return "", false, ErrStorageFull
		}
		return code, true, nil
	}

	for _, code := range codes {
		if _, taken := occupied[code]; taken {
			continue
		}
		if _, skip := exclude[code]; skip {
			continue
		}
		return code, false, nil
	}
	return "", false, ErrStorageFull
}

func (s *StorageAllocatorService) occupiedSet(ctx context.Context, hubID, zone string) (map[string]struct{}, error) {
	codes, err := s.parcelRepo.OccupiedCodes(ctx, hubID, zone)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set, nil
}

// syntheticCode returns the lowest positional code not already occupied or
// excluded. Positions stop at MaxSlotsPerZone so codes stay two digits
// wide and lexicographic order stays numeric.
func syntheticCode(zone string, occupied, exclude map[string]struct{}) (string, bool) {
	for position := 1; position <= model.MaxSlotsPerZone; position++ {
		code := model.SlotCode(zone, position)
		if _, taken := occupied[code]; taken {
			continue
		}
		if _, skip := exclude[code]; skip {
			continue
		}
		return code, true
	}
	return "", false
}
