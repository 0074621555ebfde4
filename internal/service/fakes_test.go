package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/repository"
)

// fakeParcelRepo is an in-memory parcel repository reproducing the
// guarded-transition and slot-uniqueness semantics of the MongoDB
// implementation.
type fakeParcelRepo struct {
	mu      sync.Mutex
	parcels map[primitive.ObjectID]*model.Parcel

	// failCheckInWith, when non-nil, is returned once by the next
	// CheckInExpected or Insert call that claims a slot.
	failCheckInWith error
}

func newFakeParcelRepo() *fakeParcelRepo {
	return &fakeParcelRepo{parcels: make(map[primitive.ObjectID]*model.Parcel)}
}

func (r *fakeParcelRepo) add(p *model.Parcel) *model.Parcel {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	clone := *p
	r.parcels[p.ID] = &clone
	return p
}

func (r *fakeParcelRepo) slotHeldLocked(hubID, code string, except primitive.ObjectID) bool {
	for id, p := range r.parcels {
		if id == except {
			continue
		}
		if p.HubID == hubID && p.StorageLocation == code && p.Status.IsLive() {
			return true
		}
	}
	return false
}

func (r *fakeParcelRepo) Insert(_ context.Context, p *model.Parcel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCheckInWith != nil && p.Status.IsLive() {
		err := r.failCheckInWith
		r.failCheckInWith = nil
		return err
	}
	if p.Status.IsLive() && r.slotHeldLocked(p.HubID, p.StorageLocation, primitive.NilObjectID) {
		return repository.ErrSlotTaken
	}
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	clone := *p
	r.parcels[p.ID] = &clone
	return nil
}

func (r *fakeParcelRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.parcels[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeParcelRepo) FindByTrackingID(_ context.Context, hubID, trackingID string) (*model.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var newest *model.Parcel
	for _, p := range r.parcels {
		if p.TrackingID != trackingID {
			continue
		}
		if hubID != "" && p.HubID != hubID {
			continue
		}
		if newest == nil || p.CreatedAt.After(newest.CreatedAt) {
			newest = p
		}
	}
	if newest == nil {
		return nil, nil
	}
	clone := *newest
	return &clone, nil
}

func (r *fakeParcelRepo) CheckInExpected(_ context.Context, id primitive.ObjectID, f repository.CheckInFields) (*model.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCheckInWith != nil {
		err := r.failCheckInWith
		r.failCheckInWith = nil
		return nil, err
	}
	p, ok := r.parcels[id]
	if !ok || p.Status != model.StatusExpected {
		return nil, repository.ErrStaleStatus
	}
	if r.slotHeldLocked(p.HubID, f.StorageLocation, id) {
		return nil, repository.ErrSlotTaken
	}
	p.Status = model.StatusReadyForPickup
	p.WeightKg = f.WeightKg
	p.StorageZone = f.StorageZone
	p.StorageLocation = f.StorageLocation
	p.FeeAmount = f.FeeAmount
	p.IsDamaged = f.IsDamaged
	if f.Notes != "" {
		p.Notes = f.Notes
	}
	p.CheckedInByID = f.OperatorID
	checkedIn := f.CheckedInAt
	p.CheckedInAt = &checkedIn
	p.UpdatedAt = time.Now()
	clone := *p
	return &clone, nil
}

func (r *fakeParcelRepo) Collect(_ context.Context, id primitive.ObjectID, f repository.CollectFields) (*model.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parcels[id]
	if !ok || !p.Status.IsLive() {
		return nil, repository.ErrStaleStatus
	}
	p.Status = model.StatusCollected
	p.PaymentStatus = model.PaymentPaid
	p.CheckedOutByID = f.OperatorID
	checkedOut := f.CheckedOutAt
	p.CheckedOutAt = &checkedOut
	if f.RecipientName != "" {
		p.RecipientName = f.RecipientName
	}
	if f.RecipientPhone != "" {
		p.RecipientPhone = f.RecipientPhone
	}
	if f.Notes != "" {
		p.Notes = f.Notes
	}
	p.UpdatedAt = time.Now()
	clone := *p
	return &clone, nil
}

func (r *fakeParcelRepo) CancelExpected(_ context.Context, id primitive.ObjectID, at time.Time) (*model.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parcels[id]
	if !ok || p.Status != model.StatusExpected {
		return nil, repository.ErrStaleStatus
	}
	p.Status = model.StatusCancelled
	cancelled := at
	p.CancelledAt = &cancelled
	p.UpdatedAt = time.Now()
	clone := *p
	return &clone, nil
}

func (r *fakeParcelRepo) OverrideStatus(_ context.Context, id primitive.ObjectID, to model.ParcelStatus, reason string, at time.Time) (*model.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parcels[id]
	if !ok || !p.Status.IsLive() {
		return nil, repository.ErrStaleStatus
	}
	p.Status = to
	if to == model.StatusCancelled {
		cancelled := at
		p.CancelledAt = &cancelled
	}
	if reason != "" {
		p.Notes = reason
	}
	p.UpdatedAt = time.Now()
	clone := *p
	return &clone, nil
}

func (r *fakeParcelRepo) OccupiedCodes(_ context.Context, hubID, zone string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var codes []string
	for _, p := range r.parcels {
		if p.HubID == hubID && p.StorageZone == zone && p.Status.IsLive() {
			codes = append(codes, p.StorageLocation)
		}
	}
	sort.Strings(codes)
	return codes, nil
}

func (r *fakeParcelRepo) Search(_ context.Context, hubID, query string, limit int64) ([]model.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var out []model.Parcel
	for _, p := range r.parcels {
		if p.HubID != hubID {
			continue
		}
		if strings.Contains(strings.ToLower(p.TrackingID), q) ||
			strings.Contains(strings.ToLower(p.RecipientName), q) ||
			strings.Contains(p.RecipientPhone, q) ||
			strings.Contains(strings.ToLower(p.RecipientEmail), q) {
			out = append(out, *p)
		}
		if int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeParcelRepo) List(_ context.Context, f repository.ParcelFilter) ([]model.Parcel, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.Parcel
	for _, p := range r.parcels {
		if f.HubID != "" && p.HubID != f.HubID {
			continue
		}
		if f.RecipientID != "" && p.RecipientID != f.RecipientID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))

	start := (f.Page - 1) * f.Limit
	if start >= len(all) {
		return []model.Parcel{}, total, nil
	}
	end := start + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeParcelRepo) ListLive(_ context.Context, hubID string) ([]model.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Parcel
	for _, p := range r.parcels {
		if p.HubID == hubID && p.Status.IsLive() {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StorageLocation < out[j].StorageLocation })
	return out, nil
}

func (r *fakeParcelRepo) CountByStatus(_ context.Context, hubID string) (map[model.ParcelStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[model.ParcelStatus]int64)
	for _, p := range r.parcels {
		if p.HubID == hubID {
			counts[p.Status]++
		}
	}
	return counts, nil
}

func (r *fakeParcelRepo) CountLive(_ context.Context, hubID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.parcels {
		if p.HubID == hubID && p.Status.IsLive() {
			n++
		}
	}
	return n, nil
}

func (r *fakeParcelRepo) CountCheckedInBetween(_ context.Context, hubID string, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.parcels {
		if p.HubID == hubID && p.CheckedInAt != nil && !p.CheckedInAt.Before(from) && p.CheckedInAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *fakeParcelRepo) CountCheckedOutBetween(_ context.Context, hubID string, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.parcels {
		if p.HubID == hubID && p.CheckedOutAt != nil && !p.CheckedOutAt.Before(from) && p.CheckedOutAt.Before(to) {
			n++
		}
	}
	return n, nil
}

// fakeSlotRepo is an in-memory storage location repository.
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]map[string][]string // hubID -> zone -> codes
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]map[string][]string)}
}

func (r *fakeSlotRepo) ListCodes(_ context.Context, hubID, zone string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	codes := append([]string(nil), r.slots[hubID][zone]...)
	sort.Strings(codes)
	return codes, nil
}

func (r *fakeSlotRepo) CountForHub(_ context.Context, hubID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, codes := range r.slots[hubID] {
		n += int64(len(codes))
	}
	return n, nil
}

func (r *fakeSlotRepo) Provision(_ context.Context, hubID, zone string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if count > model.MaxSlotsPerZone {
		count = model.MaxSlotsPerZone
	}
	if r.slots[hubID] == nil {
		r.slots[hubID] = make(map[string][]string)
	}
	existing := make(map[string]struct{}, len(r.slots[hubID][zone]))
	for _, c := range r.slots[hubID][zone] {
		existing[c] = struct{}{}
	}
	for i := 1; i <= count; i++ {
		code := model.SlotCode(zone, i)
		if _, ok := existing[code]; !ok {
			r.slots[hubID][zone] = append(r.slots[hubID][zone], code)
		}
	}
	return nil
}

// fakeSettingsRepo is an in-memory pricing settings repository.
type fakeSettingsRepo struct {
	mu       sync.Mutex
	versions []model.PricingSettings
	getErr   error
}

func (r *fakeSettingsRepo) GetActive(_ context.Context) (*model.PricingSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for i := range r.versions {
		if r.versions[i].Active {
			clone := r.versions[i]
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeSettingsRepo) Create(_ context.Context, pricing model.PricingConfig, createdBy string) (*model.PricingSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.versions {
		r.versions[i].Active = false
	}
	settings := model.PricingSettings{
		ID:        primitive.NewObjectID(),
		Pricing:   pricing,
		Active:    true,
		Version:   len(r.versions) + 1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		CreatedBy: createdBy,
	}
	r.versions = append(r.versions, settings)
	clone := settings
	return &clone, nil
}

func (r *fakeSettingsRepo) List(_ context.Context, limit int) ([]model.PricingSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]model.PricingSettings(nil), r.versions...)
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
