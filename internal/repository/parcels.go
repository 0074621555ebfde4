// Package repository provides data access for parcels.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

// ParcelRepository implements ParcelRepositoryInterface on MongoDB.
type ParcelRepository struct {
	collection *mongo.Collection
}

// NewParcelRepository creates a new parcel repository.
func NewParcelRepository(db *MongoDB) *ParcelRepository {
	return &ParcelRepository{collection: db.Parcels}
}

// Insert stores a new parcel. A duplicate-key rejection from the live
// slot index is surfaced as ErrSlotTaken so the caller can retry with a
// different slot.
func (r *ParcelRepository) Insert(ctx context.Context, p *model.Parcel) error {
	now := time.Now()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotTaken
	}
	return err
}

// FindByID returns the parcel with the given ID, or nil if absent.
func (r *ParcelRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Parcel, error) {
	var p model.Parcel
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByTrackingID returns the newest parcel with the given tracking ID,
// scoped to a hub when hubID is non-empty.
func (r *ParcelRepository) FindByTrackingID(ctx context.Context, hubID, trackingID string) (*model.Parcel, error) {
	filter := bson.M{"tracking_id": trackingID}
	if hubID != "" {
		filter["hub_id"] = hubID
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var p model.Parcel
	err := r.collection.FindOne(ctx, filter, opts).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CheckInExpected atomically transitions an EXPECTED parcel to
// READY_FOR_PICKUP and stamps the check-in fields. The status filter makes
// the update a compare-and-set: if the parcel left EXPECTED concurrently
// the update matches nothing and ErrStaleStatus is returned. A slot
// collision with another live parcel trips the partial unique index and
// is returned as ErrSlotTaken.
func (r *ParcelRepository) CheckInExpected(ctx context.Context, id primitive.ObjectID, f CheckInFields) (*model.Parcel, error) {
	filter := bson.M{"_id": id, "status": model.StatusExpected}
	update := bson.M{"$set": bson.M{
		"status":           model.StatusReadyForPickup,
		"weight_kg":        f.WeightKg,
		"storage_zone":     f.StorageZone,
		"storage_location": f.StorageLocation,
		"fee_amount":       f.FeeAmount,
		"is_damaged":       f.IsDamaged,
		"notes":            f.Notes,
		"checked_in_by_id": f.OperatorID,
		"checked_in_at":    f.CheckedInAt,
		"updated_at":       time.Now(),
	}}

	var p model.Parcel
	err := r.collection.FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrStaleStatus
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Collect atomically transitions a live parcel to COLLECTED, marks it
// paid, and stamps the check-out fields. Losing the race (parcel already
// collected or overridden) returns ErrStaleStatus.
func (r *ParcelRepository) Collect(ctx context.Context, id primitive.ObjectID, f CollectFields) (*model.Parcel, error) {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": model.LiveStatuses},
	}
	set := bson.M{
		"status":            model.StatusCollected,
		"payment_status":    model.PaymentPaid,
		"checked_out_by_id": f.OperatorID,
		"checked_out_at":    f.CheckedOutAt,
		"updated_at":        time.Now(),
	}
	if f.RecipientName != "" {
		set["recipient_name"] = f.RecipientName
	}
	if f.RecipientPhone != "" {
		set["recipient_phone"] = f.RecipientPhone
	}
	if f.Notes != "" {
		set["notes"] = f.Notes
	}

	var p model.Parcel
	err := r.collection.FindOneAndUpdate(
		ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrStaleStatus
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CancelExpected atomically transitions an EXPECTED parcel to CANCELLED.
func (r *ParcelRepository) CancelExpected(ctx context.Context, id primitive.ObjectID, at time.Time) (*model.Parcel, error) {
	filter := bson.M{"_id": id, "status": model.StatusExpected}
	update := bson.M{"$set": bson.M{
		"status":       model.StatusCancelled,
		"cancelled_at": at,
		"updated_at":   time.Now(),
	}}

	var p model.Parcel
	err := r.collection.FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrStaleStatus
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// OverrideStatus force-transitions a live parcel to RETURNED or CANCELLED.
func (r *ParcelRepository) OverrideStatus(ctx context.Context, id primitive.ObjectID, to model.ParcelStatus, reason string, at time.Time) (*model.Parcel, error) {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": model.LiveStatuses},
	}
	set := bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}
	if to == model.StatusCancelled {
		set["cancelled_at"] = at
	}
	if reason != "" {
		set["notes"] = reason
	}

	var p model.Parcel
	err := r.collection.FindOneAndUpdate(
		ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrStaleStatus
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// OccupiedCodes returns the slot codes currently held by live parcels in
// the given hub zone.
func (r *ParcelRepository) OccupiedCodes(ctx context.Context, hubID, zone string) ([]string, error) {
	filter := bson.M{
		"hub_id":       hubID,
		"status":       bson.M{"$in": model.LiveStatuses},
		"storage_zone": zone,
	}
	opts := options.Find().SetProjection(bson.M{"storage_location": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []struct {
		StorageLocation string `bson:"storage_location"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.StorageLocation != "" {
			codes = append(codes, d.StorageLocation)
		}
	}
	return codes, nil
}

// Search finds parcels matching the query by tracking ID, recipient name,
// phone, or email, newest first.
func (r *ParcelRepository) Search(ctx context.Context, hubID, query string, limit int64) ([]model.Parcel, error) {
	pattern := primitive.Regex{Pattern: regexQuoteMeta(query), Options: "i"}
	filter := bson.M{
		"hub_id": hubID,
		"$or": []bson.M{
			{"tracking_id": pattern},
			{"recipient_name": pattern},
			{"recipient_phone": pattern},
			{"recipient_email": pattern},
		},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var parcels []model.Parcel
	if err := cursor.All(ctx, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

// List returns a page of parcels matching the filter and the total count.
func (r *ParcelRepository) List(ctx context.Context, f ParcelFilter) ([]model.Parcel, int64, error) {
	filter := bson.M{}
	if f.HubID != "" {
		filter["hub_id"] = f.HubID
	}
	if f.RecipientID != "" {
		filter["recipient_id"] = f.RecipientID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.DateFrom != nil || f.DateTo != nil {
		created := bson.M{}
		if f.DateFrom != nil {
			created["$gte"] = *f.DateFrom
		}
		if f.DateTo != nil {
			created["$lte"] = *f.DateTo
		}
		filter["created_at"] = created
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 20
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var parcels []model.Parcel
	if err := cursor.All(ctx, &parcels); err != nil {
		return nil, 0, err
	}
	return parcels, total, nil
}

// ListLive returns all live parcels at a hub, ordered by slot code.
func (r *ParcelRepository) ListLive(ctx context.Context, hubID string) ([]model.Parcel, error) {
	filter := bson.M{
		"hub_id": hubID,
		"status": bson.M{"$in": model.LiveStatuses},
	}
	opts := options.Find().SetSort(bson.D{{Key: "storage_location", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var parcels []model.Parcel
	if err := cursor.All(ctx, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

// CountByStatus returns parcel counts per status for a hub.
func (r *ParcelRepository) CountByStatus(ctx context.Context, hubID string) (map[model.ParcelStatus]int64, error) {
	matchStage := bson.D{{Key: "$match", Value: bson.M{"hub_id": hubID}}}
	groupStage := bson.D{{Key: "$group", Value: bson.M{
		"_id":   "$status",
		"count": bson.M{"$sum": 1},
	}}}

	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{matchStage, groupStage})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var rows []struct {
		Status model.ParcelStatus `bson:"_id"`
		Count  int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[model.ParcelStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountLive returns the number of live parcels (occupied slots) at a hub.
func (r *ParcelRepository) CountLive(ctx context.Context, hubID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"hub_id": hubID,
		"status": bson.M{"$in": model.LiveStatuses},
	})
}

// CountCheckedInBetween counts parcels checked in during [from, to).
func (r *ParcelRepository) CountCheckedInBetween(ctx context.Context, hubID string, from, to time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"hub_id":        hubID,
		"checked_in_at": bson.M{"$gte": from, "$lt": to},
	})
}

// CountCheckedOutBetween counts parcels checked out during [from, to).
func (r *ParcelRepository) CountCheckedOutBetween(ctx context.Context, hubID string, from, to time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"hub_id":         hubID,
		"checked_out_at": bson.M{"$gte": from, "$lt": to},
	})
}

// regexQuoteMeta escapes regex metacharacters so user queries are treated
// as literal substrings.
func regexQuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(special); j++ {
			if s[i] == special[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
