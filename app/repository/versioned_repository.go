package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VersionedRepository is a CRUD engine over one collection of soft-deletable,
// version-counted documents. Both the users and students collections run the
// exact same protocol, so the entity type is a type parameter.
//
// Every document carries the standard fields: version (starts at 1, +1 per
// successful mutation), is_deleted / deleted_at (soft delete, never undone)
// and created_at / updated_at. Concurrent updates are resolved without locks:
// the conditional write on (_id, version) inside Update is the only
// synchronization point.
type VersionedRepository[T any] struct {
	coll *mongo.Collection
}

func NewVersionedRepository[T any](coll *mongo.Collection) *VersionedRepository[T] {
	return &VersionedRepository[T]{coll: coll}
}

// EnsureUniqueIndex creates a unique index on field, scoped to non-deleted
// documents so a soft-deleted record's key can be reused by a new record.
func (r *VersionedRepository[T]) EnsureUniqueIndex(ctx context.Context, field string) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: field, Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_deleted": false}),
	})
	if err != nil {
		return fmt.Errorf("create unique index on %s: %w", field, err)
	}
	return nil
}

// Create inserts doc with the standard fields stamped by the store and
// returns the persisted document, id included. The unique-key check is the
// partial index's job, not a check-then-insert in application code.
func (r *VersionedRepository[T]) Create(ctx context.Context, doc bson.M) (*T, error) {
	now := time.Now().UTC()
	doc["version"] = int64(1)
	doc["is_deleted"] = false
	doc["created_at"] = now
	doc["updated_at"] = now
	doc["deleted_at"] = nil

	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("mongo insert failed: %w", err)
	}

	return r.findOne(ctx, bson.M{"_id": result.InsertedID})
}

// GetByID returns the non-deleted document with the given hex id.
func (r *VersionedRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": objID, "is_deleted": false})
}

// FindOne returns the first non-deleted document matching filter.
func (r *VersionedRepository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	scoped := bson.M{"is_deleted": false}
	for k, v := range filter {
		if k != "is_deleted" {
			scoped[k] = v
		}
	}
	return r.findOne(ctx, scoped)
}

// List returns non-deleted documents matching filter, ordered by _id
// ascending, sliced to [skip, skip+limit), together with the total matching
// count (skip/limit excluded) for pagination.
func (r *VersionedRepository[T]) List(ctx context.Context, skip, limit int64, filter bson.M) ([]T, int64, error) {
	query := bson.M{"is_deleted": false}
	for k, v := range filter {
		if k != "is_deleted" {
			query[k] = v
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("mongo find failed: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("mongo cursor decode failed: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("mongo count failed: %w", err)
	}
	return docs, total, nil
}

// Update applies patch to the non-deleted document whose id and version both
// match, as one atomic conditional write. On success the document's version
// is incremented by one, updated_at is refreshed and the post-update document
// is returned.
//
// When the conditional write matches nothing, a follow-up read decides
// between ErrNotFound and ErrVersionConflict. That read is not atomic with
// the failed write; under a concurrent delete it can blame the wrong cause.
// Accepted: the client reaction (re-fetch, retry) is the same either way.
func (r *VersionedRepository[T]) Update(ctx context.Context, id string, patch bson.M, expectedVersion *int64) (*T, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	// version is a precondition, never payload
	delete(patch, "version")
	if len(patch) == 0 {
		return nil, ErrNoData
	}
	if expectedVersion == nil {
		return nil, ErrVersionRequired
	}

	patch["updated_at"] = time.Now().UTC()
	filter := bson.M{"_id": objID, "is_deleted": false, "version": *expectedVersion}
	update := bson.M{
		"$set": patch,
		"$inc": bson.M{"version": 1},
	}

	var updated T
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateKey
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("mongo update failed: %w", err)
	}

	// CAS missed: find out whether the record is gone or the version is stale.
	_, err = r.findOne(ctx, bson.M{"_id": objID, "is_deleted": false})
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return nil, ErrVersionConflict
}

// SoftDelete retires the non-deleted document with the given hex id. The flag
// flip, deleted_at stamp and version increment happen in one conditional
// write keyed on is_deleted=false, so deleting twice reports ErrNotFound.
func (r *VersionedRepository[T]) SoftDelete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	now := time.Now().UTC()
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": objID, "is_deleted": false},
		bson.M{
			"$set": bson.M{
				"is_deleted": true,
				"deleted_at": now,
				"updated_at": now,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("mongo soft delete failed: %w", err)
	}
	if result.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VersionedRepository[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mongo find failed: %w", err)
	}
	return &doc, nil
}
