package repository

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type record struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Version int64              `bson:"version"`
}

// The precondition checks run before the store is touched, so they are
// testable without a live deployment.

func TestUpdatePreconditions(t *testing.T) {
	repo := NewVersionedRepository[record](nil)
	ctx := context.Background()
	validID := primitive.NewObjectID().Hex()
	version := int64(1)

	tests := []struct {
		name            string
		id              string
		patch           bson.M
		expectedVersion *int64
		wantErr         error
	}{
		{
			name:            "malformed id",
			id:              "not-a-hex-id",
			patch:           bson.M{"name": "x"},
			expectedVersion: &version,
			wantErr:         ErrInvalidID,
		},
		{
			name:            "empty patch",
			id:              validID,
			patch:           bson.M{},
			expectedVersion: &version,
			wantErr:         ErrNoData,
		},
		{
			name:            "version-only patch",
			id:              validID,
			patch:           bson.M{"version": int64(3)},
			expectedVersion: &version,
			wantErr:         ErrNoData,
		},
		{
			name:            "missing expected version",
			id:              validID,
			patch:           bson.M{"name": "x"},
			expectedVersion: nil,
			wantErr:         ErrVersionRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Update(ctx, tt.id, tt.patch, tt.expectedVersion)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Update() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMalformedIDRejectedEverywhere(t *testing.T) {
	repo := NewVersionedRepository[record](nil)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "zzz"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("GetByID() error = %v, want ErrInvalidID", err)
	}
	if err := repo.SoftDelete(ctx, "zzz"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("SoftDelete() error = %v, want ErrInvalidID", err)
	}
}
