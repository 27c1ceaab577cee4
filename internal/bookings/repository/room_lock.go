package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "guestcal/internal/bookings/errors"
	"guestcal/pkg/config"
	"guestcal/pkg/model"
)

const (
	RoomLockCollectionName = "Room_locks"
	roomLockPrefix         = "room_lock_"
)

// RoomLockRepository serializes concurrent toggles on the same room.
// Acquire inserts a document whose _id is derived from the room id;
// the unique index makes a second insert fail, so only one request can
// run the check-and-write sequence at a time. A TTL index on
// expires_at reaps locks left behind by crashed processes.
type RoomLockRepository interface {
	Acquire(ctx context.Context, roomID string) error
	Release(ctx context.Context, roomID string) error
}

type mongoRoomLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRoomLockRepository(cfg *config.Config) RoomLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomLockRepository{
		cfg:        cfg,
		collection: db.Collection(RoomLockCollectionName),
	}
}

func lockID(roomID string) string {
	return roomLockPrefix + roomID
}

func (r *mongoRoomLockRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRoomLockRepository) Acquire(ctx context.Context, roomID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	lock := model.RoomLock{
		ID:        lockID(roomID),
		ExpiresAt: now.Add(r.cfg.RoomLockTTL),
		CreatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrRoomLocked
		}
		return fmt.Errorf("failed to acquire room lock: %w", err)
	}

	return nil
}

func (r *mongoRoomLockRepository) Release(ctx context.Context, roomID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID(roomID)}); err != nil {
		return fmt.Errorf("failed to release room lock: %w", err)
	}

	return nil
}
