package repository

import (
	"context"
	"fmt"
	"time"

	appointmentserrors "realty/internal/appointments/errors"
	"realty/pkg/config"
	mongotx "realty/pkg/db/mongo"
	"realty/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "Appointment_locks"

type AppointmentLockRepository interface {
	// Acquire inserts the lock, taking over an expired one the TTL monitor has
	// not reaped yet. Returns ErrLockHeld if a live lock exists.
	Acquire(ctx context.Context, lock *model.AppointmentLock) error
	// Release deletes the lock only if owner still holds it.
	Release(ctx context.Context, lockID, owner string) error
}

type mongoAppointmentLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewAppointmentLockRepository(cfg *config.Config) AppointmentLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAppointmentLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoAppointmentLockRepository) Acquire(ctx context.Context, lock *model.AppointmentLock) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	lock.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, lock)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to create appointment lock: %w", err)
	}

	result, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": lock.ID, "expires_at": bson.M{"$lte": lock.CreatedAt}},
		lock,
	)
	if err != nil {
		return fmt.Errorf("failed to take over expired lock: %w", err)
	}
	if result.MatchedCount == 0 {
		return appointmentserrors.ErrLockHeld
	}
	return nil
}

func (r *mongoAppointmentLockRepository) Release(ctx context.Context, lockID, owner string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID, "owner": owner}); err != nil {
		return fmt.Errorf("failed to release appointment lock: %w", err)
	}
	return nil
}

// LockID names the admission lock for one date.
func LockID(date string) string {
	return "appointment_lock_" + date
}
