package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	promotionserrors "realty/internal/promotions/errors"
	"realty/pkg/config"
	mongotx "realty/pkg/db/mongo"
	"realty/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Promotions"

type PromotionRepository interface {
	Create(ctx context.Context, promotion *model.Promotion) error
	FindByID(ctx context.Context, id string) (*model.Promotion, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Promotion, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, promotion *model.Promotion) error
	Delete(ctx context.Context, id string) error
}

type mongoPromotionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPromotionRepository(cfg *config.Config) PromotionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPromotionRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPromotionRepository) Create(ctx context.Context, promotion *model.Promotion) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	promotion.ID = ""
	promotion.CreatedAt = now
	promotion.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, promotion)
	if err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		promotion.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPromotionRepository) FindByID(ctx context.Context, id string) (*model.Promotion, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", promotionserrors.ErrInvalidID, id)
	}

	var promotion model.Promotion
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&promotion); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, promotionserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find promotion: %w", err)
	}
	return &promotion, nil
}

// FindAll returns promotions newest first.
func (r *mongoPromotionRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Promotion, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find promotions: %w", err)
	}
	defer cursor.Close(ctx)

	promotions := []*model.Promotion{}
	if err := cursor.All(ctx, &promotions); err != nil {
		return nil, fmt.Errorf("failed to decode promotions: %w", err)
	}
	return promotions, nil
}

func (r *mongoPromotionRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count promotions: %w", err)
	}
	return count, nil
}

func (r *mongoPromotionRepository) Update(ctx context.Context, id string, promotion *model.Promotion) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", promotionserrors.ErrInvalidID, id)
	}

	promotion.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{"$set": bson.M{
		"title":       promotion.Title,
		"description": promotion.Description,
		"discount":    promotion.Discount,
		"updated_at":  promotion.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update promotion: %w", err)
	}
	if result.MatchedCount == 0 {
		return promotionserrors.ErrNotFound
	}
	return nil
}

func (r *mongoPromotionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", promotionserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}
	if result.DeletedCount == 0 {
		return promotionserrors.ErrNotFound
	}
	return nil
}
