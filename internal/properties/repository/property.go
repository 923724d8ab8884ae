package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	propertieserrors "realty/internal/properties/errors"
	"realty/pkg/config"
	mongotx "realty/pkg/db/mongo"
	"realty/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Properties"

type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	FindByID(ctx context.Context, id string) (*model.Property, error)
	Search(ctx context.Context, filter model.PropertyFilter, limit int, offset int64) ([]*model.Property, error)
	CountSearch(ctx context.Context, filter model.PropertyFilter) (int64, error)
	Update(ctx context.Context, id string, property *model.Property) error
	AppendImages(ctx context.Context, id string, urls []string) (*model.Property, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type mongoPropertyRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPropertyRepository(cfg *config.Config) PropertyRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPropertyRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPropertyRepository) Create(ctx context.Context, property *model.Property) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	property.ID = ""
	property.CreatedAt = now
	property.UpdatedAt = now
	if property.Images == nil {
		property.Images = []string{}
	}

	result, err := r.collection.InsertOne(ctx, property)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		property.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	var property model.Property
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&property); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, propertieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return &property, nil
}

func (r *mongoPropertyRepository) Search(ctx context.Context, filter model.PropertyFilter, limit int, offset int64) ([]*model.Property, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, BuildSearchFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := make([]*model.Property, 0)
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return properties, nil
}

func (r *mongoPropertyRepository) CountSearch(ctx context.Context, filter model.PropertyFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, BuildSearchFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

func (r *mongoPropertyRepository) Update(ctx context.Context, id string, property *model.Property) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	property.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"title":       property.Title,
			"description": property.Description,
			"address":     property.Address,
			"price":       property.Price,
			"area":        property.Area,
			"size":        property.Size,
			"status":      property.Status,
			"agent_id":    property.AgentID,
			"agent_name":  property.AgentName,
			"images":      property.Images,
			"updated_at":  property.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	if result.MatchedCount == 0 {
		return propertieserrors.ErrNotFound
	}
	return nil
}

// AppendImages pushes urls onto the image list and returns the updated document.
func (r *mongoPropertyRepository) AppendImages(ctx context.Context, id string, urls []string) (*model.Property, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$push": bson.M{"images": bson.M{"$each": urls}},
		"$set":  bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var property model.Property
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&property); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, propertieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to append property images: %w", err)
	}
	return &property, nil
}

func (r *mongoPropertyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if result.DeletedCount == 0 {
		return propertieserrors.ErrNotFound
	}
	return nil
}

// CountByStatus groups listings by status. Statuses outside the known set
// are reported under "other".
func (r *mongoPropertyRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate property statuses: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode property statuses: %w", err)
	}

	counts := make(map[string]int64, len(model.PropertyStatuses())+1)
	for _, s := range model.PropertyStatuses() {
		counts[string(s)] = 0
	}
	counts["other"] = 0
	for _, row := range rows {
		if _, known := counts[row.Status]; known && row.Status != "other" {
			counts[row.Status] += row.Count
			continue
		}
		counts["other"] += row.Count
	}
	return counts, nil
}

// BuildSearchFilter translates a PropertyFilter into a Mongo query document.
func BuildSearchFilter(f model.PropertyFilter) bson.M {
	filter := bson.M{}

	if f.Query != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(f.Query), "$options": "i"}
	}
	if r := rangeFilter(f.MinPrice, f.MaxPrice); r != nil {
		filter["price"] = r
	}
	if r := rangeFilter(f.MinArea, f.MaxArea); r != nil {
		filter["area"] = r
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	var sizeClauses bson.A
	if len(f.Sizes) > 0 {
		sizeClauses = append(sizeClauses, bson.M{"size": bson.M{"$in": f.Sizes}})
	}
	if f.SizeAtLeast != nil {
		sizeClauses = append(sizeClauses, bson.M{"size": bson.M{"$gte": *f.SizeAtLeast}})
	}
	switch len(sizeClauses) {
	case 0:
	case 1:
		for k, v := range sizeClauses[0].(bson.M) {
			filter[k] = v
		}
	default:
		filter["$or"] = sizeClauses
	}

	return filter
}

func rangeFilter(lo, hi *int64) bson.M {
	if lo == nil && hi == nil {
		return nil
	}
	r := bson.M{}
	if lo != nil {
		r["$gte"] = *lo
	}
	if hi != nil {
		r["$lte"] = *hi
	}
	return r
}
