package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parkit/parking-system/internal/core/domain"
)

const collectionSpots = "spots"

type SpotRepository struct {
	col *mongo.Collection
}

func NewSpotRepository(db *mongo.Database) *SpotRepository {
	return &SpotRepository{col: db.Collection(collectionSpots)}
}

// FindAvailable returns the lowest-numbered available spot of the category,
// or (nil, nil) when every spot of that category is taken.
func (r *SpotRepository) FindAvailable(ctx context.Context, category domain.VehicleCategory) (*domain.Spot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"category": string(category), "available": true}
	opts := options.FindOne().SetSort(bson.D{{Key: "spot_id", Value: 1}})

	var s domain.Spot
	err := r.col.FindOne(ctx, filter, opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find available spot: %w", err)
	}
	return &s, nil
}

// SetAvailability flips the availability flag of a spot.
func (r *SpotRepository) SetAvailability(ctx context.Context, spotID int, available bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"spot_id": spotID},
		bson.M{"$set": bson.M{"available": available}},
	)
	if err != nil {
		return fmt.Errorf("set spot availability: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("set spot availability: spot %d not found", spotID)
	}
	return nil
}

// Seed creates the facility's spots when the collection is empty: car spots
// first (ids 1..carSpots), then bike spots. Idempotent across restarts.
func (r *SpotRepository) Seed(ctx context.Context, carSpots, bikeSpots int) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count spots: %w", err)
	}
	if n > 0 {
		return nil
	}

	docs := make([]interface{}, 0, carSpots+bikeSpots)
	id := 1
	for i := 0; i < carSpots; i++ {
		docs = append(docs, domain.Spot{ID: id, Category: domain.CategoryCar, Available: true})
		id++
	}
	for i := 0; i < bikeSpots; i++ {
		docs = append(docs, domain.Spot{ID: id, Category: domain.CategoryBike, Available: true})
		id++
	}

	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed spots: %w", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the spots collection.
func (r *SpotRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "spot_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "available", Value: 1}, {Key: "spot_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
