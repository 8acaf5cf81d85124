package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/parkit/parking-system/internal/core/domain"
	"github.com/parkit/parking-system/internal/core/ports"
)

const collectionGateEvents = "gate_events"

// GateEventRepository implements ports.GateEventRepository using MongoDB.
type GateEventRepository struct {
	db *mongo.Database
}

// NewGateEventRepository creates a new GateEventRepository.
func NewGateEventRepository(db *mongo.Database) ports.GateEventRepository {
	return &GateEventRepository{db: db}
}

// InsertEvent persists a gate movement to the gate_events audit collection.
func (r *GateEventRepository) InsertEvent(ctx context.Context, event *domain.GateEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"vehicle_id":   event.VehicleID,
		"direction":    string(event.Direction),
		"timestamp":    event.Timestamp.UTC(),
		"gate_id":      event.GateID,
		"processed_at": time.Now().UTC(),
	}
	if event.Direction == domain.DirectionEntry {
		doc["selection"] = event.Selection
	}

	_, err := r.db.Collection(collectionGateEvents).InsertOne(ctx, doc)
	return err
}
