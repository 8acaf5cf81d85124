package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parkit/parking-system/internal/core/domain"
)

const collectionTickets = "tickets"

type TicketRepository struct {
	col *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{col: db.Collection(collectionTickets)}
}

// mongoTicket is the stored shape of a session. The id is an ObjectID here
// and exposed as its hex form on the domain type.
type mongoTicket struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Spot      domain.Spot        `bson:"spot"`
	VehicleID string             `bson:"vehicle_id"`
	EntryTime time.Time          `bson:"entry_time"`
	ExitTime  *time.Time         `bson:"exit_time,omitempty"`
	Price     float64            `bson:"price"`
}

func (m mongoTicket) toDomain() domain.Ticket {
	return domain.Ticket{
		ID:        m.ID.Hex(),
		Spot:      m.Spot,
		VehicleID: m.VehicleID,
		EntryTime: m.EntryTime.UTC(),
		ExitTime:  m.ExitTime,
		Price:     m.Price,
	}
}

// Create inserts a new session document and returns the assigned id.
func (r *TicketRepository) Create(ctx context.Context, t domain.Ticket) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTicket{
		Spot:      t.Spot,
		VehicleID: t.VehicleID,
		EntryTime: t.EntryTime.UTC(),
		ExitTime:  t.ExitTime,
		Price:     t.Price,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert ticket: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert ticket: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindOpenByVehicle retrieves the vehicle's open session (no exit time yet).
// When the vehicle has several open records due to bad data, the most recent
// entry wins.
func (r *TicketRepository) FindOpenByVehicle(ctx context.Context, vehicleID string) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"vehicle_id": vehicleID, "exit_time": bson.M{"$exists": false}}
	opts := options.FindOne().SetSort(bson.D{{Key: "entry_time", Value: -1}})

	var m mongoTicket
	err := r.col.FindOne(ctx, filter, opts).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoOpenSession
		}
		return nil, fmt.Errorf("find open ticket: %w", err)
	}
	t := m.toDomain()
	return &t, nil
}

// Update persists the exit time and price of a settled session.
func (r *TicketRepository) Update(ctx context.Context, t domain.Ticket) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return fmt.Errorf("update ticket: invalid id %q: %w", t.ID, err)
	}

	update := bson.M{"$set": bson.M{
		"exit_time": t.ExitTime,
		"price":     t.Price,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update ticket: %s not found", t.ID)
	}
	return nil
}

// CountByVehicle returns the number of sessions ever recorded for the vehicle.
func (r *TicketRepository) CountByVehicle(ctx context.Context, vehicleID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return n, nil
}

// ListByVehicle returns the vehicle's session history, newest first.
func (r *TicketRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "entry_time", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"vehicle_id": vehicleID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Ticket
	for cur.Next(ctx) {
		var m mongoTicket
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode ticket: %w", err)
		}
		out = append(out, m.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the tickets collection.
func (r *TicketRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "entry_time", Value: -1}}},
		{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "exit_time", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
