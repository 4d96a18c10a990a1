package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

const eventsCollection = "photo_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	coll *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection)}
}

var _ ports.EventRepository = (*EventRepository)(nil)

// EnsureIndexes creates the index backing ListByPhoto.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "photo_id", Value: 1}, {Key: "occurred_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create event index: %w", err)
	}
	return nil
}

// Insert persists an event to the photo_events audit collection.
func (r *EventRepository) Insert(ctx context.Context, event *domain.PhotoEvent) error {
	doc := *event
	doc.OccurredAt = doc.OccurredAt.UTC()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert photo event: %w", err)
	}
	return nil
}

// ListByPhoto returns the audit trail of one photo, oldest first.
func (r *EventRepository) ListByPhoto(ctx context.Context, photoID int64) ([]domain.PhotoEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"photo_id": photoID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find photo events: %w", err)
	}
	defer cur.Close(ctx)

	events := make([]domain.PhotoEvent, 0)
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode photo events: %w", err)
	}
	return events, nil
}
