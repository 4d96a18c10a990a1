package ports

import (
	"context"

	"github.com/schoolshots/photo-intake/internal/core/domain"
)

// EventRepository persists the photo audit trail.
type EventRepository interface {
	Insert(ctx context.Context, event *domain.PhotoEvent) error
	// ListByPhoto returns the events of one photo, oldest first.
	ListByPhoto(ctx context.Context, photoID int64) ([]domain.PhotoEvent, error)
}

// EventPublisher hands audit events off for asynchronous persistence.
type EventPublisher interface {
	Publish(event domain.PhotoEvent)
}
