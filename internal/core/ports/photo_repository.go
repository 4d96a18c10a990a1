package ports

import (
	"context"
	"time"

	"github.com/schoolshots/photo-intake/internal/core/domain"
)

// PhotoFilter carries the optional list filters. SchoolCode is forced by the
// service for client principals.
type PhotoFilter struct {
	SchoolCode string
	Status     domain.PhotoStatus
	Migrated   *bool
}

// PhotoRepository defines persistence operations for photos.
type PhotoRepository interface {
	Create(ctx context.Context, p *domain.Photo) (*domain.Photo, error)
	// FindByID returns the photo together with its school's name.
	FindByID(ctx context.Context, id int64) (*domain.Photo, error)
	List(ctx context.Context, filter PhotoFilter) ([]*domain.Photo, error)
	// MarkApproved sets the approval fields. A non-empty externalID also
	// flags the photo as migrated.
	MarkApproved(ctx context.Context, id, approvedBy int64, at time.Time, externalID string) (*domain.Photo, error)
	MarkRejected(ctx context.Context, id int64) (*domain.Photo, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.Stats, error)
}
