package ports

import (
	"context"
	"io"

	"github.com/schoolshots/photo-intake/internal/core/domain"
)

const (
	MirrorUploaded        = "uploaded"
	MirrorSkippedOrFailed = "skipped_or_failed"
)

// SubmitPhotoInput is the DTO passed from the transport layer to PhotoService.
// SchoolCode is only honoured for admin principals.
type SubmitPhotoInput struct {
	SchoolCode string
	FileName   string
	Size       int64
	MimeType   string
	Body       io.Reader
}

// ApprovalResult reports the approved photo and the outcome of mirroring it.
type ApprovalResult struct {
	Photo        *domain.Photo
	MirrorStatus string
	MirrorError  string
}

type PhotoService interface {
	Submit(ctx context.Context, actor *domain.Principal, in SubmitPhotoInput) (*domain.Photo, error)
	List(ctx context.Context, actor *domain.Principal, filter PhotoFilter) ([]*domain.Photo, error)
	Approve(ctx context.Context, actor *domain.Principal, id int64) (*ApprovalResult, error)
	Reject(ctx context.Context, actor *domain.Principal, id int64) (*domain.Photo, error)
	Delete(ctx context.Context, actor *domain.Principal, id int64) error
	Events(ctx context.Context, id int64) ([]domain.PhotoEvent, error)
}

type StatsService interface {
	Dashboard(ctx context.Context) (*domain.Stats, error)
}
