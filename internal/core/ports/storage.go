package ports

import (
	"context"
	"io"
)

// ObjectStore is the primary blob storage for uploaded photos.
type ObjectStore interface {
	Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) error
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	Remove(ctx context.Context, paths ...string) error
	PublicURL(path string) string
}

// MirrorUpload describes a file to copy into the external document store.
type MirrorUpload struct {
	Folder   string
	FileName string
	MimeType string
	Body     io.Reader
}

// MirrorResult identifies the mirrored copy.
type MirrorResult struct {
	FileID      string
	WebViewLink string
}

// Mirror copies approved photos to the external document store, grouped
// into one folder per school.
type Mirror interface {
	Upload(ctx context.Context, in MirrorUpload) (*MirrorResult, error)
}

// ApprovalLock serialises approvals of the same photo across instances.
type ApprovalLock interface {
	// Acquire returns ok=false when another holder already owns the lock.
	// The token identifies this holder and must be passed back to Release.
	Acquire(ctx context.Context, photoID int64) (token string, ok bool, err error)
	Release(ctx context.Context, photoID int64, token string) error
}
