package domain

import (
	"strings"
	"time"
)

// PhotoStatus is the moderation state of a photo.
type PhotoStatus string

const (
	PhotoPending  PhotoStatus = "pending"
	PhotoApproved PhotoStatus = "approved"
	PhotoRejected PhotoStatus = "rejected"
)

var photoTransitions = map[PhotoStatus][]PhotoStatus{
	PhotoPending: {PhotoApproved, PhotoRejected},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s PhotoStatus) CanTransitionTo(next PhotoStatus) bool {
	for _, allowed := range photoTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PhotoStatus) Valid() bool {
	switch s {
	case PhotoPending, PhotoApproved, PhotoRejected:
		return true
	}
	return false
}

// PhotoMetadata is stored alongside the photo row as JSON.
type PhotoMetadata struct {
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
	PublicURL    string `json:"publicUrl,omitempty"`
}

type Photo struct {
	ID         int64         `json:"id"`
	SchoolCode string        `json:"schoolCode"`
	SchoolName string        `json:"schoolName,omitempty"`
	UserID     *int64        `json:"userId,omitempty"`
	FileName   string        `json:"fileName"`
	FilePath   string        `json:"filePath"`
	FileSize   int64         `json:"fileSize"`
	MimeType   string        `json:"mimeType"`
	Status     PhotoStatus   `json:"status"`
	Migrated   bool          `json:"migrated"`
	ExternalID string        `json:"externalId,omitempty"`
	Metadata   PhotoMetadata `json:"metadata"`
	CreatedAt  time.Time     `json:"createdAt"`
	ApprovedAt *time.Time    `json:"approvedAt,omitempty"`
	ApprovedBy *int64        `json:"approvedBy,omitempty"`
}

// SafeFileName replaces every character outside [A-Za-z0-9.-] with an
// underscore so the name can be used as an object key segment.
func SafeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Stats is the dashboard summary shown to admins.
type Stats struct {
	TotalPhotos    int64 `json:"totalPhotos"`
	PendingPhotos  int64 `json:"pendingPhotos"`
	ApprovedPhotos int64 `json:"approvedPhotos"`
	RejectedPhotos int64 `json:"rejectedPhotos"`
	MigratedPhotos int64 `json:"migratedPhotos"`
	StorageBytes   int64 `json:"storageBytes"`
	Teams          int64 `json:"teams"`
	Users          int64 `json:"users"`
}
