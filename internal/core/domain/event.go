package domain

import "time"

// PhotoEventType names an entry in a photo's audit trail.
type PhotoEventType string

const (
	EventSubmitted     PhotoEventType = "submitted"
	EventApproved      PhotoEventType = "approved"
	EventRejected      PhotoEventType = "rejected"
	EventMirrored      PhotoEventType = "mirrored"
	EventMirrorFailed  PhotoEventType = "mirror_failed"
	EventMirrorSkipped PhotoEventType = "mirror_skipped"
	EventDeleted       PhotoEventType = "deleted"
)

// PhotoEvent records something that happened to a photo.
type PhotoEvent struct {
	PhotoID    int64          `json:"photoId" bson:"photo_id"`
	SchoolCode string         `json:"schoolCode" bson:"school_code"`
	Type       PhotoEventType `json:"type" bson:"type"`
	ActorID    int64          `json:"actorId" bson:"actor_id"`
	Detail     string         `json:"detail,omitempty" bson:"detail,omitempty"`
	OccurredAt time.Time      `json:"occurredAt" bson:"occurred_at"`
}
