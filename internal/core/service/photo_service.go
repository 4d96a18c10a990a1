package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schoolshots/photo-intake/internal/api/metrics"
	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

const (
	defaultMirrorTimeout = 30 * time.Second
	sniffLen             = 3072
	octetStream          = "application/octet-stream"
)

// PhotoDeps groups the collaborators of the photo service.
type PhotoDeps struct {
	Photos    ports.PhotoRepository
	Teams     ports.TeamRepository
	Store     ports.ObjectStore
	Mirror    ports.Mirror
	Lock      ports.ApprovalLock
	Publisher ports.EventPublisher
	Events    ports.EventRepository
}

type photoService struct {
	PhotoDeps
	mirrorTimeout time.Duration
	now           func() time.Time
	log           zerolog.Logger
}

// NewPhotoService returns a PhotoService implementation. A mirrorTimeout
// <= 0 falls back to 30s.
func NewPhotoService(deps PhotoDeps, mirrorTimeout time.Duration, log zerolog.Logger) ports.PhotoService {
	if mirrorTimeout <= 0 {
		mirrorTimeout = defaultMirrorTimeout
	}
	return &photoService{
		PhotoDeps:     deps,
		mirrorTimeout: mirrorTimeout,
		now:           time.Now,
		log:           log,
	}
}

// Submit stores the file and records a pending photo. The owning school is
// the principal's own for clients and in.SchoolCode for admins; nothing is
// written to storage unless that school resolves.
func (s *photoService) Submit(ctx context.Context, actor *domain.Principal, in ports.SubmitPhotoInput) (*domain.Photo, error) {
	if in.Body == nil || in.Size <= 0 {
		return nil, domain.Invalid("file is required")
	}

	school := actor.ScopedSchool()
	if !actor.IsAdmin() && school == "" {
		return nil, domain.ErrForbidden
	}
	if school == "" {
		school = strings.TrimSpace(in.SchoolCode)
	}
	if school == "" {
		return nil, domain.Invalid("schoolCode is required")
	}

	if _, err := s.Teams.FindByCode(ctx, school); err != nil {
		return nil, fmt.Errorf("submit photo: %w", err)
	}

	name := strings.TrimSpace(in.FileName)
	if name == "" {
		name = "photo"
	}

	body, mimeType, err := detectMime(in.Body, in.MimeType)
	if err != nil {
		return nil, fmt.Errorf("submit photo: read file: %w", err)
	}

	now := s.now().UTC()
	path := fmt.Sprintf("%s/%d-%s-%s", school, now.UnixMilli(), uuid.NewString()[:8], domain.SafeFileName(name))

	if err := s.Store.Upload(ctx, path, body, in.Size, mimeType); err != nil {
		return nil, fmt.Errorf("submit photo: upload: %w", err)
	}

	userID := actor.UserID
	photo, err := s.Photos.Create(ctx, &domain.Photo{
		SchoolCode: school,
		UserID:     &userID,
		FileName:   name,
		FilePath:   path,
		FileSize:   in.Size,
		MimeType:   mimeType,
		Status:     domain.PhotoPending,
		Metadata: domain.PhotoMetadata{
			OriginalName: name,
			Size:         in.Size,
			MimeType:     mimeType,
			PublicURL:    s.Store.PublicURL(path),
		},
		CreatedAt: now,
	})
	if err != nil {
		// Keep storage consistent with the database.
		if rmErr := s.Store.Remove(context.WithoutCancel(ctx), path); rmErr != nil {
			s.log.Error().Err(rmErr).Str("path", path).Msg("failed to remove orphaned upload")
		}
		return nil, fmt.Errorf("submit photo: record: %w", err)
	}

	metrics.PhotosSubmittedTotal.Inc()
	metrics.PhotoBytesSubmittedTotal.Add(float64(in.Size))
	s.publish(photo, domain.EventSubmitted, actor.UserID, "")

	s.log.Info().
		Int64("photo_id", photo.ID).
		Str("school", school).
		Int64("size", in.Size).
		Str("mime", mimeType).
		Msg("photo submitted")

	return photo, nil
}

// List returns photos matching filter. Clients only ever see their own school.
func (s *photoService) List(ctx context.Context, actor *domain.Principal, filter ports.PhotoFilter) ([]*domain.Photo, error) {
	if !actor.IsAdmin() {
		school := actor.ScopedSchool()
		if school == "" {
			return nil, domain.ErrForbidden
		}
		filter.SchoolCode = school
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Invalid("status must be one of: pending approved rejected")
	}

	photos, err := s.Photos.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

// holdLock takes the per-photo lock shared by approve and reject. An
// unreachable lock backend is logged and treated as acquired.
func (s *photoService) holdLock(ctx context.Context, id int64) (func(), error) {
	noop := func() {}
	if s.Lock == nil {
		return noop, nil
	}

	token, ok, err := s.Lock.Acquire(ctx, id)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Int64("photo_id", id).Msg("approval lock unavailable, continuing without it")
		return noop, nil
	case !ok:
		return nil, domain.ErrApprovalInProgress
	}
	return func() {
		if err := s.Lock.Release(context.WithoutCancel(ctx), id, token); err != nil {
			s.log.Warn().Err(err).Int64("photo_id", id).Msg("failed to release approval lock")
		}
	}, nil
}

// Approve runs the approval pipeline: lock, fetch from object storage,
// mirror into the school's folder, record. Mirror failures never fail the
// approval; they only leave the photo unmigrated. The row is read only once
// the lock is held.
func (s *photoService) Approve(ctx context.Context, actor *domain.Principal, id int64) (*ports.ApprovalResult, error) {
	unlock, err := s.holdLock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("approve photo: %w", err)
	}
	defer unlock()

	photo, err := s.Photos.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("approve photo: %w", err)
	}
	if photo.Status == domain.PhotoRejected {
		return nil, fmt.Errorf("approve photo: %w (from %s to %s)", domain.ErrInvalidTransition, photo.Status, domain.PhotoApproved)
	}

	result := &ports.ApprovalResult{MirrorStatus: ports.MirrorSkippedOrFailed}
	var externalID string

	if photo.Migrated {
		externalID = photo.ExternalID
		result.MirrorStatus = ports.MirrorUploaded
		metrics.PhotoApprovalsTotal.WithLabelValues("already_mirrored").Inc()
	} else {
		externalID, err = s.mirror(ctx, photo)
		switch {
		case err == nil:
			result.MirrorStatus = ports.MirrorUploaded
			metrics.PhotoApprovalsTotal.WithLabelValues("uploaded").Inc()
			s.publish(photo, domain.EventMirrored, actor.UserID, externalID)
		case errors.Is(err, domain.ErrMirrorDisabled):
			result.MirrorError = err.Error()
			metrics.PhotoApprovalsTotal.WithLabelValues("skipped").Inc()
			s.publish(photo, domain.EventMirrorSkipped, actor.UserID, err.Error())
		default:
			result.MirrorError = err.Error()
			metrics.PhotoApprovalsTotal.WithLabelValues("failed").Inc()
			s.publish(photo, domain.EventMirrorFailed, actor.UserID, err.Error())
			s.log.Error().Err(err).Int64("photo_id", id).Msg("mirror failed, approving without external copy")
		}
	}

	updated, err := s.Photos.MarkApproved(ctx, id, actor.UserID, s.now().UTC(), externalID)
	if err != nil {
		return nil, fmt.Errorf("approve photo: %w", err)
	}
	result.Photo = updated

	s.publish(updated, domain.EventApproved, actor.UserID, result.MirrorStatus)
	s.log.Info().
		Int64("photo_id", id).
		Int64("approved_by", actor.UserID).
		Str("mirror", result.MirrorStatus).
		Msg("photo approved")

	return result, nil
}

// mirror copies the photo bytes into the external store under the school's
// folder and returns the external file id.
func (s *photoService) mirror(ctx context.Context, photo *domain.Photo) (string, error) {
	if s.Mirror == nil {
		return "", domain.ErrMirrorDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, s.mirrorTimeout)
	defer cancel()

	start := time.Now()
	id, err := s.copyToMirror(ctx, photo)
	if errors.Is(err, domain.ErrMirrorDisabled) {
		return "", err
	}

	result := "uploaded"
	if err != nil {
		result = "failed"
	}
	metrics.MirrorDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return id, err
}

func (s *photoService) copyToMirror(ctx context.Context, photo *domain.Photo) (string, error) {
	body, err := s.Store.Download(ctx, photo.FilePath)
	if err != nil {
		return "", fmt.Errorf("fetch from storage: %w", err)
	}
	defer body.Close()

	res, err := s.Mirror.Upload(ctx, ports.MirrorUpload{
		Folder:   domain.FolderName(photo.SchoolName),
		FileName: photo.FileName,
		MimeType: photo.MimeType,
		Body:     body,
	})
	if err != nil {
		return "", err
	}
	return res.FileID, nil
}

// Reject moves a pending photo to rejected. Rejecting twice is a no-op.
func (s *photoService) Reject(ctx context.Context, actor *domain.Principal, id int64) (*domain.Photo, error) {
	unlock, err := s.holdLock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reject photo: %w", err)
	}
	defer unlock()

	photo, err := s.Photos.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reject photo: %w", err)
	}
	if photo.Status == domain.PhotoRejected {
		return photo, nil
	}
	if !photo.Status.CanTransitionTo(domain.PhotoRejected) {
		return nil, fmt.Errorf("reject photo: %w (from %s to %s)", domain.ErrInvalidTransition, photo.Status, domain.PhotoRejected)
	}

	updated, err := s.Photos.MarkRejected(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reject photo: %w", err)
	}

	metrics.PhotoRejectionsTotal.Inc()
	s.publish(updated, domain.EventRejected, actor.UserID, "")
	s.log.Info().Int64("photo_id", id).Int64("rejected_by", actor.UserID).Msg("photo rejected")
	return updated, nil
}

// Delete removes the stored object (best effort) and then the record.
func (s *photoService) Delete(ctx context.Context, actor *domain.Principal, id int64) error {
	photo, err := s.Photos.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}

	if err := s.Store.Remove(ctx, photo.FilePath); err != nil {
		s.log.Warn().Err(err).Int64("photo_id", id).Str("path", photo.FilePath).Msg("failed to remove stored object")
	}

	if err := s.Photos.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}

	s.publish(photo, domain.EventDeleted, actor.UserID, photo.FilePath)
	s.log.Info().Int64("photo_id", id).Msg("photo deleted")
	return nil
}

// Events returns the audit trail of a photo.
func (s *photoService) Events(ctx context.Context, id int64) ([]domain.PhotoEvent, error) {
	events, err := s.PhotoDeps.Events.ListByPhoto(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("photo events: %w", err)
	}
	return events, nil
}

func (s *photoService) publish(p *domain.Photo, typ domain.PhotoEventType, actorID int64, detail string) {
	if s.Publisher == nil {
		return
	}
	s.Publisher.Publish(domain.PhotoEvent{
		PhotoID:    p.ID,
		SchoolCode: p.SchoolCode,
		Type:       typ,
		ActorID:    actorID,
		Detail:     detail,
		OccurredAt: s.now().UTC(),
	})
}

// detectMime returns declared when it is specific, otherwise sniffs the
// first bytes of body. The returned reader yields the full content either way.
func detectMime(body io.Reader, declared string) (io.Reader, string, error) {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != octetStream {
		return body, declared, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", err
	}
	head = head[:n]

	return io.MultiReader(bytes.NewReader(head), body), mimetype.Detect(head).String(), nil
}
