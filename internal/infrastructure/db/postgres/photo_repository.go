package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

const unknownSchool = "Unknown School"

const photoColumns = `p.id, p.school_uuid, COALESCE(t.name, ''), p.user_id, p.file_name, p.file_path,
	p.file_size, p.mime_type, p.status, p.migrated_to_external, p.external_id, p.metadata,
	p.created_at, p.approved_at, p.approved_by`

// PhotoRepository implements ports.PhotoRepository on PostgreSQL.
type PhotoRepository struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

var _ ports.PhotoRepository = (*PhotoRepository)(nil)

func scanPhoto(row pgx.Row) (*domain.Photo, error) {
	var (
		p          domain.Photo
		status     string
		externalID *string
	)
	err := row.Scan(
		&p.ID, &p.SchoolCode, &p.SchoolName, &p.UserID, &p.FileName, &p.FilePath,
		&p.FileSize, &p.MimeType, &status, &p.Migrated, &externalID, &p.Metadata,
		&p.CreatedAt, &p.ApprovedAt, &p.ApprovedBy,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.PhotoStatus(status)
	if externalID != nil {
		p.ExternalID = *externalID
	}
	if p.SchoolName == "" {
		p.SchoolName = unknownSchool
	}
	return &p, nil
}

// Create inserts the photo. An unknown school surfaces as ErrTeamNotFound.
func (r *PhotoRepository) Create(ctx context.Context, p *domain.Photo) (*domain.Photo, error) {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	status := p.Status
	if status == "" {
		status = domain.PhotoPending
	}

	created, err := scanPhoto(r.pool.QueryRow(ctx,
		`WITH p AS (
		   INSERT INTO photos (school_uuid, user_id, file_name, file_path, file_size, mime_type, status, metadata, created_at)
		   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		   RETURNING *)
		 SELECT `+photoColumns+` FROM p LEFT JOIN teams t ON t.uuid = p.school_uuid`,
		p.SchoolCode, p.UserID, p.FileName, p.FilePath, p.FileSize, p.MimeType, string(status), p.Metadata, createdAt,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("insert photo: %w", err)
	}
	return created, nil
}

func (r *PhotoRepository) FindByID(ctx context.Context, id int64) (*domain.Photo, error) {
	p, err := scanPhoto(r.pool.QueryRow(ctx,
		`SELECT `+photoColumns+` FROM photos p LEFT JOIN teams t ON t.uuid = p.school_uuid WHERE p.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("find photo: %w", err)
	}
	return p, nil
}

func (r *PhotoRepository) List(ctx context.Context, filter ports.PhotoFilter) ([]*domain.Photo, error) {
	var (
		where []string
		args  []any
	)
	if filter.SchoolCode != "" {
		args = append(args, filter.SchoolCode)
		where = append(where, fmt.Sprintf("p.school_uuid = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if filter.Migrated != nil {
		args = append(args, *filter.Migrated)
		where = append(where, fmt.Sprintf("p.migrated_to_external = $%d", len(args)))
	}

	query := `SELECT ` + photoColumns + ` FROM photos p LEFT JOIN teams t ON t.uuid = p.school_uuid`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	photos := make([]*domain.Photo, 0)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

// MarkApproved records the approval of a pending or already approved photo.
// The mirror columns are only touched when externalID is non-empty, so an
// earlier mirror is never lost. A rejected photo yields ErrInvalidTransition.
func (r *PhotoRepository) MarkApproved(ctx context.Context, id, approvedBy int64, at time.Time, externalID string) (*domain.Photo, error) {
	return r.transition(ctx, id,
		`UPDATE photos
		    SET status = 'approved',
		        approved_at = $2,
		        approved_by = $3,
		        migrated_to_external = migrated_to_external OR $4 <> '',
		        external_id = COALESCE(NULLIF($4, ''), external_id)
		  WHERE id = $1 AND status IN ('pending', 'approved')`,
		id, at, approvedBy, externalID,
	)
}

// MarkRejected rejects a pending photo. An approved photo yields
// ErrInvalidTransition.
func (r *PhotoRepository) MarkRejected(ctx context.Context, id int64) (*domain.Photo, error) {
	return r.transition(ctx, id,
		`UPDATE photos SET status = 'rejected' WHERE id = $1 AND status IN ('pending', 'rejected')`, id)
}

// transition runs a status-guarded update. When no row matches it tells a
// missing photo apart from one whose status no longer allows the move.
func (r *PhotoRepository) transition(ctx context.Context, id int64, update string, args ...any) (*domain.Photo, error) {
	p, err := scanPhoto(r.pool.QueryRow(ctx,
		`WITH p AS (`+update+` RETURNING *)
		 SELECT `+photoColumns+` FROM p LEFT JOIN teams t ON t.uuid = p.school_uuid`,
		args...,
	))
	if err == nil {
		return p, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("update photo: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM photos WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("update photo: %w", err)
	}
	if !exists {
		return nil, domain.ErrPhotoNotFound
	}
	return nil, domain.ErrInvalidTransition
}

func (r *PhotoRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

// Stats fills the photo counters; team and user totals come from their
// own repositories.
func (r *PhotoRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	var s domain.Stats
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'pending'),
		        COUNT(*) FILTER (WHERE status = 'approved'),
		        COUNT(*) FILTER (WHERE status = 'rejected'),
		        COUNT(*) FILTER (WHERE migrated_to_external),
		        COALESCE(SUM(file_size), 0)::BIGINT
		   FROM photos`,
	).Scan(&s.TotalPhotos, &s.PendingPhotos, &s.ApprovedPhotos, &s.RejectedPhotos, &s.MigratedPhotos, &s.StorageBytes)
	if err != nil {
		return nil, fmt.Errorf("photo stats: %w", err)
	}
	return &s, nil
}
