package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

const teamColumns = `t.id, t.uuid, t.name, t.is_active, t.created_by, t.created_at`

// TeamRepository implements ports.TeamRepository on PostgreSQL.
type TeamRepository struct {
	pool *pgxpool.Pool
}

func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

var _ ports.TeamRepository = (*TeamRepository)(nil)

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var t domain.Team
	if err := row.Scan(&t.ID, &t.Code, &t.Name, &t.IsActive, &t.CreatedBy, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Users = []domain.TeamMember{}
	return &t, nil
}

func (r *TeamRepository) Create(ctx context.Context, t *domain.Team) (*domain.Team, error) {
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	created, err := scanTeam(r.pool.QueryRow(ctx,
		`INSERT INTO teams AS t (uuid, name, is_active, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+teamColumns,
		t.Code, t.Name, t.IsActive, t.CreatedBy, createdAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrTeamCodeTaken
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}
	return created, nil
}

func (r *TeamRepository) FindByCode(ctx context.Context, code string) (*domain.Team, error) {
	t, err := scanTeam(r.pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams t WHERE t.uuid = $1`, code))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("find team: %w", err)
	}
	return t, nil
}

func (r *TeamRepository) Update(ctx context.Context, id int64, name string, isActive *bool) (*domain.Team, error) {
	t, err := scanTeam(r.pool.QueryRow(ctx,
		`UPDATE teams AS t
		    SET name = COALESCE(NULLIF($2, ''), name),
		        is_active = COALESCE($3, is_active)
		  WHERE t.id = $1
		 RETURNING `+teamColumns,
		id, name, isActive,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("update team: %w", err)
	}
	return t, nil
}

// Delete removes the team; user links cascade, photos block the delete.
func (r *TeamRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrTeamHasPhotos
		}
		return fmt.Errorf("delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+teamColumns+` FROM teams t ORDER BY t.created_at DESC, t.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	byCode := make(map[string]*domain.Team)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
		byCode[t.Code] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		return teams, nil
	}

	members, err := r.pool.Query(ctx,
		`SELECT us.school_uuid, u.id, u.uuid, u.role, COALESCE(u.email, '')
		   FROM user_schools us
		   JOIN users u ON u.id = us.user_id
		  ORDER BY u.uuid`)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer members.Close()

	for members.Next() {
		var (
			code string
			m    domain.TeamMember
		)
		if err := members.Scan(&code, &m.ID, &m.Code, &m.Role, &m.Email); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		if t, ok := byCode[code]; ok {
			t.Users = append(t.Users, m)
		}
	}
	if err := members.Err(); err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return teams, nil
}

func (r *TeamRepository) MissingCodes(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT c FROM unnest($1::text[]) AS c
		  WHERE NOT EXISTS (SELECT 1 FROM teams WHERE uuid = c)
		  ORDER BY c`,
		codes,
	)
	if err != nil {
		return nil, fmt.Errorf("check team codes: %w", err)
	}
	missing, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("check team codes: %w", err)
	}
	return missing, nil
}

func (r *TeamRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teams`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count teams: %w", err)
	}
	return n, nil
}
