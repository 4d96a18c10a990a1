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

const userColumns = `u.id, u.uuid, u.role, u.email, u.password_hash, u.created_by, u.created_at,
	COALESCE(ARRAY(SELECT us.school_uuid FROM user_schools us WHERE us.user_id = u.id ORDER BY us.school_uuid), '{}')`

// UserRepository implements ports.UserRepository on PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u     domain.User
		email *string
	)
	if err := row.Scan(&u.ID, &u.Code, &u.Role, &email, &u.PasswordHash, &u.CreatedBy, &u.CreatedAt, &u.Schools); err != nil {
		return nil, err
	}
	if email != nil {
		u.Email = *email
	}
	return &u, nil
}

func (r *UserRepository) findOne(ctx context.Context, q pgx.Tx, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE ` + where
	var row pgx.Row
	if q != nil {
		row = q.QueryRow(ctx, query, arg)
	} else {
		row = r.pool.QueryRow(ctx, query, arg)
	}

	u, err := scanUser(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, nil, "u.id = $1", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, nil, "u.email = $1", email)
}

func (r *UserRepository) FindByCode(ctx context.Context, code string) (*domain.User, error) {
	return r.findOne(ctx, nil, "u.uuid = $1", code)
}

func (r *UserRepository) HasSchool(ctx context.Context, userID int64, schoolCode string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_schools WHERE user_id = $1 AND school_uuid = $2)`,
		userID, schoolCode,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user school: %w", err)
	}
	return exists, nil
}

// LastCode relies on codes being fixed-width, so text order is numeric order.
func (r *UserRepository) LastCode(ctx context.Context) (string, error) {
	var code string
	err := r.pool.QueryRow(ctx, `SELECT uuid FROM users ORDER BY uuid DESC LIMIT 1`).Scan(&code)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("last user code: %w", err)
	}
	return code, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	var created *domain.User
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var email *string
		if u.Email != "" {
			email = &u.Email
		}
		createdAt := u.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO users (uuid, role, email, password_hash, created_by, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			u.Code, u.Role, email, u.PasswordHash, u.CreatedBy, createdAt,
		).Scan(&id)
		if err != nil {
			return mapUserWriteError(err)
		}

		if err := linkSchools(ctx, tx, id, u.Schools, u.CreatedBy); err != nil {
			return err
		}

		created, err = r.findOne(ctx, tx, "u.id = $1", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update changes role/code and, when upd.Schools is non-nil, diffs the
// current links against it: missing links are added, extra ones removed and
// the rest left untouched.
func (r *UserRepository) Update(ctx context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
	var updated *domain.User
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE users
			    SET role = COALESCE(NULLIF($2, ''), role),
			        uuid = COALESCE(NULLIF($3, ''), uuid)
			  WHERE id = $1`,
			id, upd.Role, upd.Code,
		)
		if err != nil {
			return mapUserWriteError(err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrUserNotFound
		}

		if upd.Schools != nil {
			if err := syncSchools(ctx, tx, id, upd.Schools, upd.AssignedBy); err != nil {
				return err
			}
		}

		updated, err = r.findOne(ctx, tx, "u.id = $1", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func syncSchools(ctx context.Context, tx pgx.Tx, userID int64, desired []string, assignedBy *int64) error {
	rows, err := tx.Query(ctx, `SELECT school_uuid FROM user_schools WHERE user_id = $1 FOR UPDATE`, userID)
	if err != nil {
		return fmt.Errorf("load user schools: %w", err)
	}
	current, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("load user schools: %w", err)
	}

	add, remove := domain.DiffSchools(current, desired)
	if len(remove) > 0 {
		if _, err := tx.Exec(ctx,
			`DELETE FROM user_schools WHERE user_id = $1 AND school_uuid = ANY($2)`,
			userID, remove,
		); err != nil {
			return fmt.Errorf("unlink schools: %w", err)
		}
	}
	return linkSchools(ctx, tx, userID, add, assignedBy)
}

func linkSchools(ctx context.Context, tx pgx.Tx, userID int64, codes []string, assignedBy *int64) error {
	if len(codes) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, code := range codes {
		batch.Queue(
			`INSERT INTO user_schools (user_id, school_uuid, assigned_by) VALUES ($1, $2, $3)
			 ON CONFLICT (user_id, school_uuid) DO NOTHING`,
			userID, code, assignedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("unknown school code")
		}
		return fmt.Errorf("link schools: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, schoolCode string) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+`
		   FROM users u
		  WHERE $1 = '' OR EXISTS (
		        SELECT 1 FROM user_schools us WHERE us.user_id = u.id AND us.school_uuid = $1)
		  ORDER BY u.created_at DESC, u.id DESC`,
		schoolCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func mapUserWriteError(err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrUserExists
	case isForeignKeyViolation(err):
		return domain.Invalid("unknown school code")
	}
	return fmt.Errorf("write user: %w", err)
}
