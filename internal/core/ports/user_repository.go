package ports

import (
	"context"

	"github.com/schoolshots/photo-intake/internal/core/domain"
)

// UserUpdate carries the mutable fields of a user. Empty strings leave the
// column untouched; a nil Schools leaves the links untouched.
type UserUpdate struct {
	Role       string
	Code       string
	Schools    []string
	AssignedBy *int64
}

// UserRepository defines persistence operations for users and their school links.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByCode(ctx context.Context, code string) (*domain.User, error)
	// HasSchool reports whether the user is linked to schoolCode.
	HasSchool(ctx context.Context, userID int64, schoolCode string) (bool, error)
	// LastCode returns the highest user code in use, or "" when there are no users.
	LastCode(ctx context.Context) (string, error)
	// Create inserts the user and links it to u.Schools in one transaction.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	// Update applies upd in one transaction. When upd.Schools is non-nil the
	// links are synced to exactly that list.
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	// List returns users, newest first. A non-empty schoolCode keeps only
	// users linked to that school.
	List(ctx context.Context, schoolCode string) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
