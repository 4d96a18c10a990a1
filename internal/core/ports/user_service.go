package ports

import (
	"context"

	"github.com/schoolshots/photo-intake/internal/core/domain"
)

// CreateUserInput carries the fields of a new account. An empty Code asks
// the service to allocate the next one.
type CreateUserInput struct {
	Code    string
	Role    string
	Email   string
	Schools []string
}

// CreatedUser is the new account plus the password generated for it. The
// password is only ever returned here.
type CreatedUser struct {
	User              *domain.User
	GeneratedPassword string
}

// UpdateUserInput carries the editable user fields. A nil Schools leaves the
// links unchanged; a non-nil one replaces them.
type UpdateUserInput struct {
	Role    string
	Code    string
	Schools *[]string
}

type UserService interface {
	List(ctx context.Context, schoolCode string) ([]*domain.User, error)
	Create(ctx context.Context, actor *domain.Principal, in CreateUserInput) (*CreatedUser, error)
	Update(ctx context.Context, actor *domain.Principal, id int64, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.Principal, id int64) error
}
