package ports

import (
	"context"
	"time"

	"github.com/schoolshots/photo-intake/internal/core/domain"
)

const (
	LoginAdmin  = "admin"
	LoginClient = "client"
)

// LoginInput covers both login forms: admins use Email, clients use
// SchoolCode and UserCode.
type LoginInput struct {
	Type       string
	Email      string
	SchoolCode string
	UserCode   string
	Password   string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal *domain.Principal
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Verify(ctx context.Context, token string) (*domain.Principal, error)
}
