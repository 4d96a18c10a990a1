package ports

import (
	"context"

	"github.com/schoolshots/photo-intake/internal/core/domain"
)

// UpdateTeamInput carries the editable team fields. A nil IsActive leaves
// the flag unchanged.
type UpdateTeamInput struct {
	Name     string
	IsActive *bool
}

type TeamService interface {
	List(ctx context.Context) ([]*domain.Team, error)
	Create(ctx context.Context, actor *domain.Principal, name string) (*domain.Team, error)
	Update(ctx context.Context, id int64, in UpdateTeamInput) (*domain.Team, error)
	Delete(ctx context.Context, id int64) error
}
