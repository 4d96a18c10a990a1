package ports

import (
	"context"

	"github.com/schoolshots/photo-intake/internal/core/domain"
)

// TeamRepository defines persistence operations for teams (schools).
type TeamRepository interface {
	// Create returns domain.ErrTeamCodeTaken when t.Code is already used.
	Create(ctx context.Context, t *domain.Team) (*domain.Team, error)
	FindByCode(ctx context.Context, code string) (*domain.Team, error)
	// Update changes the name (when non-empty) and the active flag (when non-nil).
	Update(ctx context.Context, id int64, name string, isActive *bool) (*domain.Team, error)
	// Delete returns domain.ErrTeamHasPhotos while photos still reference the team.
	Delete(ctx context.Context, id int64) error
	// List returns every team with its linked users, newest first.
	List(ctx context.Context) ([]*domain.Team, error)
	// MissingCodes returns the codes from codes that do not belong to any team.
	MissingCodes(ctx context.Context, codes []string) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
