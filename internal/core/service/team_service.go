package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

const maxCodeAttempts = 10

type teamService struct {
	teams   ports.TeamRepository
	newCode func() (string, error)
	log     zerolog.Logger
}

// NewTeamService returns a TeamService implementation.
func NewTeamService(teams ports.TeamRepository, log zerolog.Logger) ports.TeamService {
	return &teamService{teams: teams, newCode: randomTeamCode, log: log}
}

func (s *teamService) List(ctx context.Context) ([]*domain.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

// Create inserts a team under a freshly generated 4-digit code, retrying
// when the code is already taken.
func (s *teamService) Create(ctx context.Context, actor *domain.Principal, name string) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("name is required")
	}

	var createdBy *int64
	if actor != nil {
		id := actor.UserID
		createdBy = &id
	}

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("create team: generate code: %w", err)
		}

		team, err := s.teams.Create(ctx, &domain.Team{
			Code:      code,
			Name:      name,
			IsActive:  true,
			CreatedBy: createdBy,
			CreatedAt: time.Now().UTC(),
		})
		if errors.Is(err, domain.ErrTeamCodeTaken) {
			s.log.Debug().Str("code", code).Int("attempt", attempt).Msg("team code collision, retrying")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create team: %w", err)
		}

		s.log.Info().Str("code", team.Code).Str("name", team.Name).Msg("team created")
		return team, nil
	}

	return nil, fmt.Errorf("create team: %w after %d attempts", domain.ErrTeamCodeTaken, maxCodeAttempts)
}

func (s *teamService) Update(ctx context.Context, id int64, in ports.UpdateTeamInput) (*domain.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" && in.IsActive == nil {
		return nil, domain.Invalid("nothing to update")
	}

	team, err := s.teams.Update(ctx, id, name, in.IsActive)
	if err != nil {
		return nil, fmt.Errorf("update team: %w", err)
	}
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id int64) error {
	if err := s.teams.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	s.log.Info().Int64("team_id", id).Msg("team deleted")
	return nil
}

// randomTeamCode returns a uniformly random code in [1000, 9999].
func randomTeamCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+1000, 10), nil
}
