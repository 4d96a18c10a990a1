package service

import (
	"context"
	"fmt"

	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

type statsService struct {
	photos ports.PhotoRepository
	teams  ports.TeamRepository
	users  ports.UserRepository
}

func NewStatsService(photos ports.PhotoRepository, teams ports.TeamRepository, users ports.UserRepository) ports.StatsService {
	return &statsService{photos: photos, teams: teams, users: users}
}

// Dashboard combines the photo counters with the team and user totals.
func (s *statsService) Dashboard(ctx context.Context) (*domain.Stats, error) {
	stats, err := s.photos.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if stats.Teams, err = s.teams.Count(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if stats.Users, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return stats, nil
}
