package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

type userService struct {
	users ports.UserRepository
	teams ports.TeamRepository
	log   zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(users ports.UserRepository, teams ports.TeamRepository, log zerolog.Logger) ports.UserService {
	return &userService{users: users, teams: teams, log: log}
}

func (s *userService) List(ctx context.Context, schoolCode string) ([]*domain.User, error) {
	if schoolCode != "" && !domain.IsCode(schoolCode) {
		return nil, domain.Invalid("schoolCode must be a 4-digit code")
	}
	users, err := s.users.List(ctx, schoolCode)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create registers a new account with the default password P<code>.
func (s *userService) Create(ctx context.Context, actor *domain.Principal, in ports.CreateUserInput) (*ports.CreatedUser, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleClient
	}
	if !domain.ValidRole(role) {
		return nil, domain.Invalid("role must be one of: admin client")
	}

	email := normalizeEmail(in.Email)
	if role == domain.RoleAdmin && email == "" {
		return nil, domain.Invalid("email is required for admin users")
	}

	schools, err := s.checkSchools(ctx, in.Schools)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleClient && len(schools) == 0 {
		return nil, domain.Invalid("client users need at least one school")
	}

	code := in.Code
	if code == "" {
		last, err := s.users.LastCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		if code, err = domain.NextUserCode(last); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	} else if !domain.IsCode(code) {
		return nil, domain.Invalid("userCode must be a 4-digit code")
	}

	password := domain.DefaultPassword(code)
	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	var createdBy *int64
	if actor != nil {
		id := actor.UserID
		createdBy = &id
	}

	user, err := s.users.Create(ctx, &domain.User{
		Code:         code,
		Role:         role,
		Email:        email,
		PasswordHash: hash,
		Schools:      schools,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Str("code", user.Code).Strs("schools", user.Schools).Msg("user created")
	return &ports.CreatedUser{User: user, GeneratedPassword: password}, nil
}

// Update changes role and code, and when a school list is given replaces
// the user's links with exactly that list.
func (s *userService) Update(ctx context.Context, actor *domain.Principal, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	if in.Role != "" && !domain.ValidRole(in.Role) {
		return nil, domain.Invalid("role must be one of: admin client")
	}
	if in.Code != "" && !domain.IsCode(in.Code) {
		return nil, domain.Invalid("userCode must be a 4-digit code")
	}

	upd := ports.UserUpdate{Role: in.Role, Code: in.Code}
	if actor != nil {
		by := actor.UserID
		upd.AssignedBy = &by
	}

	if in.Schools != nil {
		schools, err := s.checkSchools(ctx, *in.Schools)
		if err != nil {
			return nil, err
		}
		upd.Schools = schools
		if upd.Schools == nil {
			upd.Schools = []string{}
		}
	}

	user, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Strs("schools", user.Schools).Msg("user updated")
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor *domain.Principal, id int64) error {
	if actor != nil && actor.UserID == id {
		return domain.Invalid("you cannot delete your own account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// checkSchools trims and de-duplicates codes and verifies each one belongs
// to an existing team.
func (s *userService) checkSchools(ctx context.Context, codes []string) ([]string, error) {
	var out []string
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" || slices.Contains(out, c) {
			continue
		}
		if !domain.IsCode(c) {
			return nil, domain.Invalid(fmt.Sprintf("invalid school code %q", c))
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, nil
	}

	missing, err := s.teams.MissingCodes(ctx, out)
	if err != nil {
		return nil, fmt.Errorf("check schools: %w", err)
	}
	if len(missing) > 0 {
		return nil, domain.Invalid("unknown school code: " + strings.Join(missing, ", "))
	}
	return out, nil
}
