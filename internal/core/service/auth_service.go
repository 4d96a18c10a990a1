package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/schoolshots/photo-intake/internal/api/metrics"
	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

// TokenCodec abstracts the signed token format.
type TokenCodec interface {
	Issue(p domain.Principal) (string, time.Time, error)
	Verify(raw string) (*domain.Principal, error)
}

// AuthService implements admin and client login.
type AuthService struct {
	users  ports.UserRepository
	tokens TokenCodec
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens TokenCodec, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Login checks the credentials for the requested login type and issues a token.
// Unknown accounts and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	var (
		p   *domain.Principal
		err error
	)
	switch in.Type {
	case ports.LoginAdmin:
		p, err = s.loginAdmin(ctx, in)
	case ports.LoginClient:
		p, err = s.loginClient(ctx, in)
	default:
		return nil, domain.Invalid("type must be one of: admin client")
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(in.Type, "failure").Inc()
		return nil, err
	}

	token, exp, err := s.tokens.Issue(*p)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues(in.Type, "success").Inc()
	s.log.Info().Int64("user_id", p.UserID).Str("role", p.Role).Str("school", p.SchoolCode).Msg("login")

	return &ports.LoginResult{Token: token, ExpiresAt: exp, Principal: p}, nil
}

func (s *AuthService) loginAdmin(ctx context.Context, in ports.LoginInput) (*domain.Principal, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, credentialsError(err)
	}
	if user.Role != domain.RoleAdmin || !checkPassword(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.Principal{UserID: user.ID, UserCode: user.Code, Role: user.Role, Email: user.Email}, nil
}

func (s *AuthService) loginClient(ctx context.Context, in ports.LoginInput) (*domain.Principal, error) {
	if in.SchoolCode == "" || in.UserCode == "" || in.Password == "" {
		return nil, domain.Invalid("schoolCode, userCode and password are required")
	}

	user, err := s.users.FindByCode(ctx, in.UserCode)
	if err != nil {
		return nil, credentialsError(err)
	}
	if user.Role != domain.RoleClient || !checkPassword(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	linked, err := s.users.HasSchool(ctx, user.ID, in.SchoolCode)
	if err != nil {
		return nil, fmt.Errorf("login: check school link: %w", err)
	}
	if !linked {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.Principal{
		UserID:     user.ID,
		UserCode:   user.Code,
		SchoolCode: in.SchoolCode,
		Role:       user.Role,
		Email:      user.Email,
	}, nil
}

// Verify decodes a bearer token into its principal.
func (s *AuthService) Verify(_ context.Context, raw string) (*domain.Principal, error) {
	p, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return p, nil
}

// EnsureAdmin creates an admin account for email when none exists yet.
// It is a no-op when the email is already registered.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("ensure admin: %w", err)
	}

	last, err := s.users.LastCode(ctx)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	code, err := domain.NextUserCode(last)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Code:         code,
		Role:         domain.RoleAdmin,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	s.log.Info().Int64("user_id", created.ID).Str("email", email).Msg("bootstrap admin created")
	return nil
}

func credentialsError(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrInvalidCredentials
	}
	return fmt.Errorf("login: %w", err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
