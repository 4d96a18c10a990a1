package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/schoolshots/photo-intake/internal/api/middleware"
	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

var (
	adminPrincipal  = &domain.Principal{UserID: 1, UserCode: "1000", Role: domain.RoleAdmin, Email: "admin@school.test"}
	clientPrincipal = &domain.Principal{UserID: 5, UserCode: "1005", SchoolCode: "4321", Role: domain.RoleClient}
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func withPrincipal(c echo.Context, p *domain.Principal) echo.Context {
	c.Set(middleware.PrincipalKey, p)
	return c
}

type stubAuthService struct {
	loginFn  func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error)
	verifyFn func(ctx context.Context, token string) (*domain.Principal, error)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Verify(ctx context.Context, token string) (*domain.Principal, error) {
	return s.verifyFn(ctx, token)
}

type stubPhotoService struct {
	submitFn  func(ctx context.Context, actor *domain.Principal, in ports.SubmitPhotoInput) (*domain.Photo, error)
	listFn    func(ctx context.Context, actor *domain.Principal, f ports.PhotoFilter) ([]*domain.Photo, error)
	approveFn func(ctx context.Context, actor *domain.Principal, id int64) (*ports.ApprovalResult, error)
	rejectFn  func(ctx context.Context, actor *domain.Principal, id int64) (*domain.Photo, error)
	deleteFn  func(ctx context.Context, actor *domain.Principal, id int64) error
	eventsFn  func(ctx context.Context, id int64) ([]domain.PhotoEvent, error)
}

func (s *stubPhotoService) Submit(ctx context.Context, actor *domain.Principal, in ports.SubmitPhotoInput) (*domain.Photo, error) {
	return s.submitFn(ctx, actor, in)
}

func (s *stubPhotoService) List(ctx context.Context, actor *domain.Principal, f ports.PhotoFilter) ([]*domain.Photo, error) {
	return s.listFn(ctx, actor, f)
}

func (s *stubPhotoService) Approve(ctx context.Context, actor *domain.Principal, id int64) (*ports.ApprovalResult, error) {
	return s.approveFn(ctx, actor, id)
}

func (s *stubPhotoService) Reject(ctx context.Context, actor *domain.Principal, id int64) (*domain.Photo, error) {
	return s.rejectFn(ctx, actor, id)
}

func (s *stubPhotoService) Delete(ctx context.Context, actor *domain.Principal, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubPhotoService) Events(ctx context.Context, id int64) ([]domain.PhotoEvent, error) {
	return s.eventsFn(ctx, id)
}

type stubUserService struct {
	listFn   func(ctx context.Context, school string) ([]*domain.User, error)
	createFn func(ctx context.Context, actor *domain.Principal, in ports.CreateUserInput) (*ports.CreatedUser, error)
	updateFn func(ctx context.Context, actor *domain.Principal, id int64, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, actor *domain.Principal, id int64) error
}

func (s *stubUserService) List(ctx context.Context, school string) ([]*domain.User, error) {
	return s.listFn(ctx, school)
}

func (s *stubUserService) Create(ctx context.Context, actor *domain.Principal, in ports.CreateUserInput) (*ports.CreatedUser, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubUserService) Update(ctx context.Context, actor *domain.Principal, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, actor *domain.Principal, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

type stubTeamService struct {
	listFn   func(ctx context.Context) ([]*domain.Team, error)
	createFn func(ctx context.Context, actor *domain.Principal, name string) (*domain.Team, error)
	updateFn func(ctx context.Context, id int64, in ports.UpdateTeamInput) (*domain.Team, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubTeamService) List(ctx context.Context) ([]*domain.Team, error) {
	return s.listFn(ctx)
}

func (s *stubTeamService) Create(ctx context.Context, actor *domain.Principal, name string) (*domain.Team, error) {
	return s.createFn(ctx, actor, name)
}

func (s *stubTeamService) Update(ctx context.Context, id int64, in ports.UpdateTeamInput) (*domain.Team, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubTeamService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}
