package handler

import (
	"time"

	"github.com/schoolshots/photo-intake/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Type       string `json:"type"       validate:"required,oneof=admin client"`
	Email      string `json:"email"      validate:"omitempty,email"`
	SchoolCode string `json:"schoolCode" validate:"omitempty,len=4,numeric"`
	UserCode   string `json:"userCode"   validate:"omitempty,len=4,numeric"`
	Password   string `json:"password"   validate:"required"`
}

type loginResponse struct {
	Success   bool              `json:"success"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      *domain.Principal `json:"user"`
}

type verifyResponse struct {
	Valid bool              `json:"valid"`
	User  *domain.Principal `json:"user"`
}

// --- Photos ---

type photoListResponse struct {
	Photos []*domain.Photo `json:"photos"`
	Total  int             `json:"total"`
}

type photoResponse struct {
	Success bool          `json:"success"`
	Photo   *domain.Photo `json:"photo"`
	Message string        `json:"message"`
}

type approvalResponse struct {
	Success      bool          `json:"success"`
	Photo        *domain.Photo `json:"photo"`
	MirrorStatus string        `json:"mirrorStatus"`
	MirrorError  string        `json:"mirrorError,omitempty"`
	Message      string        `json:"message"`
}

type photoEventsResponse struct {
	Events []domain.PhotoEvent `json:"events"`
	Total  int                 `json:"total"`
}

// --- Teams ---

type createTeamRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type updateTeamRequest struct {
	Name     string `json:"name"     validate:"omitempty,max=120"`
	IsActive *bool  `json:"isActive"`
}

type teamListResponse struct {
	Teams []*domain.Team `json:"teams"`
	Total int            `json:"total"`
}

type teamResponse struct {
	Success bool         `json:"success"`
	Team    *domain.Team `json:"team"`
	Message string       `json:"message"`
}

// --- Users ---

type createUserRequest struct {
	UserCode string   `json:"userCode" validate:"omitempty,len=4,numeric"`
	Role     string   `json:"role"     validate:"omitempty,oneof=admin client"`
	Email    string   `json:"email"    validate:"omitempty,email"`
	Schools  []string `json:"schools"  validate:"omitempty,dive,len=4,numeric"`
}

type updateUserRequest struct {
	UserCode string    `json:"userCode" validate:"omitempty,len=4,numeric"`
	Role     string    `json:"role"     validate:"omitempty,oneof=admin client"`
	Schools  *[]string `json:"schools"  validate:"omitempty,dive,len=4,numeric"`
}

type userListResponse struct {
	Users []*domain.User `json:"users"`
	Total int            `json:"total"`
}

type userResponse struct {
	Success           bool         `json:"success"`
	User              *domain.User `json:"user"`
	GeneratedPassword string       `json:"generatedPassword,omitempty"`
	Message           string       `json:"message"`
}

// --- Stats ---

type statsResponse struct {
	Success bool          `json:"success"`
	Stats   *domain.Stats `json:"stats"`
}
