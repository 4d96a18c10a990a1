package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/schoolshots/photo-intake/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.Invalid("file is required"), http.StatusBadRequest, "file is required"},
		{fmt.Errorf("create user: %w", domain.Invalid("unknown school code: 7777")), http.StatusBadRequest, "unknown school code: 7777"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{fmt.Errorf("submit photo: %w", domain.ErrTeamNotFound), http.StatusNotFound, "team not found"},
		{domain.ErrPhotoNotFound, http.StatusNotFound, "photo not found"},
		{domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{fmt.Errorf("delete team: %w", domain.ErrTeamHasPhotos), http.StatusConflict, "team still has photos"},
		{domain.ErrApprovalInProgress, http.StatusConflict, "approval already in progress"},
		{echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"), http.StatusUnauthorized, "missing authorization header"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_InvalidTransitionKeepsDetail(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	err := fmt.Errorf("approve photo: %w (from rejected to approved)", domain.ErrInvalidTransition)
	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
