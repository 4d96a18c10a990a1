package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

func TestTeamHandler_CreateAndValidate(t *testing.T) {
	e := newEcho()
	handler := NewTeamHandler(&stubTeamService{
		createFn: func(_ context.Context, actor *domain.Principal, name string) (*domain.Team, error) {
			if name != "Lincoln Elementary" {
				t.Fatalf("unexpected name %q", name)
			}
			return &domain.Team{ID: 3, Code: "4321", Name: name, IsActive: true, CreatedBy: &actor.UserID}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := withPrincipal(e.NewContext(jsonRequest(http.MethodPost, "/teams", `{"name":"Lincoln Elementary"}`), rec), adminPrincipal)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"schoolCode":"4321"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	c = withPrincipal(e.NewContext(jsonRequest(http.MethodPost, "/teams", `{}`), httptest.NewRecorder()), adminPrincipal)
	var he *echo.HTTPError
	if err := handler.Create(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %v", err)
	}
}

func TestTeamHandler_UpdateAndDelete(t *testing.T) {
	e := newEcho()
	var got ports.UpdateTeamInput
	handler := NewTeamHandler(&stubTeamService{
		updateFn: func(_ context.Context, id int64, in ports.UpdateTeamInput) (*domain.Team, error) {
			got = in
			return &domain.Team{ID: id, Name: "Renamed", IsActive: *in.IsActive}, nil
		},
		deleteFn: func(context.Context, int64) error { return domain.ErrTeamHasPhotos },
	})

	c := withPrincipal(e.NewContext(jsonRequest(http.MethodPut, "/", `{"name":"Renamed","isActive":false}`), httptest.NewRecorder()), adminPrincipal)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Name != "Renamed" || got.IsActive == nil || *got.IsActive {
		t.Fatalf("unexpected update input: %+v", got)
	}

	if err := handler.Delete(c); !errors.Is(err, domain.ErrTeamHasPhotos) {
		t.Fatalf("expected ErrTeamHasPhotos, got %v", err)
	}
}
