package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/schoolshots/photo-intake/internal/api/handler"
	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
	"github.com/schoolshots/photo-intake/internal/infrastructure/http/handlers"
)

type tokenTable map[string]*domain.Principal

func (t tokenTable) Verify(_ context.Context, token string) (*domain.Principal, error) {
	if p, ok := t[token]; ok {
		return p, nil
	}
	return nil, domain.ErrUnauthorized
}

// photoLister records the filter of the last List call; other methods are
// unreachable in these tests.
type photoLister struct {
	ports.PhotoService
	last ports.PhotoFilter
}

func (p *photoLister) List(_ context.Context, _ *domain.Principal, f ports.PhotoFilter) ([]*domain.Photo, error) {
	p.last = f
	return []*domain.Photo{}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *photoLister) {
	t.Helper()
	photos := &photoLister{}
	reg := prometheus.NewRegistry()
	e := NewRouter(RouterDeps{
		Log: zerolog.Nop(),
		Verifier: tokenTable{
			"admin-token":  {UserID: 1, UserCode: "1000", Role: domain.RoleAdmin},
			"client-token": {UserID: 5, UserCode: "1005", SchoolCode: "4321", Role: domain.RoleClient},
		},
		Auth:       handler.NewAuthHandler(nil),
		Photos:     handler.NewPhotoHandler(photos, 1024),
		Teams:      handler.NewTeamHandler(nil),
		Users:      handler.NewUserHandler(nil),
		Stats:      handler.NewStatsHandler(nil),
		Health:     handlers.NewHealthHandler(),
		Readiness:  handlers.NewReadinessHandler(),
		Registerer: reg,
		Gatherer:   reg,
	})
	return e, photos
}

func do(h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RouteGroups(t *testing.T) {
	h, _ := newTestRouter(t)

	cases := []struct {
		name   string
		method string
		target string
		token  string
		code   int
	}{
		{"liveness is public", http.MethodGet, "/health", "", http.StatusOK},
		{"readiness is public", http.MethodGet, "/health/ready", "", http.StatusOK},
		{"logout is public", http.MethodPost, "/auth/logout", "", http.StatusOK},
		{"me needs a token", http.MethodGet, "/auth/me", "", http.StatusUnauthorized},
		{"me for a client", http.MethodGet, "/auth/me", "client-token", http.StatusOK},
		{"unknown token", http.MethodGet, "/auth/verify", "forged", http.StatusUnauthorized},
		{"teams are admin only", http.MethodGet, "/teams", "client-token", http.StatusForbidden},
		{"users are admin only", http.MethodGet, "/users", "client-token", http.StatusForbidden},
		{"stats are admin only", http.MethodGet, "/stats", "client-token", http.StatusForbidden},
		{"approve is admin only", http.MethodPost, "/photos/3/approve", "client-token", http.StatusForbidden},
		{"delete is admin only", http.MethodDelete, "/photos/3", "client-token", http.StatusForbidden},
		{"photos need a token", http.MethodGet, "/photos", "", http.StatusUnauthorized},
		{"ui index", http.MethodGet, "/", "", http.StatusOK},
		{"ui capture", http.MethodGet, "/capture", "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := do(h, tc.method, tc.target, tc.token); rec.Code != tc.code {
				t.Fatalf("%s %s: expected %d, got %d (%s)", tc.method, tc.target, tc.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_ClientPhotoListIsScoped(t *testing.T) {
	h, photos := newTestRouter(t)

	rec := do(h, http.MethodGet, "/photos?schoolCode=9999&status=pending", "client-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if photos.last.SchoolCode != "4321" || photos.last.Status != domain.PhotoPending {
		t.Fatalf("client filter not pinned to own school: %+v", photos.last)
	}

	rec = do(h, http.MethodGet, "/photos?schoolCode=9999", "admin-token")
	if rec.Code != http.StatusOK || photos.last.SchoolCode != "9999" {
		t.Fatalf("admin filter should pass through, got %d %+v", rec.Code, photos.last)
	}
}

func TestRouter_UnknownRouteUsesErrorEnvelope(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodGet, "/does-not-exist", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("expected 404 error envelope, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_MetricsExposed(t *testing.T) {
	h, _ := newTestRouter(t)
	do(h, http.MethodGet, "/health", "")

	rec := do(h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "photo_intake_http_requests_total") {
		t.Fatalf("expected http metrics, got %d", rec.Code)
	}
}
