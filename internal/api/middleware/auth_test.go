package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/pkg/token"
)

type codecVerifier struct {
	codec *token.Codec
}

func (v codecVerifier) Verify(_ context.Context, raw string) (*domain.Principal, error) {
	return v.codec.Verify(raw)
}

func issue(t *testing.T, codec *token.Codec, p domain.Principal) string {
	t.Helper()
	signed, _, err := codec.Issue(p)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	signed := issue(t, codec, domain.Principal{UserID: 3, UserCode: "1005", SchoolCode: "4321", Role: domain.RoleClient})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(codecVerifier{codec})(func(c echo.Context) error {
		called = true
		p := PrincipalFrom(c)
		if p == nil || p.UserID != 3 || p.SchoolCode != "4321" || p.Role != domain.RoleClient {
			t.Fatalf("principal not set correctly: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	other := token.NewCodec("other-secret", time.Hour)

	cases := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Basic abc",
		"empty bearer":    "Bearer ",
		"garbage token":   "Bearer not.a.jwt",
		"foreign secret":  "Bearer " + issue(t, other, domain.Principal{UserID: 1, Role: domain.RoleAdmin}),
		"unknown token":   "bearer x",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			err := Auth(codecVerifier{codec})(func(echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})(c)
			if code := statusOf(t, err); code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", code)
			}
		})
	}
}

func TestAuthAndRBAC_AdminOnlyRoute(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	adminToken := issue(t, codec, domain.Principal{UserID: 1, UserCode: "1000", Role: domain.RoleAdmin})
	clientToken := issue(t, codec, domain.Principal{UserID: 2, UserCode: "1005", SchoolCode: "4321", Role: domain.RoleClient})

	e := echo.New()
	admin := e.Group("/admin", Auth(codecVerifier{codec}), RBAC(domain.RoleAdmin))
	admin.GET("/stats", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	for tok, want := range map[string]int{adminToken: http.StatusNoContent, clientToken: http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("expected %d, got %d", want, rec.Code)
		}
	}
}
