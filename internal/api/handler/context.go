package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/schoolshots/photo-intake/internal/api/middleware"
	"github.com/schoolshots/photo-intake/internal/core/domain"
)

// ctxPrincipal returns the principal injected by the Auth middleware. A
// client principal without a school is structurally valid but unusable.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if p.Role == domain.RoleClient && p.SchoolCode == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing school identity")
	}
	return p, nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
