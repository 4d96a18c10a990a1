package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC enforces role-based access control on the principal set by Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !p.HasRole(allowedRoles...) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// SchoolScope pins the schoolCode query parameter of client principals to
// their own school. Admin requests pass through untouched.
func SchoolScope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if p == nil || p.IsAdmin() {
				return next(c)
			}

			school := p.ScopedSchool()
			if school == "" {
				return echo.NewHTTPError(http.StatusForbidden, "token carries no school")
			}

			c.QueryParams().Set("schoolCode", school)
			q := c.Request().URL.Query()
			q.Set("schoolCode", school)
			c.Request().URL.RawQuery = q.Encode()

			return next(c)
		}
	}
}
