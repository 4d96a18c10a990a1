package api

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/schoolshots/photo-intake/docs"
	"github.com/schoolshots/photo-intake/internal/api/handler"
	"github.com/schoolshots/photo-intake/internal/api/middleware"
	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/infrastructure/http/handlers"
	"github.com/schoolshots/photo-intake/web"
)

// RouterDeps collects everything NewRouter wires into routes.
type RouterDeps struct {
	Log      zerolog.Logger
	Verifier middleware.TokenVerifier

	Auth   *handler.AuthHandler
	Photos *handler.PhotoHandler
	Teams  *handler.TeamHandler
	Users  *handler.UserHandler
	Stats  *handler.StatsHandler

	Health    *handlers.HealthHandler
	Readiness *handlers.ReadinessHandler

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	// LoginRate is the sustained login attempts per second per client IP.
	LoginRate rate.Limit
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Authorization is declared per route group: public, any authenticated role,
// and admin only.
func NewRouter(d RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if d.LoginRate <= 0 {
		d.LoginRate = 1
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.Secure())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "photo_intake",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	authn := middleware.Auth(d.Verifier)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleClient)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	loginLimiter := echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStoreWithConfig(
		echomiddleware.RateLimiterMemoryStoreConfig{Rate: d.LoginRate, Burst: 5, ExpiresIn: 3 * time.Minute},
	))

	// --- Public ---
	e.POST("/auth/login", d.Auth.Login, loginLimiter)
	e.POST("/auth/logout", d.Auth.Logout)

	e.GET("/health", d.Health.Liveness)
	e.GET("/health/ready", d.Readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	registerUI(e)

	// --- Any authenticated role ---
	session := e.Group("/auth", authn, anyRole)
	session.GET("/me", d.Auth.Me)
	session.GET("/verify", d.Auth.Verify)

	photos := e.Group("/photos", authn)
	photos.GET("", d.Photos.List, anyRole, middleware.SchoolScope())
	photos.POST("", d.Photos.Submit, anyRole, middleware.SchoolScope())

	// --- Admin only ---
	photos.POST("/:id/approve", d.Photos.Approve, adminOnly)
	photos.POST("/:id/reject", d.Photos.Reject, adminOnly)
	photos.GET("/:id/events", d.Photos.Events, adminOnly)
	photos.DELETE("/:id", d.Photos.Delete, adminOnly)

	teams := e.Group("/teams", authn, adminOnly)
	teams.GET("", d.Teams.List)
	teams.POST("", d.Teams.Create)
	teams.PUT("/:id", d.Teams.Update)
	teams.DELETE("/:id", d.Teams.Delete)

	users := e.Group("/users", authn, adminOnly)
	users.GET("", d.Users.List)
	users.POST("", d.Users.Create)
	users.PUT("/:id", d.Users.Update)
	users.DELETE("/:id", d.Users.Delete)

	stats := e.Group("/stats", authn, adminOnly)
	stats.GET("", d.Stats.Dashboard)

	return e
}

// registerUI serves the embedded pages and their assets.
func registerUI(e *echo.Echo) {
	assets, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}

	pages := map[string]string{
		"/":        "index.html",
		"/login":   "login.html",
		"/admin":   "admin.html",
		"/capture": "capture.html",
	}
	for path, file := range pages {
		e.FileFS(path, file, assets)
	}
	e.StaticFS("/static", assets)

	e.GET("/favicon.ico", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
}
