package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/api/handler"
	"github.com/campusjobboard/portal/internal/api/middleware"
	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/core/ports"
	"github.com/campusjobboard/portal/internal/session"
	"github.com/campusjobboard/portal/pkg/logger"
)

// Deps is everything the router wires into handlers and middleware.
type Deps struct {
	Log      zerolog.Logger
	Renderer echo.Renderer

	Sessions     ports.SessionStore
	SessionTTL   time.Duration
	CookieSecure bool
	Guard        *session.Guard

	AuthService    ports.AuthService
	AdminService   ports.AdminService
	ProfileService ports.ProfileService

	// Health lists the dependencies the readiness probe pings.
	Health map[string]handler.Pinger
	// Registerer receives the HTTP server metrics. Defaults to the
	// prometheus default registerer.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	registerer, gatherer := d.Registerer, d.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	// Metrics wrap the logger so they record the status committed by c.Error.
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "portal",
		Registerer: registerer,
		Skipper:    isProbe,
	}))
	e.Use(logger.Middleware(d.Log))
	e.Use(echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		Skipper:        isProbe,
		TokenLookup:    "form:csrf_token",
		ContextKey:     handler.CSRFContextKey,
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   d.CookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	}))
	e.Use(middleware.Session(middleware.SessionConfig{
		Skipper: isProbe,
		Store:   d.Sessions,
		TTL:     d.SessionTTL,
		Secure:  d.CookieSecure,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.Log)
	superAdminHandler := handler.NewSuperAdminHandler(d.AdminService, d.Log)
	setupHandler := handler.NewSetupHandler(d.ProfileService, d.Log)

	// --- Public pages ---
	e.GET("/", authHandler.Root)
	e.GET(domain.PathLogin, authHandler.LoginPage)
	e.POST(domain.PathLogin, authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)

	// --- Role dashboards ---
	e.GET(domain.PathStudentDashboard, handler.RoleDashboard("Student dashboard"),
		middleware.RequireRole(d.Guard, domain.RoleStudent))
	e.GET(domain.PathEmployerDashboard, handler.RoleDashboard("Employer dashboard"),
		middleware.RequireRole(d.Guard, domain.RoleEmployer))
	e.GET(domain.PathAdminDashboard, handler.RoleDashboard("Admin dashboard"),
		middleware.RequireRole(d.Guard, domain.RoleAdmin))

	// --- Super admin ---
	sa := e.Group("/superadmin", middleware.RequireRole(d.Guard, domain.RoleSuperAdmin))
	sa.GET("/dashboard", superAdminHandler.Dashboard)
	sa.POST("/admins", superAdminHandler.CreateAdmin)
	sa.GET("/admins/:id/delete", superAdminHandler.ConfirmDelete)
	sa.POST("/admins/:id/delete", superAdminHandler.DeleteAdmin)
	sa.GET("/setup", setupHandler.SetupPage)
	sa.POST("/setup", setupHandler.UpdateProfile)

	// --- Health probes and metrics (no session required) ---
	healthHandler := handler.NewHealthHandler(d.Health)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	return e
}

func isProbe(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health")
}
