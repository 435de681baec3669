package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/majikku/community-api/docs"
	"github.com/majikku/community-api/internal/api/handler"
	"github.com/majikku/community-api/internal/api/middleware"
	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

// Deps carries the constructed services the router wires into handlers.
type Deps struct {
	OAuth         handler.OAuthProvider
	RoleResolver  ports.RoleResolver
	Wiki          ports.WikiService
	Announcements ports.AnnouncementService
	Reports       handler.ReportSubmitter
	Roster        handler.RosterProvider

	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret  string
	SessionTTL time.Duration
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("majikku"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.OAuth, deps.RoleResolver, deps.JWTSecret, deps.SessionTTL, deps.Logger)
	wikiHandler := handler.NewWikiHandler(deps.Wiki)
	announcementHandler := handler.NewAnnouncementHandler(deps.Announcements)
	reportHandler := handler.NewReportHandler(deps.Reports)
	staffHandler := handler.NewStaffHandler(deps.Roster)
	auth := middleware.Auth(deps.JWTSecret)

	// --- Auth ---
	e.GET("/auth/login", authHandler.Login)
	e.GET("/auth/callback", authHandler.Callback)
	e.GET("/auth/me", authHandler.Me, auth)

	// --- Public content ---
	e.GET("/v1/announcements", announcementHandler.List)
	e.GET("/v1/announcements/:id", announcementHandler.Get)
	e.GET("/v1/wiki", wikiHandler.List)
	e.GET("/v1/staff", staffHandler.List)

	// --- Wiki (submissions registered before :slug so the router keeps the
	// queue routes distinct from page slugs) ---
	e.GET("/v1/wiki/submissions", wikiHandler.ListPending, auth, middleware.Require(domain.CapabilitySet.CanViewAdminPanel))
	e.GET("/v1/wiki/submissions/:id", wikiHandler.GetSubmission, auth, middleware.Require(domain.CapabilitySet.CanReviewWiki))
	e.POST("/v1/wiki/submissions/:id/review", wikiHandler.Review, auth, middleware.Require(domain.CapabilitySet.CanReviewWiki))
	e.GET("/v1/wiki/:slug", wikiHandler.Get)
	e.PUT("/v1/wiki/:slug", wikiHandler.Write, auth, middleware.Require(domain.CapabilitySet.CanSubmitWiki))
	e.DELETE("/v1/wiki/:slug", wikiHandler.Delete, auth, middleware.Require(domain.CapabilitySet.CanDeleteWiki))

	// --- Announcements (write side) ---
	e.POST("/v1/announcements", announcementHandler.Post, auth, middleware.RequireStaff())
	e.PUT("/v1/announcements/:id", announcementHandler.Edit, auth, middleware.RequireStaff())
	e.DELETE("/v1/announcements/:id", announcementHandler.Delete, auth, middleware.RequireStaff())

	// --- Reports (any authenticated member) ---
	e.POST("/v1/reports/application", reportHandler.Application, auth)
	e.POST("/v1/reports/appeal", reportHandler.Appeal, auth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
