package router

import (
	"github.com/anonto42/campus-social/backend/internal/handlers"
	"github.com/anonto42/campus-social/backend/internal/middleware"
	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/anonto42/campus-social/backend/internal/validators"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options configures the HTTP surface
type Options struct {
	CORSOrigins   []string
	SecureCookies bool
}

// New builds the echo app with middleware and every route wired to svc
func New(db *gorm.DB, svc *services.Services, logger *zap.Logger, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(logger)

	SetupMiddleware(e, svc.Auth, logger, opts)
	SetupRoutes(e, db, svc, opts)
	return e
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, auth middleware.Authenticator, logger *zap.Logger, opts Options) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins:     origins,
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
	}))
	e.Use(middleware.SessionMiddleware(auth))
}

// SetupRoutes configures all application routes
func SetupRoutes(e *echo.Echo, db *gorm.DB, svc *services.Services, opts Options) {
	e.GET("/health", handlers.NewHealthHandler(db).HealthCheck)

	requireAuth := middleware.RequireAuth()

	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(svc.Auth, opts.SecureCookies).RegisterAuthRoutes(authGroup)

	api := e.Group("/api/v1")
	handlers.NewUserHandler(svc.Users).RegisterProfileRoutes(api, requireAuth)
	handlers.NewFollowHandler(svc.Follows, svc.Users).RegisterFollowRoutes(api, requireAuth)
	handlers.NewFeedHandler(svc.Posts).RegisterFeedRoutes(api)
	handlers.NewPostHandler(svc.Posts).RegisterPostRoutes(api, requireAuth)
	handlers.NewLikeHandler(svc.Interactions).RegisterLikeRoutes(api, requireAuth)
	handlers.NewCommentHandler(svc.Interactions).RegisterCommentRoutes(api, requireAuth)
	handlers.NewNotificationHandler(svc.Notifications).RegisterNotificationRoutes(api, requireAuth)
	handlers.NewCommunityHandler(svc.Communities).RegisterCommunityRoutes(api, requireAuth)
}
