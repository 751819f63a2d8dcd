package router

import (
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/campuslink-app/backend/internal/feed"
	"github.com/campuslink-app/backend/internal/handlers"
	"github.com/campuslink-app/backend/internal/middleware"
	"github.com/campuslink-app/backend/internal/models"
	"github.com/campuslink-app/backend/internal/push"
	"github.com/campuslink-app/backend/internal/repositories"
	"github.com/campuslink-app/backend/internal/storage"
	"github.com/campuslink-app/backend/pkg/config"
	"github.com/campuslink-app/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestID())
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.IsProduction())
	logrus.Info("Global middleware configured")
}

// errorCode maps an HTTP status to a stable machine-readable code
func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return "UPSTREAM_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// NewHTTPErrorHandler produces the uniform error envelope:
//
//	{"error": {"code": "...", "message": "...", "timestamp": "..."}}
//
// In production, 5xx messages are replaced with a generic message so internal
// details never leak to clients.
func NewHTTPErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		}

		if status >= 500 {
			logrus.WithFields(logrus.Fields{
				"status": status,
				"method": c.Request().Method,
				"path":   c.Path(),
			}).WithError(err).Error("Request failed")
			if production {
				message = "An internal error occurred"
			}
		}

		envelope := echo.Map{
			"error": echo.Map{
				"code":      errorCode(status),
				"message":   message,
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, envelope)
		}
		if err != nil {
			logrus.WithError(err).Error("Failed to write error response")
		}
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseApp *firebase.App) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Institute{},
		&models.Society{},
		&models.SocietyFollow{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
		&models.Report{},
		&models.SocietyInvitation{},
	)
	if err != nil {
		logrus.Fatalf("Failed to auto migrate models: %v", err)
	}
	logrus.Info("PostgreSQL auto-migrations completed for all models")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	instituteRepo := repositories.NewPostgresInstituteRepository(pgdb)
	societyRepo := repositories.NewPostgresSocietyRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	reportRepo := repositories.NewPostgresReportRepository(pgdb)
	invitationRepo := repositories.NewPostgresInvitationRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDatabase))

	// --- Push notifications ---
	var firebaseAuthClient *auth.Client
	var sender push.Sender
	if firebaseApp != nil {
		firebaseAuthClient = firebaseApp.AuthClient
		if firebaseApp.MessagingClient != nil {
			sender = firebaseApp.MessagingClient
		}
	}
	notifier := push.NewNotifier(sender, logrus.StandardLogger())

	// --- Media storage ---
	var uploader storage.Uploader
	if cfg.S3Bucket != "" {
		s3Client, err := storage.NewS3Client(cfg.S3Region, cfg.S3Bucket)
		if err != nil {
			logrus.WithError(err).Warn("S3 unavailable, media uploads disabled")
		} else {
			uploader = s3Client
		}
	}

	// --- Feed assembler ---
	assembler := feed.NewAssembler(followRepo, postRepo, likeRepo, logrus.StandardLogger())

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddlewareWithSecret(cfg.JWTSecret))
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerSecond, cfg.RateLimitBurst))

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	// Institute routes
	instituteHandler := handlers.NewInstituteHandler(instituteRepo)
	instituteHandler.RegisterInstituteRoutes(api)

	// Society routes
	societyHandler := handlers.NewSocietyHandler(societyRepo, followRepo, userRepo, notificationRepo, notifier)
	societyHandler.RegisterSocietyRoutes(api)

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, societyRepo, userRepo)
	postHandler.RegisterPostRoutes(api)

	// Feed routes
	feedHandler := handlers.NewFeedHandler(assembler, logrus.StandardLogger())
	feedHandler.RegisterFeedRoutes(api)

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, userRepo, notificationRepo, notifier)
	likeHandler.RegisterLikeRoutes(api)

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, notificationRepo, notifier)
	commentHandler.RegisterCommentRoutes(api)

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	// Report routes
	reportHandler := handlers.NewReportHandler(reportRepo, userRepo, notificationRepo, notifier)
	reportHandler.RegisterReportRoutes(api)

	// Invitation routes
	invitationHandler := handlers.NewInvitationHandler(invitationRepo, societyRepo, followRepo, userRepo, notificationRepo, notifier)
	invitationHandler.RegisterInvitationRoutes(api)

	// Media routes
	mediaHandler := handlers.NewMediaHandler(uploader)
	mediaHandler.RegisterMediaRoutes(api)

	// --- Admin routes ---
	admin := api.Group("/admin")
	admin.Use(middleware.AdminMiddleware())

	instituteHandler.RegisterAdminInstituteRoutes(admin)
	reportHandler.RegisterAdminReportRoutes(admin)

	analyticsHandler := handlers.NewAnalyticsHandler(userRepo, societyRepo, postRepo, followRepo, reportRepo)
	analyticsHandler.RegisterAnalyticsRoutes(admin)

	logrus.Info("All routes configured")
}
