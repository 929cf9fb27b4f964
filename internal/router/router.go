package router

import (
	"log"

	"cloud.google.com/go/firestore"
	"github.com/anonto42/forager-notifier/internal/handlers"
	"github.com/anonto42/forager-notifier/internal/middleware"
	"github.com/anonto42/forager-notifier/internal/notifications"
	"github.com/anonto42/forager-notifier/internal/repositories"
	"github.com/anonto42/forager-notifier/internal/triggers"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Dependencies are the clients built by main and shared by every route
type Dependencies struct {
	Firestore *firestore.Client
	Messenger notifications.Messenger
	// Optional notification archives.
	Postgres      *gorm.DB
	Mongo         *mongo.Client
	MongoDatabase string
	TriggerAuth   middleware.TriggerAuthConfig
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(eMiddleware.RequestLogger())
	e.Use(eMiddleware.Recover())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewFirestoreUserRepository(deps.Firestore)
	postRepo := repositories.NewFirestorePostRepository(deps.Firestore)
	notificationRepo := repositories.NewFanoutNotificationRepository(
		repositories.NewFirestoreNotificationRepository(deps.Firestore),
		mirrors(deps)...,
	)

	// --- Trigger routes ---
	t := triggers.New(userRepo, postRepo, notificationRepo, deps.Messenger)
	triggerGroup := e.Group("/triggers")
	triggerGroup.Use(middleware.TriggerAuthMiddleware(deps.TriggerAuth))
	handlers.NewTriggerHandler(t).RegisterTriggerRoutes(triggerGroup)
	log.Println("Trigger routes configured.")

	log.Println("All routes configured.")
}

func mirrors(deps Dependencies) []repositories.NotificationRepository {
	var out []repositories.NotificationRepository
	if deps.Postgres != nil {
		out = append(out, repositories.NewPostgresNotificationRepository(deps.Postgres))
		log.Println("Notifications mirrored to PostgreSQL.")
	}
	if deps.Mongo != nil {
		out = append(out, repositories.NewMongoNotificationRepository(deps.Mongo.Database(deps.MongoDatabase)))
		log.Println("Notifications mirrored to MongoDB.")
	}
	return out
}
