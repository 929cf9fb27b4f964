package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/forager-notifier/internal/middleware"
	"github.com/anonto42/forager-notifier/internal/router"
	"github.com/anonto42/forager-notifier/pkg/config"
	"github.com/anonto42/forager-notifier/pkg/firebase"
	"github.com/anonto42/forager-notifier/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the optional notification archives
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseProjectID)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer firebaseApp.Close()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, router.Dependencies{
		Firestore:     firebaseApp.Firestore,
		Messenger:     firebaseApp.Messaging,
		Postgres:      db.Postgres,
		Mongo:         db.Mongo,
		MongoDatabase: db.MongoDatabase,
		TriggerAuth: middleware.TriggerAuthConfig{
			Audience: cfg.TriggerAudience,
			Secret:   cfg.TriggerJWTSecret,
		},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Notifier listening on %s (env=%s, trigger auth=%t)", srv.Addr, cfg.Env, cfg.TriggerAuthEnabled())
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Printf("Server error: %v", err)
	case sig := <-quit:
		log.Printf("Shutting down server (%s)", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
