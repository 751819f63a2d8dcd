package main

import (
	"context"

	"github.com/campuslink-app/backend/internal/router"
	"github.com/campuslink-app/backend/pkg/config"
	"github.com/campuslink-app/backend/pkg/firebase"
	"github.com/campuslink-app/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if !cfg.IsProduction() {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase; the server runs without it, with Firebase login
	// and push delivery disabled
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		logrus.WithError(err).Warn("Firebase unavailable, social login and push disabled")
		firebaseApp = nil
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, cfg)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseApp)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
