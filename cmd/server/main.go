package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	"drivesync-backend/internal/api"
	"drivesync-backend/internal/config"
	"drivesync-backend/internal/logger"
	"drivesync-backend/internal/repository"
	"drivesync-backend/internal/repository/postgres"
	"drivesync-backend/internal/security"
	"drivesync-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DriveSync Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)
	repos := repository.Repos{
		Users:          store.UserRepository,
		Cars:           store.CarRepository,
		Rentals:        store.RentalRepository,
		Payments:       store.PaymentRepository,
		ChangeRequests: store.ChangeRequestRepository,
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Services
	emailSvc := service.NewSendGridEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository)
	carSvc := service.NewCarService(store.CarRepository, store.RentalRepository)
	rentalSvc := service.NewRentalService(store, repos, emailSvc, cfg.Rental.DeliveryFeeCents)
	changeSvc := service.NewChangeRequestService(store, repos, emailSvc)

	// Set up HTTP API
	router := api.NewRouter(api.Services{
		Auth:           authSvc,
		Users:          userSvc,
		Cars:           carSvc,
		Rentals:        rentalSvc,
		ChangeRequests: changeSvc,
		Tokens:         tokenManager,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
