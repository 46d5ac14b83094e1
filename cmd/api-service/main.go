package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/handler"
	"github.com/cuongbtq/interniq-be/internal/api/router"
	"github.com/cuongbtq/interniq-be/internal/api/service"
	"github.com/cuongbtq/interniq-be/internal/api/storage"
	"github.com/cuongbtq/interniq-be/internal/config"
	"github.com/cuongbtq/interniq-be/shared/database"
	"github.com/cuongbtq/interniq-be/shared/logger"
	"github.com/cuongbtq/interniq-be/shared/rabbitmq"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	// Parse command-line flags
	defaultConfigPath := os.Getenv("API_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/api-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateAPIConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger.Info("Starting API service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database client and schema
	dbClient, err := database.NewClient(cfg.Database.ClientConfig(), appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbClient.Close()

	if err := dbClient.Migrate(ctx, storage.Migrations); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	appLogger.Info("Database connection established")

	// Events are optional; without a broker the activity feed stays empty
	var events service.EventPublisher = service.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		rabbitClient, err := rabbitmq.NewClient(ctx, cfg.RabbitMQ.ClientConfig(), appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
		}
		defer rabbitClient.Close()

		events = service.NewRabbitPublisher(rabbitClient)
		appLogger.Info("RabbitMQ connection established")
	} else {
		appLogger.Warn("RabbitMQ disabled, activity events will be dropped")
	}

	deps, err := initDependencies(cfg, appLogger, dbClient, events)
	if err != nil {
		return err
	}

	// Initialize router
	r := initRouter(cfg.App.Environment, deps)

	// Create HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	appLogger.Info("Starting HTTP server",
		slog.String("address", addr),
		slog.Duration("read_timeout", cfg.Server.ReadTimeout),
		slog.Duration("write_timeout", cfg.Server.WriteTimeout),
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	appLogger.Info("API service is running",
		slog.String("address", addr),
	)

	// Wait for interrupt signal or a listener failure
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		appLogger.Error("Server failed to start",
			slog.Any("error", err),
		)
		return err
	}

	appLogger.Info("Shutting down server...")

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
		return err
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		Service:      "api-service",
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
		NoColor:      cfg.NoColor,
	}

	return logger.New(loggerCfg)
}

// initDependencies builds the services behind the HTTP handlers
func initDependencies(cfg *config.Config, appLogger *logger.Logger, dbClient *database.Client, events service.EventPublisher) (*handler.Dependencies, error) {
	store := storage.NewStorage(dbClient)

	identity, err := service.NewIdentity(store, service.IdentityConfig{
		Secret:     cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		Issuer:     cfg.Auth.Issuer,
		BcryptCost: cfg.Auth.BcryptCost,
	}, appLogger.Component("identity"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize identity: %w", err)
	}

	companies, err := service.NewCompanies()
	if err != nil {
		return nil, fmt.Errorf("failed to load company directory: %w", err)
	}

	catalog := service.NewCatalog(store, appLogger.Component("catalog"))
	tracker := service.NewTracker(store, catalog, events, service.TrackerConfig{
		IncrementRetries: cfg.Tracker.IncrementRetries,
		IncrementBackoff: cfg.Tracker.IncrementBackoff,
	}, appLogger.Component("tracker"))

	analyzer := service.NewPlaceholderAnalyzer(uint64(time.Now().UnixNano()))

	return &handler.Dependencies{
		Logger:         appLogger.Component("http"),
		DBClient:       dbClient,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Catalog:        catalog,
		Tracker:        tracker,
		Scorer:         service.NewScorer(store, analyzer, events, appLogger.Component("scorer")),
		Identity:       identity,
		Companies:      companies,
		Activity:       service.NewActivityFeed(store),
	}, nil
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(environment string, deps *handler.Dependencies) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	return router.SetupRouter(deps)
}
