// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"

	router "exercise-tracker/internal/api"
	"exercise-tracker/internal/api/handler"
	"exercise-tracker/internal/config"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/repository/memory"
	"exercise-tracker/internal/repository/mongodb"
	"exercise-tracker/internal/repository/postgres"
	"exercise-tracker/internal/service"
	"exercise-tracker/internal/util"
	"exercise-tracker/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger

	// Storage handles; at most one is set depending on the configured driver.
	DB    *sqlx.DB
	Mongo *mongo.Client

	// Repositories
	UserRepository     repository.UserRepository
	ExerciseRepository repository.ExerciseRepository

	// Services
	TrackerService service.TrackerService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{Logger: util.GetLogger()}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to storage and build repositories
	if err := app.initStorage(ctx); err != nil {
		return err
	}
	app.Logger.Info("Repositories initialized.")

	// 4. Initialize Services
	app.TrackerService = service.NewTrackerService(app.UserRepository, app.ExerciseRepository)
	app.Logger.Info("Services initialized.")

	// 5. Initialize HTTP Handlers and Router
	trackerHandler := handler.NewTrackerHandler(app.TrackerService, app.Logger)
	viewHandler := handler.NewViewHandler(app.TrackerService, app.Logger)
	app.HTTPHandler = router.NewRouter(trackerHandler, viewHandler, app.Logger, router.RouterOptions{
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
	})
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

func (app *Application) initStorage(ctx context.Context) error {
	driver, err := app.Config.DB.Driver()
	if err != nil {
		return err
	}

	switch driver {
	case db.DriverPostgres:
		database, err := db.NewPostgresDB(ctx, app.Config.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = database
		if err := postgres.EnsureSchema(ctx, database); err != nil {
			return fmt.Errorf("failed to prepare database schema: %w", err)
		}
		app.UserRepository = postgres.NewUserRepository(database)
		app.ExerciseRepository = postgres.NewExerciseRepository(database)

	case db.DriverMongo:
		client, database, err := db.NewMongoDatabase(ctx, app.Config.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.Mongo = client
		if err := mongodb.EnsureIndexes(ctx, database); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
		app.UserRepository = mongodb.NewUserRepository(database)
		app.ExerciseRepository = mongodb.NewExerciseRepository(database)

	case db.DriverMemory:
		store := memory.NewStore()
		app.UserRepository = store.Users()
		app.ExerciseRepository = store.Exercises()
	}

	app.Logger.Info("Database connection established.", "driver", string(driver))
	return nil
}

// NewHTTPServer returns the HTTP server for the initialized application.
func (app *Application) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + app.Config.ServerPort,
		Handler:      app.HTTPHandler,
		ReadTimeout:  app.Config.HTTP.ReadTimeout,
		WriteTimeout: app.Config.HTTP.WriteTimeout,
		IdleTimeout:  app.Config.HTTP.IdleTimeout,
	}
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	if app.Mongo != nil {
		if err := app.Mongo.Disconnect(ctx); err != nil {
			app.Logger.Error("Failed to disconnect from MongoDB", "error", err)
			return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
		}
		app.Logger.Info("MongoDB client disconnected.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
