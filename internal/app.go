// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "user-registration/internal/api"
	"user-registration/internal/api/handler"
	"user-registration/internal/api/views"
	"user-registration/internal/config"
	"user-registration/internal/migrations"
	"user-registration/internal/repository"
	"user-registration/internal/repository/postgres"
	"user-registration/internal/service"
	"user-registration/internal/util"
	"user-registration/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository repository.UserRepository

	// Services
	RegistrationService service.RegistrationService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		app.Logger = util.GetLogger()
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(ctx, app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if app.Config.AutoMigrate {
		if err := db.Migrate(ctx, app.DB.DB, migrations.FS); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		app.Logger.Info("Database migrations applied.")
	}

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository()

	// 5. Initialize Services
	app.RegistrationService = service.NewRegistrationService(
		app.DB,
		app.UserRepository,
		service.NewBcryptHasher(app.Config.BcryptCost),
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)

	// 6. Initialize HTTP Handlers and Router
	renderer, err := views.New()
	if err != nil {
		return fmt.Errorf("failed to load page templates: %w", err)
	}
	registrationHandler := handler.NewRegistrationHandler(app.RegistrationService, renderer, app.Logger)
	app.HTTPHandler = router.NewRouter(registrationHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
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
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
