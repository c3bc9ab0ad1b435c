package core

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/vrsandeep/mango-easyyomi/internal/config"
	"github.com/vrsandeep/mango-easyyomi/internal/db"
	"github.com/vrsandeep/mango-easyyomi/internal/models"
	"github.com/vrsandeep/mango-easyyomi/internal/sources/easyyomi"
	"github.com/vrsandeep/mango-easyyomi/internal/store"
)

// App holds the core components of the application that are shared
// between the server and the CLI.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Store  *store.Store
	// HTTPClient is the generic client every source derives its own from.
	HTTPClient *http.Client
}

// New sets up and returns a new App instance. It handles loading the
// configuration, initializing the database connection, and running migrations.
func New() (*App, error) {
	// Load configuration from config.yml
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize the database connection
	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	if err := db.RunMigrations(database); err != nil {
		// We can't proceed without a valid database schema.
		// Close the DB connection before failing.
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	log.Println("Core application setup complete.")
	return NewWithDB(cfg, database), nil
}

// NewWithDB assembles an App around an already migrated database.
func NewWithDB(cfg *config.Config, database *sql.DB) *App {
	return &App{
		Config:     cfg,
		DB:         database,
		Store:      store.New(database),
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.HTTP.Timeout) * time.Second},
	}
}

// SourceOptions returns what every source instance receives from the host.
func (a *App) SourceOptions() easyyomi.Options {
	return easyyomi.Options{
		Client: a.HTTPClient,
		Preferences: func(sourceID int64) models.Preferences {
			return a.Store.Preferences(easyyomi.PreferenceNamespace(sourceID))
		},
		AppVersion: a.Config.App.Version,
		VersionID:  a.Config.Source.VersionID,
	}
}

// CreateSources builds the configured source instances.
func (a *App) CreateSources() ([]models.Source, error) {
	return easyyomi.Factory{
		Suffixes: a.Config.Source.Suffixes,
		Options:  a.SourceOptions(),
	}.CreateSources()
}

// Close gracefully closes the application's resources, like the DB connection.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
