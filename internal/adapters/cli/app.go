package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/andrescamacho/mediator-go/internal/adapters/metrics"
	"github.com/andrescamacho/mediator-go/internal/adapters/persistence"
	"github.com/andrescamacho/mediator-go/internal/application/logging"
	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/internal/application/setup"
	"github.com/andrescamacho/mediator-go/internal/infrastructure/config"
	"github.com/andrescamacho/mediator-go/internal/infrastructure/database"
)

// App holds what the commands need. Fields left nil are built from
// configuration the first time a command runs.
type App struct {
	Config   *config.Config
	Mediator mediator.Mediator
	Metrics  *prometheus.Registry

	db     *gorm.DB
	logger *logging.ZapLogger
}

// init loads configuration and wires the mediator over the configured database
func (a *App) init(configPath string) error {
	if a.Mediator != nil {
		return nil
	}

	if a.Config == nil {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.Config = cfg
	}

	logger, err := logging.NewProductionLogger(a.Config.Logging.Level, a.Config.Logging.Format)
	if err != nil {
		return err
	}
	a.logger = logger

	db, err := database.NewConnection(&a.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	a.db = db

	deps := setup.PipelineDependencies{Logger: logger, DB: db}
	if a.Config.Metrics.Enabled {
		if a.Metrics == nil {
			a.Metrics = metrics.InitRegistry()
		}
		collector := metrics.NewDispatchMetricsCollector()
		if err := collector.Register(a.Metrics); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		deps.Collector = collector
	}

	registry := setup.NewHandlerRegistry(persistence.NewGormUserRepository(db), nil)
	m, err := registry.CreateConfiguredMediator(a.Config.Pipeline, deps)
	if err != nil {
		return err
	}
	a.Mediator = m
	return nil
}

// Close releases the database and flushes logs
func (a *App) Close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.db != nil {
		_ = database.Close(a.db)
	}
}
