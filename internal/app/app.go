// Package app wires configuration, scoring and storage into the matcher
// service shared by the server, the Lambda functions and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/services/database"
	"retirement-match-engine/internal/services/matcher"
	"retirement-match-engine/internal/services/metrics"
	"retirement-match-engine/internal/services/normalizer"
	"retirement-match-engine/internal/services/scoring"
)

// App holds the wired components.
type App struct {
	Config  *config.Config
	Scoring *config.Scoring
	Engine  *scoring.Engine
	Metrics *metrics.Metrics
	Matcher *matcher.Service
	// DB is nil when no database is configured or it could not be reached.
	DB *database.DB
}

// Options control optional components.
type Options struct {
	// Registerer receives the scoring metrics; nil disables metrics.
	Registerer prometheus.Registerer
	// ConnectDB opens the Postgres pool when the config names a database.
	ConnectDB bool
}

// New builds the application. An unreachable database is logged and
// skipped so scoring of posted data still works.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sc, validation, err := cfg.LoadScoringFor()
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring config: %w", err)
	}
	for _, w := range validation.Warnings {
		logger.Warn("Scoring config warning", zap.String("warning", w))
	}

	engine, err := scoring.New(sc, scoring.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring engine: %w", err)
	}

	var m *metrics.Metrics
	if opts.Registerer != nil {
		m = metrics.NewWithRegistry(opts.Registerer)
	}

	a := &App{
		Config:  cfg,
		Scoring: sc,
		Engine:  engine,
		Metrics: m,
		Matcher: matcher.NewService(engine, normalizer.New(logger, sc.Hobbies), m, logger),
	}

	if opts.ConnectDB && cfg.DatabaseConfigured() {
		db, err := database.New(ctx, cfg)
		if err != nil {
			logger.Warn("Database unavailable, stored profiles disabled", zap.Error(err))
		} else {
			a.DB = db
			a.Matcher.WithRepositories(database.NewPreferenceRepository(db), database.NewTownRepository(db))
		}
	}

	logger.Info("Scoring engine ready",
		zap.String("scoring_version", engine.Version()),
		zap.Int("concurrency", engine.Concurrency()),
		zap.Bool("database", a.DB != nil),
	)
	return a, nil
}

// Pinger returns the database as a health pinger, or nil.
func (a *App) Pinger() interface {
	HealthCheck(ctx context.Context) error
} {
	if a.DB == nil {
		return nil
	}
	return a.DB
}

// Close releases held resources.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
