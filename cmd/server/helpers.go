package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Skufu/GlucoRisk/internal/artifact"
	"github.com/Skufu/GlucoRisk/internal/config"
	"github.com/Skufu/GlucoRisk/internal/database"
	"github.com/Skufu/GlucoRisk/internal/logging"
)

// setup loads config and initializes logging; every subcommand starts here.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	return cfg, nil
}

// openStore connects to Postgres when the config needs it and loads every
// artifact. The returned pool is nil when no database is configured; callers close it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*artifact.Store, *pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	if cfg.NeedsDB() {
		var err error
		pool, err = database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
	}

	var src artifact.Source = artifact.DirSource{Root: cfg.ArtifactDir}
	if cfg.ArtifactSource == config.SourcePostgres {
		src = artifact.NewPGSource(pool)
	}

	manifest, err := artifact.LoadManifest(cfg.ManifestPath)
	if err != nil {
		closePool(pool)
		return nil, nil, err
	}

	logger.Info("loading artifacts", "source", cfg.ArtifactSource, "dir", cfg.ArtifactDir, "models", len(manifest.Models))
	store, err := artifact.Load(ctx, src, manifest, logger)
	if err != nil {
		closePool(pool)
		return nil, nil, err
	}
	return store, pool, nil
}

func closePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

func newTable() table.Writer {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	return w
}
