package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jamescbjeon/ty-english-word/internal/adapter/postgres"
	"github.com/jamescbjeon/ty-english-word/internal/adapter/postgres/vocab"
	"github.com/jamescbjeon/ty-english-word/internal/app/converter"
	"github.com/jamescbjeon/ty-english-word/internal/config"
)

// Run is the conversion entry point. It connects to the database only when
// the db phase is requested (running migrations first when configured),
// then runs the pipeline. A nil phases slice runs the phases enabled in cfg.
// The returned pipeline carries per-phase results even when err is nil.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, phases []string) (*converter.Pipeline, error) {
	if phases == nil {
		phases = converter.EnabledPhases(*cfg)
	}

	logger.Info("starting conversion",
		slog.String("version", BuildVersion()),
		slog.Any("phases", phases),
	)

	var (
		store converter.RecordStore
		txm   converter.TxRunner
	)
	if slices.Contains(phases, converter.PhaseDB) && !cfg.Convert.DryRun {
		if cfg.Database.Migrate {
			applied, err := postgres.Migrate(ctx, cfg.Database.DSN)
			if err != nil {
				return nil, fmt.Errorf("migrate database: %w", err)
			}
			logger.Info("migrations applied", slog.Int("count", len(applied)))
		}

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()

		store = vocab.New(pool)
		txm = postgres.NewTxManager(pool)
	}

	pipeline := converter.NewPipeline(logger, *cfg, store, txm)
	if err := pipeline.Run(ctx, phases); err != nil {
		return pipeline, err
	}
	return pipeline, nil
}
