package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/inovacc/trendr/internal/config"
	"github.com/inovacc/trendr/internal/core"
	"github.com/inovacc/trendr/internal/github"
	"github.com/inovacc/trendr/internal/logging"
	"github.com/inovacc/trendr/internal/store"
)

// app is the composition root shared by every command: it owns the config,
// the logger, the storage medium and the reconciler built on top of them.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	medium store.Medium
	stars  *store.Stars
	rec    *core.Reconciler

	closers []io.Closer
}

// newApp loads the config and opens the store. interactive keeps log records
// off stderr while a TUI owns the terminal.
func newApp(interactive bool) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger, logCloser, err := logging.Setup(cfg.Log.File, cfg.Log.Level, interactive)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}

	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	medium, err := store.Open(cfg.Store)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	a.medium = medium
	a.closers = append(a.closers, medium)
	a.stars = store.NewStars(medium, logger.With(slog.String("component", "stars")))

	return a, nil
}

// source builds the trending source, cached when trending.cache_ttl is set.
func (a *app) source() (github.Source, error) {
	client, err := github.NewClient(
		github.WithToken(a.cfg.ResolveToken(flagToken)),
		github.WithBaseURL(a.cfg.GitHub.BaseURL),
		github.WithWindow(a.cfg.Trending.Window),
		github.WithPageSize(a.cfg.Trending.PageSize),
		github.WithLogger(a.logger.With(slog.String("component", "github"))),
	)
	if err != nil {
		return nil, err
	}

	if a.cfg.Trending.CacheTTL <= 0 {
		return client, nil
	}

	return github.NewCachedSource(client, a.medium, a.cfg.Trending.CacheTTL, a.logger), nil
}

// reconciler builds the session reconciler; it is not loaded yet.
func (a *app) reconciler() (*core.Reconciler, error) {
	if a.rec != nil {
		return a.rec, nil
	}

	src, err := a.source()
	if err != nil {
		return nil, err
	}

	a.rec = core.NewReconciler(src, a.stars, a.logger.With(slog.String("component", "reconciler")))

	return a.rec, nil
}

// Close releases the store and the log file, last opened first.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
