package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bdgeo/data"
	"github.com/kailas-cloud/bdgeo/internal/config"
	logpkg "github.com/kailas-cloud/bdgeo/internal/logger"
	catalogrepo "github.com/kailas-cloud/bdgeo/internal/repository/catalog"
	searchuc "github.com/kailas-cloud/bdgeo/internal/usecase/search"
	statsuc "github.com/kailas-cloud/bdgeo/internal/usecase/stats"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	env        string
	configPath string
	catalogDir string
	logLevel   string
}

// app is the composition root: everything a command needs, built once.
type app struct {
	env     string
	cfg     config.Config
	logger  *zap.Logger
	catalog *catalogrepo.Catalog
	stats   *statsuc.Service
	search  *searchuc.Service
}

// loadConfig reads --config, or config/<env>.yaml. A missing default file is
// not an error so the CLI works outside the repository.
func loadConfig(g globalOptions) (config.Config, error) {
	if g.configPath != "" {
		cfg, err := config.LoadFile(g.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.Load(g.env)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newApp wires config, logger, catalog and services. One-shot commands pass
// quiet so only warnings reach stderr unless --log-level says otherwise.
func newApp(ctx context.Context, g globalOptions, quiet bool, observers ...searchuc.Observer) (*app, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	if g.catalogDir != "" {
		cfg.Catalog.Dir = g.catalogDir
	}

	level := cfg.Logging.Level
	switch {
	case g.logLevel != "":
		level = g.logLevel
	case quiet:
		level = "warn"
	}
	logger, err := logpkg.NewLogger(g.env, level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	ctx = logpkg.ContextWithLogger(ctx, logger)

	fsys, source := catalogFS(cfg.Catalog.Dir)
	logger.Debug("loading catalog", zap.String("source", source))
	cat, err := catalogrepo.Load(ctx, fsys)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("load catalog from %s: %w", source, err)
	}

	stats := statsuc.New(statsuc.Config{
		TopQueriesCapacity:  cfg.Stats.TopQueriesCapacity,
		ZeroResultsCapacity: cfg.Stats.ZeroResultsCapacity,
	})
	observers = append(observers, stats)

	search := searchuc.New(cat, cfg.SearchDefaults()).
		WithFuzzyThreshold(cfg.FuzzyThreshold()).
		WithObserver(searchuc.Observers(observers))

	return &app{
		env:     g.env,
		cfg:     cfg,
		logger:  logger,
		catalog: cat,
		stats:   stats,
		search:  search,
	}, nil
}

// catalogFS returns the catalog file system and a label for logs.
func catalogFS(dir string) (fs.FS, string) {
	if dir == "" {
		return data.FS, "embedded"
	}
	return os.DirFS(dir), dir
}

func (a *app) close() {
	_ = a.logger.Sync()
}
