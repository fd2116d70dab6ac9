package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/sentimind/internal/config"
	"github.com/Veraticus/sentimind/internal/engine"
	"github.com/Veraticus/sentimind/internal/local"
	"github.com/Veraticus/sentimind/internal/posts"
	"github.com/Veraticus/sentimind/internal/remote"
	"github.com/Veraticus/sentimind/internal/storage"
)

// newProvider builds the provider registered under name.
func newProvider(cfg *config.Config, name string, logger *slog.Logger) (engine.Provider, error) {
	switch name {
	case "":
		return nil, nil
	case config.ProviderLocal:
		return local.NewAdapter(cfg.LocalAdapterConfig(), logger), nil
	case config.ProviderRemote:
		client, err := remote.NewClient(cfg.RemoteClientConfig(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create remote client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}

// newEngine wires the configured provider tiers into an engine.
func newEngine(cfg *config.Config) (*engine.Engine, error) {
	logger := slog.Default()
	opts := engine.DefaultOptions()
	opts.Logger = logger
	opts.Mode = cfg.EngineMode()
	opts.Template = cfg.Classifier.HypothesisTemplate
	opts.RelativeThreshold = cfg.Classifier.RelativeThreshold
	opts.MaxEmotions = cfg.Classifier.MaxEmotions

	if opts.Mode != engine.ModeRulesOnly {
		primary, err := newProvider(cfg, cfg.Classifier.Provider, logger)
		if err != nil {
			return nil, err
		}
		fallback, err := newProvider(cfg, cfg.Classifier.FallbackProvider, logger)
		if err != nil {
			return nil, err
		}
		opts.Primary = primary
		opts.Fallback = fallback
	}

	return engine.New(opts)
}

// openStore opens the database, migrates it and syncs the taxonomy.
func openStore(ctx context.Context, cfg *config.Config, taxonomy []string) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := store.SyncCategories(ctx, taxonomy); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to sync categories: %w", err)
	}
	return store, nil
}

// newPostService opens storage and builds the post service on top of it.
// The returned close function releases the database.
func newPostService(ctx context.Context) (*posts.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := openStore(ctx, cfg, eng.Taxonomy())
	if err != nil {
		return nil, nil, err
	}
	return posts.NewService(eng, store, slog.Default()), func() { _ = store.Close() }, nil
}
