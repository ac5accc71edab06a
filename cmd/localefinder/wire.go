package main

import (
	"context"
	"fmt"
	"log/slog"

	discordadapter "localefinder/internal/adapters/discord"
	"localefinder/internal/application"
	"localefinder/internal/config"
	"localefinder/internal/domain/scanner"
	"localefinder/internal/infrastructure/database"
	"localefinder/internal/infrastructure/filesystem"
	"localefinder/internal/infrastructure/i18n"
	"localefinder/internal/infrastructure/metrics"
	"localefinder/internal/infrastructure/progress"
	"localefinder/internal/infrastructure/source"
	"localefinder/internal/infrastructure/translate"
	"localefinder/internal/ports/output"
	"localefinder/pkg/tz"
)

// openStore returns the configured catalog store and a function releasing it.
func (a *app) openStore(ctx context.Context, cfg *config.Config, modules bool, log *slog.Logger) (output.CatalogStore, func(), error) {
	if cfg.Storage.Driver == config.StoragePostgres {
		if err := database.RunMigrations(cfg.Storage.DatabaseURL, log); err != nil {
			return nil, nil, err
		}
		pool, err := database.NewPool(ctx, cfg.Storage.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		return database.NewCatalogStore(pool), pool.Close, nil
	}

	var opts []filesystem.Option
	if modules {
		opts = append(opts, filesystem.WithModules(cfg.Modules))
	}
	return filesystem.NewCatalogStore(a.fs, cfg.LangPath, opts...), func() {}, nil
}

type finderDeps struct {
	service  *application.FinderService
	recorder *metrics.Recorder
	close    func()
}

func (a *app) buildFinder(ctx context.Context, cfg *config.Config, f *findFlags, log *slog.Logger) (*finderDeps, error) {
	store, closeStore, err := a.openStore(ctx, cfg, f.modules, log)
	if err != nil {
		return nil, err
	}

	walker, err := source.NewWalker(a.fs, source.Config{
		Folders:  cfg.Search.Folders,
		Exclude:  cfg.Search.Exclude,
		Patterns: cfg.Search.FileExtension,
		Files:    cfg.Search.Files,
	}, log)
	if err != nil {
		closeStore()
		return nil, err
	}

	translator := translate.NewGoogle(translate.WithRetry(cfg.Translate.Tries, cfg.Translate.Delay.Duration))

	deps := &finderDeps{close: closeStore}
	opts := []application.Option{
		application.WithLogger(log),
		application.WithVerifier(i18n.NewVerifier(f.source)),
	}
	if f.metricsFile != "" {
		deps.recorder = metrics.NewRecorder()
		opts = append(opts, application.WithMetrics(deps.recorder))
	}
	if f.progress {
		opts = append(opts, application.WithProgress(progress.NewBar(a.stderr)))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		loc, err := tz.Load(cfg.Notify.Timezone)
		if err != nil {
			closeStore()
			return nil, fmt.Errorf("notify: %w", err)
		}
		n, err := discordadapter.NewNotifier(cfg.Notify.DiscordWebhookURL, loc)
		if err != nil {
			closeStore()
			return nil, err
		}
		opts = append(opts, application.WithNotifier(n))
	}

	deps.service = application.NewFinderService(walker, store, translator, scanner.NewMatcher(cfg.TranslationMethods), opts...)
	return deps, nil
}
