package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"github.com/zekog/hipotify-sub000/internal/convert"
	"github.com/zekog/hipotify-sub000/internal/repositories"
	"github.com/zekog/hipotify-sub000/internal/resolve"
	"github.com/zekog/hipotify-sub000/internal/search"
	"github.com/zekog/hipotify-sub000/internal/services"
	"github.com/zekog/hipotify-sub000/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	if os.Getenv("HIPOTIFY_DEBUG") != "" {
		shared.SetLogLevel(logger, log.DebugLevel)
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var catalog services.Catalog
	if svc, err := services.NewCatalogService(config.Catalog); err == nil {
		catalog = svc
	} else {
		logger.Warn("catalog backend unavailable", "error", err)
	}

	var store *repositories.HistoryStore
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		store = repositories.NewHistoryStore(db)
	} else {
		logger.Warn("history database unavailable", "error", err)
	}

	translator := search.NewTranslation(
		services.NewMusicBrainzService(config.Services.MusicBrainzURL),
		config.Services.TranslationConfidence,
	)

	var history search.HistorySource
	var recorder resolve.Recorder
	var reader historyReader
	if store != nil {
		history = store
		recorder = store
		reader = store
	}

	searcher := search.NewAggregator(catalog, translator, history, rankingWeights(config.Ranking),
		shared.WithLogger(logger, "component", "search"))

	resolver := resolve.NewResolver(resolve.ResolverOpts{
		Catalog:  catalog,
		Searcher: searcher,
		Embed:    services.NewEmbedService(config.Services.EmbedURL),
		Xplat:    services.NewSonglinkService(config.Services.SonglinkURL, config.Services.OwnPlatform),
		Recorder: recorder,
		OwnHost:  config.Services.OwnHost,
		Logger:   shared.WithLogger(logger, "component", "resolve"),
	})

	matcher := convert.NewMatcher(catalog, searcher, matcherTolerances(config.Matcher),
		shared.WithLogger(logger, "component", "convert"))

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Catalog:  catalog,
		Searcher: searcher,
		Resolver: resolver,
		Matcher:  matcher,
		History:  reader,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "hipotify",
		Usage:    "Search, resolve and convert streaming catalog entries",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
