package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmcdole/cinepick/internal/adapter"
	"github.com/mmcdole/cinepick/internal/cache"
	"github.com/mmcdole/cinepick/internal/docstore"
	"github.com/mmcdole/cinepick/internal/domain"
	"github.com/mmcdole/cinepick/internal/gateway"
	"github.com/mmcdole/cinepick/internal/history"
	"github.com/mmcdole/cinepick/internal/metadata/tmdb"
	"github.com/mmcdole/cinepick/internal/safety"
	"github.com/mmcdole/cinepick/internal/service"
	"github.com/mmcdole/cinepick/internal/store"
	"github.com/mmcdole/cinepick/internal/ui"
)

var errInterrupted = errors.New("interrupted")

// app holds the wired services for one command invocation
type app struct {
	cfg      *adapter.Config
	logger   *slog.Logger
	closeLog func() error

	docs    *docstore.Store // nil when the document store is unreachable
	local   *store.LocalStore
	loader  *safety.Loader
	gateway *gateway.Service
	history *history.Service

	prefs     *service.PreferenceService
	recs      *service.RecommendService
	search    *service.SearchService
	favorites *service.FavoritesService
	comments  *service.CommentService

	gen service.Generation
	out *ui.Printer
}

func newApp(ctx context.Context, cfg *adapter.Config) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closeLog, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, closeLog = adapter.NullLogger(), func() error { return nil }
	}
	slog.SetDefault(logger)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		closeLog: closeLog,
		out:      ui.NewPrinter(os.Stdout, cfg.UI.Color),
	}

	var (
		keywordSource domain.KeywordSource
		favoriteRepo  domain.FavoriteRepository
		commentRepo   domain.CommentRepository
	)
	if cfg.DocStoreEnabled() {
		docs, err := docstore.Open(ctx, docstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Warn("document store unavailable, favorites and comments disabled", "error", err)
		} else {
			a.docs = docs
			keywordSource, favoriteRepo, commentRepo = docs, docs, docs
		}
	}

	// Searches must not run before the banned keyword list is in place
	a.loader = safety.NewLoader(keywordSource, logger)
	a.loader.Load(ctx)

	client := tmdb.NewClient(tmdb.ClientConfig{
		BaseURL:       cfg.TMDB.BaseURL,
		APIKey:        cfg.TMDB.APIKey,
		Language:      cfg.TMDB.Language,
		Timeout:       cfg.TMDB.Timeout,
		RatePerSecond: cfg.TMDB.RatePerSecond,
	}, logger)

	a.gateway = gateway.NewService(client, safety.NewFilter(a.loader), a.loader, gateway.Options{
		Cache:           cache.New(cfg.Cache.MaxSize, cfg.Cache.TTL),
		SearchReadyWait: cfg.Search.ReadyWait,
	}, logger)

	a.local, err = store.NewLocalStore(cfg.Store.Path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	a.history, err = history.NewService(a.local, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.prefs = service.NewPreferenceService(a.gateway, a.history, favoriteRepo, commentRepo, logger)
	a.recs = service.NewRecommendService(a.gateway, a.prefs, a.local, logger)
	a.search = service.NewSearchService(a.gateway, a.local, logger)
	a.favorites = service.NewFavoritesService(favoriteRepo, logger)
	a.comments = service.NewCommentService(commentRepo, logger)

	logger.Info("starting cinepick", "version", Version, "docstore", a.docs != nil)
	return a, nil
}

// Close releases the stores and the log file
func (a *app) Close() {
	if a.local != nil {
		if err := a.local.Close(); err != nil {
			a.logger.Error("failed to close local store", "error", err)
		}
	}
	if a.docs != nil {
		if err := a.docs.Close(); err != nil {
			a.logger.Error("failed to close document store", "error", err)
		}
	}
	a.logger.Info("shutting down")
	_ = a.closeLog()
}

// deliver renders a result unless the command was interrupted after the
// work tagged with tag started
func (a *app) deliver(tag uint64, render func()) error {
	if a.gen.Stale(tag) {
		return errInterrupted
	}
	render()
	return nil
}

// withApp wires the application and runs fn with a context that is
// canceled on SIGINT or SIGTERM
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	go func() {
		<-ctx.Done()
		a.gen.Bump()
	}()

	return fn(ctx, a)
}
