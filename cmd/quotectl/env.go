package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jsamuelsen/quotesync/internal/adapters/clients"
	"github.com/jsamuelsen/quotesync/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotesync/internal/adapters/notify"
	"github.com/jsamuelsen/quotesync/internal/adapters/storage"
	"github.com/jsamuelsen/quotesync/internal/adapters/transfer"
	"github.com/jsamuelsen/quotesync/internal/app"
	"github.com/jsamuelsen/quotesync/internal/platform/config"
	"github.com/jsamuelsen/quotesync/internal/platform/logging"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

// env is what one command invocation works against.
type env struct {
	svc   *app.QuoteService
	board *notify.Board

	// files opens transfer documents relative to dir.
	files func(dir string) *transfer.Files

	close func() error
}

// opener builds an env. Tests swap in an in-memory one.
type opener func(ctx context.Context, opts *rootOptions) (*env, error)

func openEnv(ctx context.Context, opts *rootOptions) (*env, error) {
	cfg, err := config.Load(opts.profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if opts.storePath != "" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.Path = opts.storePath
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}

	logger := logging.NewWithWriter(&logging.Config{Level: level, Format: "pretty", Service: "quotectl"}, os.Stderr)
	logging.SetDefault(logger)

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	board := notify.NewBoard(cfg.Notify.TTL, cfg.Notify.Capacity)

	svc := app.NewQuoteService(app.QuoteServiceConfig{
		Store:       store,
		Prefs:       store,
		Conflicts:   store,
		Remote:      acl.NewQuoteSource(httpClient, cfg.Services.Quote.Path, cfg.Sync.MaxItems),
		Notifier:    board,
		Flags:       ports.NewStaticFeatureFlags(cfg.Features),
		Logger:      logger.With(slog.String("component", "quotectl")),
		SyncTimeout: cfg.Sync.Timeout,
	})

	if err := svc.Load(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("loading quotes: %w", err)
	}

	codec := transfer.NewCodec()

	return &env{
		svc:   svc,
		board: board,
		files: func(dir string) *transfer.Files { return transfer.NewFiles(osfs.New(dir), codec) },
		close: store.Close,
	}, nil
}

// splitPath resolves path into the directory a billy filesystem is rooted
// at and the file name inside it.
func splitPath(path string) (dir, name string, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolving %s: %w", path, err)
	}

	return filepath.Dir(abs), filepath.Base(abs), nil
}
