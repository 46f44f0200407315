package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mgalvez/quotelists-go/internal/collab"
	"github.com/mgalvez/quotelists-go/internal/config"
	"github.com/mgalvez/quotelists-go/internal/export"
	"github.com/mgalvez/quotelists-go/internal/httpapi"
	"github.com/mgalvez/quotelists-go/internal/importer"
	"github.com/mgalvez/quotelists-go/internal/lists"
	"github.com/mgalvez/quotelists-go/internal/quotes"
	"github.com/mgalvez/quotelists-go/internal/storage"
	"github.com/mgalvez/quotelists-go/internal/store/gormstore"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Configure slog with debug level
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handler := slog.NewTextHandler(os.Stderr, opts)
	slog.SetDefault(slog.New(handler))

	// Parse command/subcommand
	cmd := parseCommand()

	// Load configuration
	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Execute command
	switch cmd {
	case "server":
		return runServer(cfg)
	case "migrate":
		db, err := storage.New(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		return storage.RunMigrations(db.DB, cfg.Database.Migrations)
	default:
		// Default: run migrations and server
		db, err := storage.New(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := storage.RunMigrations(db.DB, cfg.Database.Migrations); err != nil {
			db.Close()
			return err
		}
		db.Close()
		return runServer(cfg)
	}
}

func parseCommand() string {
	if len(os.Args) < 2 {
		return "default"
	}
	return os.Args[1]
}

func runServer(cfg *config.Config) error {
	slog.Info("starting quotelists server", "environment", cfg.Environment)

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	// Initialize database
	db, err := storage.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Wire repositories and services
	stores := gormstore.New(db.DB)
	listSvc := lists.NewService(stores.Lists, stores.Aliases, stores.Quotes)
	quoteSvc := quotes.NewService(listSvc, stores.Quotes)
	collabSvc := collab.NewService(stores.Invites, stores.Lists, stores.Aliases, listSvc)
	exporter := export.NewAssembler(stores.Lists, stores.Aliases, stores.Quotes)
	importSvc := importer.NewService(listSvc, quoteSvc)

	app := httpapi.New(listSvc, quoteSvc, collabSvc, exporter, importSvc, stores.Quotes, cfg.Recency.Enabled)

	// Create errgroup for concurrent component management
	g, ctx := errgroup.WithContext(ctx)

	// Component 1: HTTP server
	g.Go(func() error {
		slog.Info("starting http server", "addr", cfg.Server.Addr)
		return app.Listen(cfg.Server.Addr)
	})

	// Component 2: Invite cleaner
	cleaner := collab.NewCleaner(stores.Invites, collab.CleanerConfig{
		CleanInterval: cfg.Invites.CleanInterval,
		KeepDuration:  cfg.Invites.KeepDuration,
	}, slog.Default())
	g.Go(func() error {
		return cleaner.Start(ctx)
	})

	// Component 3: shutdown watcher
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down http server")
		return app.Shutdown()
	})

	slog.Info("all components started, waiting for shutdown signal")

	// Wait for all components to complete
	if err := g.Wait(); err != nil {
		if err == context.Canceled {
			slog.Info("graceful shutdown completed")
			return nil
		}
		return fmt.Errorf("component error: %w", err)
	}

	slog.Info("application stopped")
	return nil
}
