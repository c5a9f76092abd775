package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/spf13/pflag"

	"github.com/damon-houk/fxrate-lookup/internal/application/service"
	"github.com/damon-houk/fxrate-lookup/internal/config"
	"github.com/damon-houk/fxrate-lookup/internal/domain/repository"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/api"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/cache"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/db"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/handler"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/logger"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	flags := pflag.NewFlagSet("fxrate-lookup", pflag.ContinueOnError)
	flags.StringVar(&cfg.Server.ListenAddr, "listen-addr", cfg.Server.ListenAddr, "address to serve HTTP on")
	flags.StringVar(&cfg.Backend.URL, "backend-url", cfg.Backend.URL, "base URL of the FX rate backend")
	flags.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "which log level to output")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefaultLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Server stopped with error", map[string]interface{}{
			"error": err.Error(),
		})
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	log.Info("Starting FX rate lookup", map[string]interface{}{
		"listen_addr":  cfg.Server.ListenAddr,
		"backend_url":  cfg.Backend.URL,
		"export_store": cfg.Export.Store,
	})

	exports, closeExports, err := newExportRepository(ctx, cfg.Export, log)
	if err != nil {
		return err
	}
	defer closeExports()

	// Initialize API clients and repositories
	backend := api.NewBackendClient(cfg.Backend.URL, &http.Client{Timeout: cfg.Backend.Timeout}, log)
	rateRepo := db.NewBackendRateRepository(backend, log)

	// Initialize services
	currencyService := service.NewCurrencyService(rateRepo, log)
	lookupService := service.NewLookupService(rateRepo, exports, log)
	exportService := service.NewExportService(exports, log)

	// Initialize handlers
	router := handler.NewRouter(
		handler.NewPageHandler(currencyService, lookupService, log),
		handler.NewExportHandler(exportService, log),
		log,
	)

	server := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": cfg.Server.ListenAddr})
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down", map[string]interface{}{"timeout": cfg.Server.ShutdownTimeout.String()})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

// newExportRepository opens the configured export store and returns its cleanup
func newExportRepository(ctx context.Context, cfg config.Export, log logger.Logger) (repository.ExportRepository, func(), error) {
	switch cfg.Store {
	case config.ExportStoreBadger:
		if err := os.MkdirAll(cfg.BadgerDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create export directory: %w", err)
		}

		badgerOpts := badger.DefaultOptions(cfg.BadgerDir)
		badgerOpts.Logger = nil // Disable Badger's default logger

		badgerDB, err := badger.Open(badgerOpts)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open export database: %w", err)
		}

		closeDB := func() {
			if err := badgerDB.Close(); err != nil {
				log.Error("Error closing BadgerDB", map[string]interface{}{"error": err.Error()})
			}
		}
		return db.NewBadgerExportRepository(badgerDB, cfg.TTL), closeDB, nil
	default:
		exportCache := cache.NewExportCache(cfg.TTL)
		janitorCtx, cancel := context.WithCancel(ctx)
		go exportCache.RunJanitor(janitorCtx, cfg.TTL)
		return exportCache, cancel, nil
	}
}
