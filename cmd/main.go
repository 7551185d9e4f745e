package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tinoosan/records/internal/config"
	"github.com/tinoosan/records/internal/httpapi"
	"github.com/tinoosan/records/internal/service/command"
	"github.com/tinoosan/records/internal/service/query"
	"github.com/tinoosan/records/internal/storage"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "records:", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so the deferred closes always run.
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Logger (slog to stdout). Level via log.level; format via log.format (json|text, default json)
	logger := buildLogger(cfg.Log)
	slog.SetDefault(logger)

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}
	defer store.close()
	logger.Info("storage backend: " + cfg.Storage.Backend)

	views := openViewCache(ctx, cfg, logger)
	defer views.close()

	records := storage.Instrumented(store.Store)
	cmdSvc := command.New(records, views.cache)
	qrySvc := query.New(records, views.cache)

	if cfg.Dev.Seed {
		seeded, err := seedDev(ctx, cmdSvc)
		if err != nil {
			logger.Error("dev seed failed", "err", err)
		} else {
			logDevSeed(logger, cfg.Storage.Backend, seeded)
			printDevSeedBanner(seeded)
		}
	}

	checks := []storage.ReadyChecker{}
	if rc, ok := records.(storage.ReadyChecker); ok {
		checks = append(checks, rc)
	}
	if views.ready != nil {
		checks = append(checks, views.ready)
	}
	handler := httpapi.New(cmdSvc, qrySvc, cfg.Currency, logger, checks...).Handler()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("records service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
		return nil
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	}
}
