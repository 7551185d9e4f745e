package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/records/internal/cache"
	"github.com/tinoosan/records/internal/config"
	"github.com/tinoosan/records/internal/record"
	"github.com/tinoosan/records/internal/service/command"
	"github.com/tinoosan/records/internal/storage"
	"github.com/tinoosan/records/internal/storage/memory"
	pgstore "github.com/tinoosan/records/internal/storage/postgres"
	sqlitestore "github.com/tinoosan/records/internal/storage/sqlite"
)

// openedStore pairs a backend with its release func.
type openedStore struct {
	storage.Store
	close func()
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (openedStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		pg, err := pgstore.Open(openCtx, cfg.Database.URL)
		if err != nil {
			return openedStore{}, err
		}
		from, to, err := pg.Migrate()
		if err != nil {
			pg.Close()
			return openedStore{}, err
		}
		logger.Info("migration status", "pre_migration_version", from, "post_migration_version", to)
		return openedStore{Store: pg, close: pg.Close}, nil
	case config.BackendSQLite:
		lite, err := sqlitestore.Open(cfg.SQLite.Path)
		if err != nil {
			return openedStore{}, err
		}
		return openedStore{Store: lite, close: func() { _ = lite.Close() }}, nil
	default:
		return openedStore{Store: memory.New(), close: func() {}}, nil
	}
}

// viewCache is the optional Redis cache. cache is nil when disabled so the
// services fall back to no caching.
type viewCache struct {
	cache cache.Cache[record.Record]
	ready storage.ReadyChecker
	close func()
}

func openViewCache(ctx context.Context, cfg config.Config, logger *slog.Logger) viewCache {
	off := viewCache{close: func() {}}
	if cfg.Redis.URL == "" {
		return off
	}
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	client, err := cache.Dial(dialCtx, cfg.Redis.URL)
	if err != nil {
		// the store stays authoritative; run uncached rather than refuse to start
		logger.Warn("redis unavailable, view cache disabled", "err", err)
		return off
	}
	vc := cache.NewViewCache[record.Record](client, "records:transaction:", cfg.Cache.TTL, logger)
	logger.Info("view cache enabled", "ttl", cfg.Cache.TTL.String())
	return viewCache{cache: vc, ready: vc, close: func() { _ = client.Close() }}
}

// seedDev creates a few sample transactions through the command service.
func seedDev(ctx context.Context, svc command.Service) ([]record.Record, error) {
	samples := []struct {
		name, amount, category string
		typ                    record.Type
	}{
		{"Salary", "2500.00", "salary", record.TypeDeposit},
		{"Groceries", "54.20", "groceries", record.TypeWithdraw},
		{"Purchase goods", "100.50", "shopping", record.TypeWithdraw},
	}
	out := make([]record.Record, 0, len(samples))
	for _, s := range samples {
		name, category, typ := s.name, s.category, s.typ
		amount, err := decimal.Parse(s.amount)
		if err != nil {
			return nil, err
		}
		r, err := svc.CreateTransaction(ctx, command.CreateRequest{Name: &name, Amount: &amount, Category: &category, Type: &typ})
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// logDevSeed emits structured logs with useful IDs
func logDevSeed(l *slog.Logger, backend string, recs []record.Record) {
	ids := map[string]string{}
	for _, r := range recs {
		ids[strings.ToLower(strings.ReplaceAll(r.Name, " ", "_"))+"_id"] = r.ID
	}
	l.Info("DEV seed ("+backend+")", "ids", ids)
}

// printDevSeedBanner prints a simple banner to stdout for easy copy/paste of IDs
func printDevSeedBanner(recs []record.Record) {
	fmt.Fprintln(os.Stdout, "==================== DEV SEED ====================")
	for _, r := range recs {
		fmt.Fprintf(os.Stdout, "%s (%s): %s\n", r.Name, r.Amount, r.ID)
	}
	fmt.Fprintln(os.Stdout, "==================================================")
}

// parseLogLevel maps config values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(c config.LogConfig) *slog.Logger {
	level := parseLogLevel(c.Level)
	if strings.EqualFold(strings.TrimSpace(c.Format), "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
