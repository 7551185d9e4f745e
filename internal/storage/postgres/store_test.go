package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/tinoosan/records/internal/storage"
	"github.com/tinoosan/records/internal/storage/storagetest"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, _, err := s.Migrate(); err != nil {
		s.Close()
		t.Fatalf("migrate: %v", err)
	}
	if err := s.truncate(ctx); err != nil {
		s.Close()
		t.Fatalf("truncate: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestStore_Contract(t *testing.T) {
	dsn := getTestDSN(t)
	storagetest.Run(t, func(t *testing.T) storage.Store { return mustOpen(t, dsn) })
}

func TestStore_AmountKeepsScale(t *testing.T) {
	s := mustOpen(t, getTestDSN(t))
	ctx := context.Background()
	r := storagetest.Sample("scale", "100.50")
	if _, err := s.Save(ctx, r); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.FindByID(ctx, r.ID)
	if err != nil || !ok {
		t.Fatalf("find: ok=%v err=%v", ok, err)
	}
	if got.Amount.String() != "100.50" {
		t.Fatalf("expected 100.50, got %s", got.Amount)
	}
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	s := mustOpen(t, getTestDSN(t))
	from, to, err := s.Migrate()
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if from != to || to != 1 {
		t.Fatalf("expected schema to stay at version 1, got %d -> %d", from, to)
	}
}

func TestStore_Ready(t *testing.T) {
	s := mustOpen(t, getTestDSN(t))
	if err := s.Ready(context.Background()); err != nil {
		t.Fatalf("ready: %v", err)
	}
}
