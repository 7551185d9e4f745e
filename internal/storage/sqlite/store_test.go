package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tinoosan/records/internal/storage"
	"github.com/tinoosan/records/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store { return newTestStore(t) })
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "records.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	r := storagetest.Sample("persisted", "12.30")
	if _, err := s.Save(ctx, r); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, ok, err := s2.FindByID(ctx, r.ID)
	if err != nil || !ok {
		t.Fatalf("find after reopen: ok=%v err=%v", ok, err)
	}
	if got.Amount.String() != "12.30" || !got.CreateTime.Equal(r.CreateTime) {
		t.Fatalf("unexpected record after reopen: %+v", got)
	}
}

func TestStore_Ready(t *testing.T) {
	if err := newTestStore(t).Ready(context.Background()); err != nil {
		t.Fatalf("ready: %v", err)
	}
}
