package cache

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

type view struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
}

func TestNop(t *testing.T) {
	var c Cache[view] = Nop[view]{}
	c.Set(context.Background(), "k", &view{ID: "k"})
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Fatalf("nop cache must always miss")
	}
	c.Delete(context.Background(), "k")
}

func TestViewCache_Redis(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set; skipping Redis cache tests")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := Dial(ctx, url)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewViewCache[view](client, "test:"+uuid.NewString()+":", time.Minute, logger)
	if err := c.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Set(ctx, "a", &view{ID: "a", Amount: "100.50"})
	got, ok := c.Get(ctx, "a")
	if !ok || got.Amount != "100.50" {
		t.Fatalf("expected hit, got %+v ok=%v", got, ok)
	}
	c.Delete(ctx, "a")
	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatalf("expected miss after delete")
	}
}
