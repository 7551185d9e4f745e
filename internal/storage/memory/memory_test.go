package memory

import (
    "context"
    "sync"
    "testing"

    "github.com/tinoosan/records/internal/storage"
    "github.com/tinoosan/records/internal/storage/storagetest"
)

func TestStore_Contract(t *testing.T) {
    storagetest.Run(t, func(t *testing.T) storage.Store { return New() })
}

func TestStore_PageTotalMatchesSnapshotUnderChurn(t *testing.T) {
    s := New()
    ctx := context.Background()
    for i := 0; i < 50; i++ {
        s.SeedRecord(storagetest.Sample("seed", "1.00"))
    }

    var wg sync.WaitGroup
    stop := make(chan struct{})
    wg.Add(1)
    go func() {
        defer wg.Done()
        for {
            select {
            case <-stop:
                return
            default:
            }
            r := storagetest.Sample("churn", "2.00")
            _, _ = s.Save(ctx, r)
            _, _ = s.DeleteByID(ctx, r.ID)
        }
    }()

    // A full-size page must always hold exactly Total records: a torn read would
    // pair a count from before a write with data from after it.
    for i := 0; i < 500; i++ {
        page, err := s.FindPage(ctx, 1, 1000)
        if err != nil {
            t.Fatalf("find page: %v", err)
        }
        if len(page.Data) != page.Total {
            close(stop)
            wg.Wait()
            t.Fatalf("inconsistent page: total=%d len=%d", page.Total, len(page.Data))
        }
    }
    close(stop)
    wg.Wait()
}

func TestStore_ResetAndLen(t *testing.T) {
    s := New()
    s.SeedRecord(storagetest.Sample("a", "1"))
    s.SeedRecord(storagetest.Sample("b", "2"))
    if s.Len() != 2 {
        t.Fatalf("expected 2, got %d", s.Len())
    }
    s.Reset()
    if s.Len() != 0 {
        t.Fatalf("expected empty store after reset, got %d", s.Len())
    }
}
