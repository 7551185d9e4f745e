// Package storagetest is a contract suite every storage.Store backend runs
// from its own tests.
package storagetest

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "testing"
    "time"

    "github.com/google/uuid"
    "github.com/govalues/decimal"

    "github.com/tinoosan/records/internal/errs"
    "github.com/tinoosan/records/internal/record"
    "github.com/tinoosan/records/internal/storage"
)

// Factory returns an empty store. Cleanup is the factory's responsibility.
type Factory func(t *testing.T) storage.Store

// Run executes the full contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
    t.Run("SaveAndFind", func(t *testing.T) { testSaveAndFind(t, newStore(t)) })
    t.Run("SaveRejectsEmptyID", func(t *testing.T) { testSaveRejectsEmptyID(t, newStore(t)) })
    t.Run("Overwrite", func(t *testing.T) { testOverwrite(t, newStore(t)) })
    t.Run("FindMissing", func(t *testing.T) { testFindMissing(t, newStore(t)) })
    t.Run("Delete", func(t *testing.T) { testDelete(t, newStore(t)) })
    t.Run("Paging", func(t *testing.T) { testPaging(t, newStore(t)) })
    t.Run("PagesPartition", func(t *testing.T) { testPagesPartition(t, newStore(t)) })
    t.Run("ConcurrentWriters", func(t *testing.T) { testConcurrentWriters(t, newStore(t)) })
}

// Sample builds a valid record with a fresh id.
func Sample(name, amount string) record.Record {
    ts := time.Now().UTC().Truncate(time.Microsecond)
    return record.Record{
        ID:         uuid.NewString(),
        Name:       name,
        Amount:     decimal.MustParse(amount),
        Category:   "Daily",
        Type:       record.TypeDeposit,
        CreateTime: ts,
        UpdateTime: ts,
    }
}

func assertSame(t *testing.T, want, got record.Record) {
    t.Helper()
    if got.ID != want.ID || got.Name != want.Name || got.Category != want.Category || got.Type != want.Type {
        t.Fatalf("record mismatch:\nwant %+v\ngot  %+v", want, got)
    }
    if got.Amount.String() != want.Amount.String() {
        t.Fatalf("amount mismatch: want %s got %s", want.Amount, got.Amount)
    }
    if !got.CreateTime.Equal(want.CreateTime) || !got.UpdateTime.Equal(want.UpdateTime) {
        t.Fatalf("timestamp mismatch: want %v/%v got %v/%v", want.CreateTime, want.UpdateTime, got.CreateTime, got.UpdateTime)
    }
}

func testSaveAndFind(t *testing.T, s storage.Store) {
    ctx := context.Background()
    r := Sample("测试交易", "100.00")
    saved, err := s.Save(ctx, r)
    if err != nil {
        t.Fatalf("save: %v", err)
    }
    assertSame(t, r, saved)
    got, ok, err := s.FindByID(ctx, r.ID)
    if err != nil || !ok {
        t.Fatalf("find: ok=%v err=%v", ok, err)
    }
    assertSame(t, r, got)
    exists, err := s.ExistsByID(ctx, r.ID)
    if err != nil || !exists {
        t.Fatalf("exists: %v %v", exists, err)
    }
}

func testSaveRejectsEmptyID(t *testing.T, s storage.Store) {
    r := Sample("n", "1")
    r.ID = ""
    if _, err := s.Save(context.Background(), r); !errors.Is(err, errs.ErrInvalid) {
        t.Fatalf("expected invalid, got %v", err)
    }
}

func testOverwrite(t *testing.T, s storage.Store) {
    ctx := context.Background()
    first := Sample("first", "1.00")
    second := Sample("second", "2.00")
    for _, r := range []record.Record{first, second} {
        if _, err := s.Save(ctx, r); err != nil {
            t.Fatalf("save: %v", err)
        }
    }
    first.Name = "first-updated"
    first.Amount = decimal.MustParse("9.99")
    if _, err := s.Save(ctx, first); err != nil {
        t.Fatalf("overwrite: %v", err)
    }
    page, err := s.FindPage(ctx, 1, 10)
    if err != nil {
        t.Fatalf("find page: %v", err)
    }
    if page.Total != 2 || len(page.Data) != 2 {
        t.Fatalf("expected 2 records, got total=%d len=%d", page.Total, len(page.Data))
    }
    // overwrite keeps insertion position
    assertSame(t, first, page.Data[0])
    assertSame(t, second, page.Data[1])
}

func testFindMissing(t *testing.T, s storage.Store) {
    ctx := context.Background()
    for _, id := range []string{"", "non-existent"} {
        _, ok, err := s.FindByID(ctx, id)
        if err != nil || ok {
            t.Fatalf("FindByID(%q): ok=%v err=%v", id, ok, err)
        }
        exists, err := s.ExistsByID(ctx, id)
        if err != nil || exists {
            t.Fatalf("ExistsByID(%q): %v %v", id, exists, err)
        }
    }
    page, err := s.FindPage(ctx, 1, 10)
    if err != nil {
        t.Fatalf("find page: %v", err)
    }
    if page.Total != 0 || page.Data == nil || len(page.Data) != 0 {
        t.Fatalf("expected empty non-nil page, got %+v", page)
    }
}

func testDelete(t *testing.T, s storage.Store) {
    ctx := context.Background()
    r := Sample("to delete", "3.00")
    if _, err := s.Save(ctx, r); err != nil {
        t.Fatalf("save: %v", err)
    }
    removed, err := s.DeleteByID(ctx, r.ID)
    if err != nil || !removed {
        t.Fatalf("delete: removed=%v err=%v", removed, err)
    }
    removed, err = s.DeleteByID(ctx, r.ID)
    if err != nil || removed {
        t.Fatalf("second delete: removed=%v err=%v", removed, err)
    }
    removed, err = s.DeleteByID(ctx, "unknown")
    if err != nil || removed {
        t.Fatalf("delete unknown: removed=%v err=%v", removed, err)
    }
    exists, err := s.ExistsByID(ctx, "unknown")
    if err != nil || exists {
        t.Fatalf("unknown id must not exist after delete: %v %v", exists, err)
    }
    if _, ok, _ := s.FindByID(ctx, r.ID); ok {
        t.Fatalf("record still present after delete")
    }
}

func seed(t *testing.T, s storage.Store, n int) []record.Record {
    t.Helper()
    out := make([]record.Record, 0, n)
    for i := 0; i < n; i++ {
        r := Sample(fmt.Sprintf("record-%02d", i), fmt.Sprintf("%d.%02d", i, i))
        if _, err := s.Save(context.Background(), r); err != nil {
            t.Fatalf("save %d: %v", i, err)
        }
        out = append(out, r)
    }
    return out
}

func testPaging(t *testing.T, s storage.Store) {
    ctx := context.Background()
    seed(t, s, 25)
    cases := []struct{ page, size, want int }{
        {1, 10, 10},
        {3, 10, 5},
        {4, 10, 0},
        {1, 1000, 25},
        {0, 10, 0},
        {1, 0, 0},
    }
    for _, tc := range cases {
        page, err := s.FindPage(ctx, tc.page, tc.size)
        if err != nil {
            t.Fatalf("FindPage(%d,%d): %v", tc.page, tc.size, err)
        }
        if page.Total != 25 || len(page.Data) != tc.want {
            t.Fatalf("FindPage(%d,%d): total=%d len=%d want total=25 len=%d", tc.page, tc.size, page.Total, len(page.Data), tc.want)
        }
        if page.Data == nil {
            t.Fatalf("FindPage(%d,%d): data must be non-nil", tc.page, tc.size)
        }
    }
}

func testPagesPartition(t *testing.T, s storage.Store) {
    ctx := context.Background()
    all := seed(t, s, 23)
    const size = 4
    seen := make(map[string]struct{}, len(all))
    sum := 0
    for p := 1; p <= (len(all)+size-1)/size; p++ {
        page, err := s.FindPage(ctx, p, size)
        if err != nil {
            t.Fatalf("page %d: %v", p, err)
        }
        sum += len(page.Data)
        for _, r := range page.Data {
            if _, dup := seen[r.ID]; dup {
                t.Fatalf("record %s appeared on two pages", r.ID)
            }
            seen[r.ID] = struct{}{}
        }
    }
    if sum != len(all) {
        t.Fatalf("pages cover %d records, want %d", sum, len(all))
    }
}

func testConcurrentWriters(t *testing.T, s storage.Store) {
    ctx := context.Background()
    const writers, perWriter = 8, 10
    var wg sync.WaitGroup
    errCh := make(chan error, writers*perWriter*2)
    for w := 0; w < writers; w++ {
        wg.Add(1)
        go func(w int) {
            defer wg.Done()
            for i := 0; i < perWriter; i++ {
                r := Sample(fmt.Sprintf("w%d-%d", w, i), "1.00")
                if _, err := s.Save(ctx, r); err != nil {
                    errCh <- err
                    continue
                }
                page, err := s.FindPage(ctx, 1, writers*perWriter)
                if err != nil {
                    errCh <- err
                    continue
                }
                if len(page.Data) != page.Total {
                    errCh <- fmt.Errorf("torn page: total=%d len=%d", page.Total, len(page.Data))
                }
            }
        }(w)
    }
    wg.Wait()
    close(errCh)
    for err := range errCh {
        t.Fatalf("concurrent access: %v", err)
    }
    page, err := s.FindPage(ctx, 1, writers*perWriter)
    if err != nil {
        t.Fatalf("final page: %v", err)
    }
    if page.Total != writers*perWriter {
        t.Fatalf("expected %d records, got %d", writers*perWriter, page.Total)
    }
}
