// Package storage defines the record store contract shared by every backend.
package storage

import (
    "context"
    "math"

    "github.com/tinoosan/records/internal/record"
)

// Store is the exclusive owner of record storage. Implementations must be safe
// for concurrent use; readers never observe a partially applied write.
type Store interface {
    // Save inserts or overwrites a record by ID (last writer wins).
    Save(ctx context.Context, r record.Record) (record.Record, error)
    // FindByID reports absence with ok=false, never with an error.
    FindByID(ctx context.Context, id string) (r record.Record, ok bool, err error)
    // FindPage returns the 1-based page of the given size. Total and Data come
    // from one consistent view of the store.
    FindPage(ctx context.Context, page, size int) (Page[record.Record], error)
    // DeleteByID reports whether a record was removed.
    DeleteByID(ctx context.Context, id string) (bool, error)
    ExistsByID(ctx context.Context, id string) (bool, error)
}

// ReadyChecker is optionally implemented by stores backed by an external service.
type ReadyChecker interface {
    Ready(ctx context.Context) error
}

// Page is one slice of a listing plus the total count it was cut from.
type Page[T any] struct {
    Total int
    Data  []T
}

// Offset returns the zero-based start index for a 1-based page, and false when
// the arguments cannot address any record.
func Offset(page, size int) (int, bool) {
    if page < 1 || size < 1 {
        return 0, false
    }
    // pages past what an int offset can address hold nothing
    if page-1 > math.MaxInt/size {
        return 0, false
    }
    return (page - 1) * size, true
}
