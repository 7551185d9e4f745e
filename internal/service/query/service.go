// Package query implements the read-side transaction use cases.
package query

import (
    "context"
    "strings"

    "github.com/tinoosan/records/internal/cache"
    "github.com/tinoosan/records/internal/errs"
    "github.com/tinoosan/records/internal/record"
    "github.com/tinoosan/records/internal/storage"
)

// MaxPageSize caps the size argument of GetPageTransactions.
const MaxPageSize = 1000

// Reader is the slice of the store the query side needs.
type Reader interface {
    FindByID(ctx context.Context, id string) (record.Record, bool, error)
    FindPage(ctx context.Context, page, size int) (storage.Page[record.Record], error)
}

type Service interface {
    GetTransactionByID(ctx context.Context, id string) (record.Record, error)
    GetPageTransactions(ctx context.Context, page, size int) (storage.Page[record.Record], error)
}

type service struct {
    reader Reader
    views  cache.Cache[record.Record]
    cached bool
}

// New wires the query service. A nil views cache means every read hits the store.
func New(reader Reader, views cache.Cache[record.Record]) Service {
    if views == nil { views = cache.Nop[record.Record]{} }
    _, nop := views.(cache.Nop[record.Record])
    return &service{reader: reader, views: views, cached: !nop}
}

// GetTransactionByID reads through the view cache.
func (s *service) GetTransactionByID(ctx context.Context, id string) (record.Record, error) {
    if strings.TrimSpace(id) == "" { return record.Record{}, errs.Invalid("Transaction ID cannot be null or empty") }
    if cached, ok := s.views.Get(ctx, id); ok { return *cached, nil }

    r, ok, err := s.reader.FindByID(ctx, id)
    if err != nil { return record.Record{}, errs.Internal(err) }
    if !ok { return record.Record{}, errs.NotFound("Transaction not found") }
    if s.cached { s.fill(ctx, r) }
    return r, nil
}

// fill caches r, then reads the store again. A write that landed after the
// first read has already evicted, so a fill that no longer matches the store
// must be evicted here or it would outlive that write until the ttl expires.
func (s *service) fill(ctx context.Context, r record.Record) {
    s.views.Set(ctx, r.ID, &r)
    again, ok, err := s.reader.FindByID(ctx, r.ID)
    if err == nil && ok && sameView(r, again) { return }
    s.views.Delete(ctx, r.ID)
}

func sameView(a, b record.Record) bool {
    return a.Name == b.Name &&
        a.Amount == b.Amount &&
        a.Category == b.Category &&
        a.Type == b.Type &&
        a.UpdateTime.Equal(b.UpdateTime)
}

// GetPageTransactions validates page before size.
func (s *service) GetPageTransactions(ctx context.Context, page, size int) (storage.Page[record.Record], error) {
    switch {
    case page < 1:
        return storage.Page[record.Record]{}, errs.Invalid("page number must be greater than 0")
    case size < 1:
        return storage.Page[record.Record]{}, errs.Invalid("size must be greater than 0")
    case size > MaxPageSize:
        return storage.Page[record.Record]{}, errs.Invalid("size must be less than max")
    }
    p, err := s.reader.FindPage(ctx, page, size)
    if err != nil { return storage.Page[record.Record]{}, errs.Internal(err) }
    return p, nil
}
