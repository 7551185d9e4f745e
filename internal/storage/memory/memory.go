// Package memory provides the default in-memory record store.
// One RWMutex guards both the map and the insertion-order index, so a page and
// its total are always read from the same instant.
package memory

import (
    "context"
    "sync"

    "github.com/tinoosan/records/internal/errs"
    "github.com/tinoosan/records/internal/record"
    "github.com/tinoosan/records/internal/storage"
)

// Store is an in-memory implementation of storage.Store.
// It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
    mu      sync.RWMutex
    records map[string]record.Record
    // Insertion order of ids; overwrites keep their original slot.
    order []string
}

// New constructs an empty in-memory store.
func New() *Store {
    return &Store{records: make(map[string]record.Record)}
}

// Seed helpers for local dev/tests.
func (s *Store) SeedRecord(r record.Record) { s.mu.Lock(); s.putLocked(r); s.mu.Unlock() }
func (s *Store) Reset() {
    s.mu.Lock()
    s.records = map[string]record.Record{}
    s.order = nil
    s.mu.Unlock()
}

// Len returns the current number of records.
func (s *Store) Len() int {
    s.mu.RLock(); defer s.mu.RUnlock()
    return len(s.records)
}

// Save implements storage.Store.
func (s *Store) Save(_ context.Context, r record.Record) (record.Record, error) {
    if r.ID == "" {
        return record.Record{}, errs.Invalid("Transaction ID cannot be null")
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    s.putLocked(r)
    return r, nil
}

// FindByID implements storage.Store.
func (s *Store) FindByID(_ context.Context, id string) (record.Record, bool, error) {
    if id == "" { return record.Record{}, false, nil }
    s.mu.RLock(); defer s.mu.RUnlock()
    r, ok := s.records[id]
    return r, ok, nil
}

// FindPage implements storage.Store. Count and copy happen under one read lock.
func (s *Store) FindPage(_ context.Context, page, size int) (storage.Page[record.Record], error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    total := len(s.order)
    out := storage.Page[record.Record]{Total: total, Data: []record.Record{}}
    start, ok := storage.Offset(page, size)
    if !ok || start >= total {
        return out, nil
    }
    end := start + size
    if end > total || end < start { end = total }
    out.Data = make([]record.Record, 0, end-start)
    for _, id := range s.order[start:end] {
        out.Data = append(out.Data, s.records[id])
    }
    return out, nil
}

// DeleteByID implements storage.Store.
func (s *Store) DeleteByID(_ context.Context, id string) (bool, error) {
    if id == "" { return false, nil }
    s.mu.Lock(); defer s.mu.Unlock()
    if _, ok := s.records[id]; !ok {
        return false, nil
    }
    delete(s.records, id)
    s.removeFromIndexLocked(id)
    return true, nil
}

// ExistsByID implements storage.Store.
func (s *Store) ExistsByID(_ context.Context, id string) (bool, error) {
    if id == "" { return false, nil }
    s.mu.RLock(); defer s.mu.RUnlock()
    _, ok := s.records[id]
    return ok, nil
}

// putLocked stores r, appending its id to the order index on first insert.
// Caller must hold s.mu (write lock).
func (s *Store) putLocked(r record.Record) {
    if _, exists := s.records[r.ID]; !exists {
        s.order = append(s.order, r.ID)
    }
    s.records[r.ID] = r
}

// removeFromIndexLocked drops id from the order index.
// Caller must hold s.mu (write lock).
func (s *Store) removeFromIndexLocked(id string) {
    for i, v := range s.order {
        if v == id {
            copy(s.order[i:], s.order[i+1:])
            s.order[len(s.order)-1] = ""
            s.order = s.order[:len(s.order)-1]
            return
        }
    }
}
