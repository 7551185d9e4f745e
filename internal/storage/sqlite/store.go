// Package sqlite provides a single-file storage.Store on the pure Go
// modernc.org/sqlite driver.
package sqlite

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    "github.com/govalues/decimal"
    _ "modernc.org/sqlite" // pure go sqlite driver

    "github.com/tinoosan/records/internal/errs"
    "github.com/tinoosan/records/internal/record"
    "github.com/tinoosan/records/internal/storage"
)

// Store persists records in one SQLite table. Amounts and timestamps are
// stored as text so scale and sub-second precision are kept exactly.
type Store struct {
    db *sql.DB
}

const schema = `CREATE TABLE IF NOT EXISTS transactions (
    seq         INTEGER PRIMARY KEY AUTOINCREMENT,
    id          TEXT NOT NULL UNIQUE,
    name        TEXT NOT NULL,
    amount      TEXT NOT NULL,
    category    TEXT NOT NULL DEFAULT '',
    type        TEXT NOT NULL DEFAULT '',
    create_time TEXT NOT NULL,
    update_time TEXT NOT NULL
)`

// Open creates (or reuses) the database at path and applies the schema.
func Open(path string) (*Store, error) {
    if path == "" {
        path = "records.db"
    }
    if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
        return nil, fmt.Errorf("create dirs: %w", err)
    }
    db, err := sql.Open("sqlite", path)
    if err != nil {
        return nil, fmt.Errorf("open sqlite: %w", err)
    }
    // One connection serializes writers and keeps every transaction on the same file handle.
    db.SetMaxOpenConns(1)
    if _, err := db.Exec(schema); err != nil {
        _ = db.Close()
        return nil, fmt.Errorf("create transactions table: %w", err)
    }
    return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Ready pings the database.
func (s *Store) Ready(ctx context.Context) error { return s.db.PingContext(ctx) }

const selectCols = `id, name, amount, category, type, create_time, update_time`

func (s *Store) Save(ctx context.Context, r record.Record) (record.Record, error) {
    if r.ID == "" {
        return record.Record{}, errs.Invalid("Transaction ID cannot be null")
    }
    _, err := s.db.ExecContext(ctx, `
        INSERT INTO transactions (id, name, amount, category, type, create_time, update_time)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            amount = excluded.amount,
            category = excluded.category,
            type = excluded.type,
            create_time = excluded.create_time,
            update_time = excluded.update_time`,
        r.ID, r.Name, r.Amount.String(), r.Category, string(r.Type), formatTime(r.CreateTime), formatTime(r.UpdateTime))
    if err != nil {
        return record.Record{}, fmt.Errorf("sqlite: save: %w", err)
    }
    return r, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (record.Record, bool, error) {
    if id == "" {
        return record.Record{}, false, nil
    }
    row := s.db.QueryRowContext(ctx, `SELECT `+selectCols+` FROM transactions WHERE id = ?`, id)
    r, err := scanRecord(row)
    if errors.Is(err, sql.ErrNoRows) {
        return record.Record{}, false, nil
    }
    if err != nil {
        return record.Record{}, false, fmt.Errorf("sqlite: find: %w", err)
    }
    return r, true, nil
}

// FindPage counts and slices inside one transaction.
func (s *Store) FindPage(ctx context.Context, page, size int) (out storage.Page[record.Record], retErr error) {
    out = storage.Page[record.Record]{Data: []record.Record{}}
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return out, fmt.Errorf("sqlite: find page: %w", err)
    }
    defer func() {
        if retErr != nil {
            _ = tx.Rollback()
        }
    }()

    if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&out.Total); err != nil {
        return out, fmt.Errorf("sqlite: count: %w", err)
    }
    start, ok := storage.Offset(page, size)
    if ok && start < out.Total {
        rows, err := tx.QueryContext(ctx, `SELECT `+selectCols+` FROM transactions ORDER BY seq LIMIT ? OFFSET ?`, size, start)
        if err != nil {
            return out, fmt.Errorf("sqlite: find page: %w", err)
        }
        for rows.Next() {
            r, err := scanRecord(rows)
            if err != nil {
                _ = rows.Close()
                return out, fmt.Errorf("sqlite: scan: %w", err)
            }
            out.Data = append(out.Data, r)
        }
        if err := rows.Err(); err != nil {
            _ = rows.Close()
            return out, err
        }
        _ = rows.Close()
    }
    return out, tx.Commit()
}

func (s *Store) DeleteByID(ctx context.Context, id string) (bool, error) {
    if id == "" {
        return false, nil
    }
    res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
    if err != nil {
        return false, fmt.Errorf("sqlite: delete: %w", err)
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n > 0, nil
}

func (s *Store) ExistsByID(ctx context.Context, id string) (bool, error) {
    if id == "" {
        return false, nil
    }
    var one int
    err := s.db.QueryRowContext(ctx, `SELECT 1 FROM transactions WHERE id = ?`, id).Scan(&one)
    if errors.Is(err, sql.ErrNoRows) {
        return false, nil
    }
    if err != nil {
        return false, fmt.Errorf("sqlite: exists: %w", err)
    }
    return true, nil
}

type scanner interface {
    Scan(dest ...any) error
}

func scanRecord(row scanner) (record.Record, error) {
    var (
        r                record.Record
        amount, typ      string
        created, updated string
    )
    if err := row.Scan(&r.ID, &r.Name, &amount, &r.Category, &typ, &created, &updated); err != nil {
        return record.Record{}, err
    }
    d, err := decimal.Parse(amount)
    if err != nil {
        return record.Record{}, fmt.Errorf("amount %q: %w", amount, err)
    }
    r.Amount = d
    r.Type = record.Type(typ)
    if r.CreateTime, err = time.Parse(time.RFC3339Nano, created); err != nil {
        return record.Record{}, fmt.Errorf("create_time: %w", err)
    }
    if r.UpdateTime, err = time.Parse(time.RFC3339Nano, updated); err != nil {
        return record.Record{}, fmt.Errorf("update_time: %w", err)
    }
    return r, nil
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }
