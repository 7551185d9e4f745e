// Package postgres provides a pgx-backed storage.Store.
//
// The schema lives in db/migrations and is applied by Migrate. Amounts travel as
// text so the decimal scale survives the round trip.
package postgres

import (
    "context"
    "errors"
    "fmt"

    "github.com/govalues/decimal"
    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"

    "github.com/tinoosan/records/internal/errs"
    "github.com/tinoosan/records/internal/record"
    "github.com/tinoosan/records/internal/storage"
)

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
    pool *pgxpool.Pool
    dsn  string
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
    cfg, err := pgxpool.ParseConfig(dsn)
    if err != nil { return nil, err }
    pool, err := pgxpool.NewWithConfig(ctx, cfg)
    if err != nil { return nil, err }
    // Verify connection
    if err := pool.Ping(ctx); err != nil { pool.Close(); return nil, err }
    return &Store{pool: pool, dsn: dsn}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() { if s.pool != nil { s.pool.Close() } }

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

const selectCols = `id, name, amount::text, category, type, create_time, update_time`

// Save upserts r by id. An overwrite keeps the row's seq and thus its position.
func (s *Store) Save(ctx context.Context, r record.Record) (record.Record, error) {
    if r.ID == "" { return record.Record{}, errs.Invalid("Transaction ID cannot be null") }
    _, err := s.pool.Exec(ctx, `
        insert into transactions (id, name, amount, category, type, create_time, update_time)
        values ($1, $2, $3::numeric, $4, $5, $6, $7)
        on conflict (id) do update set
            name = excluded.name,
            amount = excluded.amount,
            category = excluded.category,
            type = excluded.type,
            create_time = excluded.create_time,
            update_time = excluded.update_time
    `, r.ID, r.Name, r.Amount.String(), r.Category, string(r.Type), r.CreateTime, r.UpdateTime)
    if err != nil { return record.Record{}, fmt.Errorf("postgres: save: %w", err) }
    return r, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (record.Record, bool, error) {
    if id == "" { return record.Record{}, false, nil }
    row := s.pool.QueryRow(ctx, `select `+selectCols+` from transactions where id = $1`, id)
    r, err := scanRecord(row)
    if errors.Is(err, pgx.ErrNoRows) { return record.Record{}, false, nil }
    if err != nil { return record.Record{}, false, fmt.Errorf("postgres: find: %w", err) }
    return r, true, nil
}

// FindPage counts and slices inside one read-only repeatable-read transaction,
// so Total and Data come from the same snapshot.
func (s *Store) FindPage(ctx context.Context, page, size int) (storage.Page[record.Record], error) {
    out := storage.Page[record.Record]{Data: []record.Record{}}
    tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
    if err != nil { return out, fmt.Errorf("postgres: find page: %w", err) }
    defer func() { _ = tx.Rollback(ctx) }()

    if err := tx.QueryRow(ctx, `select count(*) from transactions`).Scan(&out.Total); err != nil {
        return out, fmt.Errorf("postgres: count: %w", err)
    }
    start, ok := storage.Offset(page, size)
    if !ok || start >= out.Total { return out, tx.Commit(ctx) }

    rows, err := tx.Query(ctx, `select `+selectCols+` from transactions order by seq limit $1 offset $2`, size, start)
    if err != nil { return out, fmt.Errorf("postgres: find page: %w", err) }
    defer rows.Close()
    for rows.Next() {
        r, err := scanRecord(rows)
        if err != nil { return out, fmt.Errorf("postgres: scan: %w", err) }
        out.Data = append(out.Data, r)
    }
    if err := rows.Err(); err != nil { return out, err }
    rows.Close()
    return out, tx.Commit(ctx)
}

func (s *Store) DeleteByID(ctx context.Context, id string) (bool, error) {
    if id == "" { return false, nil }
    tag, err := s.pool.Exec(ctx, `delete from transactions where id = $1`, id)
    if err != nil { return false, fmt.Errorf("postgres: delete: %w", err) }
    return tag.RowsAffected() > 0, nil
}

func (s *Store) ExistsByID(ctx context.Context, id string) (bool, error) {
    if id == "" { return false, nil }
    var exists bool
    if err := s.pool.QueryRow(ctx, `select exists(select 1 from transactions where id = $1)`, id).Scan(&exists); err != nil {
        return false, fmt.Errorf("postgres: exists: %w", err)
    }
    return exists, nil
}

// truncate empties the table. Used by tests.
func (s *Store) truncate(ctx context.Context) error {
    _, err := s.pool.Exec(ctx, `truncate transactions restart identity`)
    return err
}

func scanRecord(row pgx.Row) (record.Record, error) {
    var (
        r      record.Record
        amount string
        typ    string
    )
    if err := row.Scan(&r.ID, &r.Name, &amount, &r.Category, &typ, &r.CreateTime, &r.UpdateTime); err != nil {
        return record.Record{}, err
    }
    d, err := decimal.Parse(amount)
    if err != nil { return record.Record{}, fmt.Errorf("amount %q: %w", amount, err) }
    r.Amount = d
    r.Type = record.Type(typ)
    r.CreateTime = r.CreateTime.UTC()
    r.UpdateTime = r.UpdateTime.UTC()
    return r, nil
}
