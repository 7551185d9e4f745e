package postgres

import (
    "database/sql"
    "errors"
    "fmt"

    "github.com/golang-migrate/migrate/v4"
    migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
    "github.com/golang-migrate/migrate/v4/source/iofs"
    _ "github.com/lib/pq" // database/sql driver used only by the migrator

    "github.com/tinoosan/records/db"
)

// Migrate applies every pending migration from db/migrations and reports the
// schema version before and after. Running it on an up-to-date schema is a no-op.
func (s *Store) Migrate() (from, to uint, err error) {
    conn, err := sql.Open("postgres", s.dsn)
    if err != nil { return 0, 0, fmt.Errorf("postgres: migrate: %w", err) }
    defer conn.Close()

    driver, err := migratepg.WithInstance(conn, &migratepg.Config{})
    if err != nil { return 0, 0, fmt.Errorf("postgres: migrate driver: %w", err) }
    src, err := iofs.New(db.Migrations, "migrations")
    if err != nil { return 0, 0, fmt.Errorf("postgres: migrate source: %w", err) }
    m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
    if err != nil { return 0, 0, fmt.Errorf("postgres: migrate: %w", err) }

    from, _, err = m.Version()
    if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
        return 0, 0, fmt.Errorf("postgres: migrate version: %w", err)
    }
    if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
        return from, from, fmt.Errorf("postgres: migrate up: %w", err)
    }
    to, _, err = m.Version()
    if err != nil { return from, 0, fmt.Errorf("postgres: migrate version: %w", err) }
    return from, to, nil
}
