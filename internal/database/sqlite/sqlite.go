package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/cosmegraph/cosmegraph/internal/database/bunstore"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// ErrDatabaseNotFound is returned when a read-only database file is missing.
var ErrDatabaseNotFound = errors.New("sqlite database not found")

// OpenCatalog opens the relational master catalog read-only. The file must
// already exist; SQLite would otherwise create an empty database.
func OpenCatalog(ctx context.Context, path string) (*bunstore.BunStore, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	db, err := sql.Open(sqliteshim.ShimName, fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	return bunstore.NewBunStore(db, sqlitedialect.New()), nil
}

// OpenRunLog opens (creating if needed) the database holding the ingest run
// log and makes sure its schema exists.
func OpenRunLog(ctx context.Context, dsn string) (*bunstore.BunStore, error) {
	db, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// A single writer; the run log is touched once per batch.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	store := bunstore.NewBunStore(db, sqlitedialect.New())
	if err := store.InitRunSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
