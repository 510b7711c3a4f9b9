package repo

import (
	"context"
	"database/sql"
	"fmt"
)

// Open returns the blob store for driver ("sqlite", "postgres" or "memory")
// and a func releasing its connection.
func Open(ctx context.Context, driver, sqlitePath, databaseURL string) (BlobStore, func() error, error) {
	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case "memory":
		return NewMemoryStore(), func() error { return nil }, nil
	case "sqlite":
		db, err = OpenSQLite(sqlitePath)
	case "postgres":
		db, err = OpenPostgres(databaseURL)
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
	if err != nil {
		return nil, nil, err
	}

	var store *SQLStore
	if driver == "postgres" {
		store, err = NewPostgresStore(ctx, db)
	} else {
		store, err = NewSQLiteStore(ctx, db)
	}
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, db.Close, nil
}
