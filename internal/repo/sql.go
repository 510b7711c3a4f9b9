package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const blobSchema = `CREATE TABLE IF NOT EXISTS blobs (
	blob_key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// dialect holds the placeholder-specific statements of a driver.
type dialect struct {
	read   string
	upsert string
	delete string
}

var postgresDialect = dialect{
	read:   "SELECT value FROM blobs WHERE blob_key=$1",
	upsert: "INSERT INTO blobs (blob_key, value, updated_at) VALUES ($1, $2, $3) ON CONFLICT (blob_key) DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at",
	delete: "DELETE FROM blobs WHERE blob_key=$1",
}

var sqliteDialect = dialect{
	read:   "SELECT value FROM blobs WHERE blob_key=?",
	upsert: "INSERT INTO blobs (blob_key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT (blob_key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at",
	delete: "DELETE FROM blobs WHERE blob_key=?",
}

// SQLStore keeps blobs in a single table of a SQL database.
type SQLStore struct {
	db *sql.DB
	q  dialect
}

func newSQLStore(ctx context.Context, db *sql.DB, q dialect) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, blobSchema); err != nil {
		return nil, fmt.Errorf("create blobs table: %w", err)
	}
	return &SQLStore{db: db, q: q}, nil
}

// NewPostgresStore prepares the blobs table on an open postgres handle.
func NewPostgresStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	return newSQLStore(ctx, db, postgresDialect)
}

// NewSQLiteStore prepares the blobs table on an open sqlite handle.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	return newSQLStore(ctx, db, sqliteDialect)
}

func (s *SQLStore) ReadBlob(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.q.read, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *SQLStore) WriteBlob(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.q.upsert, key, value, time.Now().UTC())
	return err
}

func (s *SQLStore) DeleteBlob(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.q.delete, key)
	return err
}

// OpenPostgres opens and pings a postgres database. Connection strings
// without an sslmode get sslmode=require.
func OpenPostgres(connStr string) (*sql.DB, error) {
	if !strings.Contains(connStr, "sslmode=") {
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			sep := "?"
			if strings.Contains(connStr, "?") {
				sep = "&"
			}
			connStr = connStr + sep + "sslmode=require"
		} else {
			connStr = connStr + " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// OpenSQLite opens a sqlite database file, or a private in-memory database
// for path ":memory:".
func OpenSQLite(path string) (*sql.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection keeps ":memory:" a single database and serializes writers
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}
