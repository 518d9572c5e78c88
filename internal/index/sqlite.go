package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// DBFileName is the scratch database file created inside the DB directory.
const DBFileName = "sitegrep-index.db"

// SQLiteStore is a Store backed by a scratch SQLite database.
type SQLiteStore struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the database file path, or ":memory:".
	dbPath string
}

// OpenSQLite opens a scratch index database in dbDir.
// The directory is created if needed. An empty dbDir opens an in-memory
// database instead. Any pages left over from a previous run are dropped.
func OpenSQLite(ctx context.Context, dbDir string) (*SQLiteStore, error) {
	dsn := ":memory:"
	dbPath := dsn
	if dbDir != "" {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dbPath = filepath.Join(dbDir, DBFileName)
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: SQLite has a single writer, and every connection to
	// ":memory:" would otherwise see its own empty database. For the same
	// reason an in-memory connection must never be recycled.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if dbDir != "" {
		db.SetConnMaxLifetime(time.Hour)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath}
	if err := s.resetTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Path returns the database file path, or ":memory:".
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// resetTables drops and recreates the schema.
func (s *SQLiteStore) resetTables(ctx context.Context) error {
	schema := `
	DROP TABLE IF EXISTS pages;

	CREATE TABLE pages (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL UNIQUE,
		text TEXT NOT NULL,
		indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Put stores text under url. The row keeps its seq on update so the page
// keeps its place in iteration order.
func (s *SQLiteStore) Put(ctx context.Context, url, text string) error {
	query := `
	INSERT INTO pages (url, text) VALUES (?, ?)
	ON CONFLICT(url) DO UPDATE SET
		text = excluded.text,
		indexed_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.ExecContext(ctx, query, url, text); err != nil {
		return s.wrap("failed to insert page", err)
	}
	return nil
}

// Get returns the text stored under url.
func (s *SQLiteStore) Get(ctx context.Context, url string) (string, bool, error) {
	var text string
	err := s.db.QueryRowContext(ctx, `SELECT text FROM pages WHERE url = ?`, url).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, s.wrap("failed to get page", err)
	}
	return text, true, nil
}

// Len returns the number of stored pages.
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n); err != nil {
		return 0, s.wrap("failed to count pages", err)
	}
	return n, nil
}

// Each iterates pages ordered by insertion.
func (s *SQLiteStore) Each(ctx context.Context, fn func(url, text string) bool) error {
	rows, err := s.db.QueryContext(ctx, `SELECT url, text FROM pages ORDER BY seq`)
	if err != nil {
		return s.wrap("failed to query pages", err)
	}
	defer rows.Close()

	for rows.Next() {
		var url, text string
		if err := rows.Scan(&url, &text); err != nil {
			return s.wrap("failed to scan page", err)
		}
		if !fn(url, text) {
			return nil
		}
	}
	return rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// wrap maps "database is closed" to ErrStoreClosed and wraps everything else.
func (s *SQLiteStore) wrap(msg string, err error) error {
	if err.Error() == "sql: database is closed" {
		return ErrStoreClosed
	}
	return fmt.Errorf("%s: %w", msg, err)
}
