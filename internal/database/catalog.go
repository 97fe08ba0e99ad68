package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/genix/internal/wordlist"
)

// DBFileName is the catalog file created inside the data directory.
const DBFileName = "genix.db"

var (
	// ErrWordlistNotFound is returned when no wordlist has the given name.
	ErrWordlistNotFound = errors.New("wordlist not found in catalog")

	// ErrChecksumMismatch is returned when stored words no longer match the
	// checksum recorded at import time.
	ErrChecksumMismatch = errors.New("wordlist checksum mismatch: catalog entry is corrupted")

	// ErrInvalidName is returned for empty names or names containing whitespace.
	ErrInvalidName = errors.New("invalid wordlist name")
)

// Catalog provides SQLite-based storage for named wordlists.
type Catalog struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Catalog behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a Catalog in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*Catalog, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog not found at %s (import a wordlist first): %w", dbPath, err)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc creates it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	c := &Catalog{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := c.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Path returns the path of the catalog file.
func (c *Catalog) Path() string {
	return c.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (c *Catalog) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS wordlists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		source TEXT,
		word_count INTEGER NOT NULL,
		checksum TEXT NOT NULL,
		imported_at TEXT NOT NULL
	);

	-- Words keep their position so the list order survives a round trip
	CREATE TABLE IF NOT EXISTS words (
		wordlist_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		word TEXT NOT NULL,
		PRIMARY KEY (wordlist_id, position)
	);
	`

	_, err := c.db.ExecContext(context.Background(), schema)
	return err
}

// WordlistInfo describes a stored wordlist without its words.
type WordlistInfo struct {
	Name       string    `json:"name"`
	Source     string    `json:"source,omitempty"`
	WordCount  int       `json:"word_count"`
	Checksum   string    `json:"checksum"`
	ImportedAt time.Time `json:"imported_at"`
}

// validateName rejects names that could not be typed as a flag value.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// SaveWordlist stores wl under name, replacing any wordlist with that name.
// The whole import runs in one transaction.
func (c *Catalog) SaveWordlist(ctx context.Context, name, source string, wl *wordlist.Wordlist) (err error) {
	if err := validateName(name); err != nil {
		return err
	}
	if wl == nil || wl.WordCount() == 0 {
		return wordlist.ErrEmptyWordlist
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err := deleteWordlistTx(ctx, tx, name); err != nil && !errors.Is(err, ErrWordlistNotFound) {
		return err
	}

	res, err := tx.ExecContext(ctx, `
	INSERT INTO wordlists (name, source, word_count, checksum, imported_at)
	VALUES (?, ?, ?, ?, ?)
	`, name, source, wl.WordCount(), wl.Checksum(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save wordlist %q: %w", name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read wordlist id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words (wordlist_id, position, word) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare word insert: %w", err)
	}
	defer stmt.Close()

	for i, w := range wl.Words() {
		if _, err := stmt.ExecContext(ctx, id, i, w); err != nil {
			return fmt.Errorf("failed to save word %d of %q: %w", i, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit wordlist %q: %w", name, err)
	}
	return nil
}

// GetWordlistInfo returns the metadata of the named wordlist.
func (c *Catalog) GetWordlistInfo(ctx context.Context, name string) (*WordlistInfo, error) {
	info, _, err := c.getInfo(ctx, name)
	return info, err
}

func (c *Catalog) getInfo(ctx context.Context, name string) (*WordlistInfo, int64, error) {
	query := `
	SELECT id, name, source, word_count, checksum, imported_at
	FROM wordlists WHERE name = ?
	`

	var (
		id         int64
		info       WordlistInfo
		source     sql.NullString
		importedAt string
	)
	err := c.db.QueryRowContext(ctx, query, name).Scan(
		&id, &info.Name, &source, &info.WordCount, &info.Checksum, &importedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("%w: %s", ErrWordlistNotFound, name)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query wordlist %q: %w", name, err)
	}

	info.Source = source.String
	info.ImportedAt = parseTimestamp(importedAt)
	return &info, id, nil
}

// LoadWordlist reads the named wordlist and verifies it against the
// checksum recorded at import time.
func (c *Catalog) LoadWordlist(ctx context.Context, name string) (*wordlist.Wordlist, error) {
	info, id, err := c.getInfo(ctx, name)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, `SELECT word FROM words WHERE wordlist_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query words of %q: %w", name, err)
	}
	defer rows.Close()

	words := make([]string, 0, info.WordCount)
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read words of %q: %w", name, err)
	}

	wl, err := wordlist.FromWords(words)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrChecksumMismatch, name, err)
	}
	if wl.WordCount() != info.WordCount || wl.Checksum() != info.Checksum {
		return nil, fmt.Errorf("%w: %s", ErrChecksumMismatch, name)
	}
	return wl, nil
}

// ListWordlists returns every stored wordlist ordered by name.
func (c *Catalog) ListWordlists(ctx context.Context) ([]WordlistInfo, error) {
	query := `
	SELECT name, source, word_count, checksum, imported_at
	FROM wordlists ORDER BY name
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list wordlists: %w", err)
	}
	defer rows.Close()

	var results []WordlistInfo
	for rows.Next() {
		var (
			info       WordlistInfo
			source     sql.NullString
			importedAt string
		)
		if err := rows.Scan(&info.Name, &source, &info.WordCount, &info.Checksum, &importedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wordlist: %w", err)
		}
		info.Source = source.String
		info.ImportedAt = parseTimestamp(importedAt)
		results = append(results, info)
	}

	return results, rows.Err()
}

// DeleteWordlist removes the named wordlist and its words.
func (c *Catalog) DeleteWordlist(ctx context.Context, name string) (err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err := deleteWordlistTx(ctx, tx, name); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete of %q: %w", name, err)
	}
	return nil
}

func deleteWordlistTx(ctx context.Context, tx *sql.Tx, name string) error {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM wordlists WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrWordlistNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to query wordlist %q: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE wordlist_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete words of %q: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM wordlists WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete wordlist %q: %w", name, err)
	}
	return nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses a timestamp string from SQLite.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
