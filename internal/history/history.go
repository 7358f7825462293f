// Package history persists a record of past analyses in a local SQLite
// database, keyed by a content fingerprint so re-analyzing an unchanged
// deck is detectable.
package history

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/blake2b"

	"pptfonts/internal/analyze"
	"pptfonts/internal/fonts"
)

// Entry is one recorded analysis.
type Entry struct {
	ID           int64
	Path         string
	Fingerprint  string
	AnalyzedAt   time.Time
	SlideCount   int
	FontCount    int
	MissingCount int
	MissingFonts []string
	Legacy       bool
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dbPath, enables WAL
// mode, and creates the schema idempotently.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %s: %w", p, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS analyses (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		path          TEXT NOT NULL,
		fingerprint   TEXT NOT NULL,
		analyzed_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
		slide_count   INTEGER NOT NULL,
		font_count    INTEGER NOT NULL,
		missing_count INTEGER NOT NULL,
		missing_fonts TEXT NOT NULL DEFAULT '[]',
		legacy        INTEGER NOT NULL DEFAULT 0
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create analyses table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_analyses_fingerprint ON analyses(fingerprint)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create fingerprint index: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Fingerprint returns the hex BLAKE2b-256 digest of the deck bytes.
func Fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Record stores one analysis outcome.
func (s *Store) Record(res *analyze.Result, fingerprint string) (int64, error) {
	var missing []string
	for _, name := range res.Fonts.Names() {
		if v, ok := res.Verdicts[name]; ok && v.Status == fonts.Missing {
			missing = append(missing, name)
		}
	}
	missingJSON, err := json.Marshal(missing)
	if err != nil {
		return 0, err
	}

	r, err := s.db.Exec(
		`INSERT INTO analyses (path, fingerprint, slide_count, font_count, missing_count, missing_fonts, legacy)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.Path, fingerprint, res.SlideCount, res.FontCount(), res.MissingCount(), string(missingJSON), res.Legacy,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record analysis: %w", err)
	}
	return r.LastInsertId()
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, path, fingerprint, analyzed_at, slide_count, font_count, missing_count, missing_fonts, legacy
		 FROM analyses ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LastByFingerprint returns the most recent entry for a deck fingerprint,
// or sql.ErrNoRows when the deck has never been analyzed.
func (s *Store) LastByFingerprint(fingerprint string) (Entry, error) {
	row := s.db.QueryRow(
		`SELECT id, path, fingerprint, analyzed_at, slide_count, font_count, missing_count, missing_fonts, legacy
		 FROM analyses WHERE fingerprint = ? ORDER BY id DESC LIMIT 1`, fingerprint)
	return scanEntry(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var missingJSON string
	err := row.Scan(&e.ID, &e.Path, &e.Fingerprint, &e.AnalyzedAt,
		&e.SlideCount, &e.FontCount, &e.MissingCount, &missingJSON, &e.Legacy)
	if err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal([]byte(missingJSON), &e.MissingFonts); err != nil {
		return Entry{}, fmt.Errorf("corrupt missing_fonts column: %w", err)
	}
	return e, nil
}
