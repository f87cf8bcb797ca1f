// Package analytics provides a small page-view store backed by SQLite.
// IP addresses are never stored raw; they are hashed with a per-install
// random salt.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for analytics.
type Store struct {
	db   *sql.DB
	salt string
}

// PathCount is the visit count for one path.
type PathCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// NewStore opens (or creates) the analytics database at path, ensures
// the data directory exists, and runs schema setup.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	// WAL lets page-view inserts proceed alongside summary reads; the
	// busy timeout makes writers wait instead of failing immediately.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.loadSalt(); err != nil {
		return nil, fmt.Errorf("init salt: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS visits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL,
    ip_hash TEXT NOT NULL,
    referrer TEXT,
    timestamp DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

// loadSalt reads the per-install hashing salt, generating and
// persisting one on first run.
func (s *Store) loadSalt() error {
	var salt string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'salt'`).Scan(&salt)
	if errors.Is(err, sql.ErrNoRows) {
		raw := make([]byte, 16)
		if _, err := rand.Read(raw); err != nil {
			return err
		}
		salt = hex.EncodeToString(raw)
		if _, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES ('salt', ?)`, salt); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	s.salt = salt
	return nil
}

// RecordVisit stores one page view. The visitor IP is salted and
// hashed before it touches disk.
func (s *Store) RecordVisit(path, ip, referrer string) error {
	sum := sha256.Sum256([]byte(s.salt + ip))
	_, err := s.db.Exec(
		`INSERT INTO visits (path, ip_hash, referrer, timestamp) VALUES (?, ?, ?, ?)`,
		path, hex.EncodeToString(sum[:]), referrer, time.Now().UTC(),
	)
	return err
}

// TotalVisits returns the number of visits since the given time.
func (s *Store) TotalVisits(since time.Time) (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM visits WHERE timestamp >= ?`, since.UTC()).Scan(&n)
	return n, err
}

// UniqueVisitors returns the number of distinct visitor hashes since
// the given time.
func (s *Store) UniqueVisitors(since time.Time) (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(DISTINCT ip_hash) FROM visits WHERE timestamp >= ?`, since.UTC()).Scan(&n)
	return n, err
}

// CountsByPath returns visit counts per path since the given time,
// most visited first.
func (s *Store) CountsByPath(since time.Time) ([]PathCount, error) {
	rows, err := s.db.Query(
		`SELECT path, COUNT(*) AS n FROM visits WHERE timestamp >= ? GROUP BY path ORDER BY n DESC`,
		since.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []PathCount
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, pc)
	}
	return counts, rows.Err()
}

// DeleteOlderThan removes visits older than the given number of days
// and returns the number of rows deleted.
func (s *Store) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
