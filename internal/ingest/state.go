package ingest

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// StateDB remembers which export files were already imported so a watched
// folder can be re-scanned without rewriting notes.
type StateDB struct {
	db *sql.DB
}

// ImportedFile is one remembered import.
type ImportedFile struct {
	Path       string
	Size       int64
	Hash       string
	Workouts   int
	ImportedAt time.Time
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "state.db"))
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS imported_files (
		path        TEXT PRIMARY KEY,
		size        INTEGER NOT NULL,
		hash        TEXT NOT NULL,
		workouts    INTEGER NOT NULL DEFAULT 0,
		imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsImported reports whether path was imported with the same size and hash.
func (s *StateDB) IsImported(path string, size int64, hash string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM imported_files WHERE path = ? AND size = ? AND hash = ?`,
		path, size, hash,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking import state of %s: %w", path, err)
	}
	return count > 0, nil
}

// MarkImported records a successful import. A changed file replaces its
// earlier record.
func (s *StateDB) MarkImported(path string, size int64, hash string, workouts int) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO imported_files (path, size, hash, workouts, imported_at)
		 VALUES (?, ?, ?, ?, ?)`,
		path, size, hash, workouts, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording import of %s: %w", path, err)
	}
	return nil
}

// History returns remembered imports, most recent first.
func (s *StateDB) History() ([]ImportedFile, error) {
	rows, err := s.db.Query(
		`SELECT path, size, hash, workouts, imported_at FROM imported_files ORDER BY imported_at DESC, path`)
	if err != nil {
		return nil, fmt.Errorf("querying import history: %w", err)
	}
	defer rows.Close()

	var out []ImportedFile
	for rows.Next() {
		var f ImportedFile
		if err := rows.Scan(&f.Path, &f.Size, &f.Hash, &f.Workouts, &f.ImportedAt); err != nil {
			return nil, fmt.Errorf("scanning import history: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}

// HashFile computes the SHA-256 hash of a file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
