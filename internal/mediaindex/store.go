package mediaindex

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists the content-hash to remote-identifier mapping in SQLite.
// The renamed filename remains the primary idempotence marker; the index is
// the safety net for assets whose post-upload rename failed.
type Store struct {
	db   *sql.DB
	path string
}

// Entry maps one file's content hash to its remote identity.
type Entry struct {
	Hash       string
	LocalPath  string
	RemoteID   int
	RemoteSlug string
	UploadedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS media_index (
    content_hash TEXT PRIMARY KEY,
    local_path   TEXT NOT NULL,
    remote_id    INTEGER NOT NULL,
    remote_slug  TEXT NOT NULL DEFAULT '',
    uploaded_at  TEXT NOT NULL
)`

// Open initializes or connects to the index database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lookup returns the entry for a content hash, or nil when unknown.
func (s *Store) Lookup(ctx context.Context, hash string) (*Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT content_hash, local_path, remote_id, remote_slug, uploaded_at
         FROM media_index WHERE content_hash = ?`,
		hash,
	)

	var entry Entry
	var uploadedAt string
	err := row.Scan(&entry.Hash, &entry.LocalPath, &entry.RemoteID, &entry.RemoteSlug, &uploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup index entry: %w", err)
	}
	if parsed, parseErr := time.Parse(time.RFC3339Nano, uploadedAt); parseErr == nil {
		entry.UploadedAt = parsed
	}
	return &entry, nil
}

// Record upserts the remote identity for a content hash.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.Hash == "" {
		return errors.New("index entry requires a content hash")
	}
	if entry.RemoteID <= 0 {
		return errors.New("index entry requires a remote id")
	}
	uploadedAt := entry.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO media_index (content_hash, local_path, remote_id, remote_slug, uploaded_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(content_hash) DO UPDATE SET
             local_path = excluded.local_path,
             remote_id = excluded.remote_id,
             remote_slug = excluded.remote_slug,
             uploaded_at = excluded.uploaded_at`,
		entry.Hash,
		entry.LocalPath,
		entry.RemoteID,
		entry.RemoteSlug,
		uploadedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record index entry: %w", err)
	}
	return nil
}

// HashFile computes the hex-encoded SHA-256 of a file's contents.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hashing: %w", err)
	}
	defer file.Close()

	digest := sha256.New()
	if _, err := io.Copy(digest, file); err != nil {
		return "", fmt.Errorf("hash contents: %w", err)
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}
