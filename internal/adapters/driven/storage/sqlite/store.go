package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
)

// keyToken is the kv key holding the session token.
const keyToken = "auth.token"

// DBName is the database file name inside the data directory.
const DBName = "docdesk.db"

// Store is SQLite-based storage for the state docdesk keeps between runs.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in dataDir.
// If dataDir is empty, defaults to ~/.docdesk/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docdesk", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBName)

	// WAL lets the watcher write while the CLI reads.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// TokenStore returns a TokenStore backed by this store.
func (s *Store) TokenStore() driven.TokenStore {
	return &tokenStore{store: s}
}

// UploadJournal returns an UploadJournal backed by this store.
func (s *Store) UploadJournal() driven.UploadJournal {
	return &uploadJournal{store: s}
}

// migrate applies every up migration newer than the recorded version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}

// apply runs one migration and records its version atomically.
func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// version returns the latest applied migration.
func (s *Store) version() (int, error) {
	var v int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// ==================== Token Store ====================

// tokenStore implements driven.TokenStore.
type tokenStore struct {
	store *Store
}

var _ driven.TokenStore = (*tokenStore)(nil)

// tokenRecord is the JSON form of a stored token.
type tokenRecord struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Expiry      time.Time `json:"expiry,omitempty"`
}

// LoadToken returns the stored token or domain.ErrNotFound.
func (t *tokenStore) LoadToken(ctx context.Context) (domain.Token, error) {
	var value string
	err := t.store.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", keyToken).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Token{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Token{}, fmt.Errorf("loading token: %w", err)
	}

	var rec tokenRecord
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return domain.Token{}, fmt.Errorf("decoding token: %w", err)
	}
	return domain.Token(rec), nil
}

// SaveToken replaces the stored token.
func (t *tokenStore) SaveToken(ctx context.Context, token domain.Token) error {
	value, err := json.Marshal(tokenRecord(token))
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	_, err = t.store.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, keyToken, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

// ClearToken erases the stored token.
func (t *tokenStore) ClearToken(ctx context.Context) error {
	if _, err := t.store.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", keyToken); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

// ==================== Upload Journal ====================

// uploadJournal implements driven.UploadJournal.
type uploadJournal struct {
	store *Store
}

var _ driven.UploadJournal = (*uploadJournal)(nil)

// HasUploaded returns true if a successful upload with checksum exists.
func (j *uploadJournal) HasUploaded(ctx context.Context, checksum string) (bool, error) {
	var n int
	err := j.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM uploads
		WHERE checksum = ? AND document_id != '' AND error = ''
	`, checksum).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking upload journal: %w", err)
	}
	return n > 0, nil
}

// Record appends an entry. A missing ID or timestamp is filled in.
func (j *uploadJournal) Record(ctx context.Context, rec domain.UploadRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.UploadedAt.IsZero() {
		rec.UploadedAt = time.Now()
	}
	_, err := j.store.db.ExecContext(ctx, `
		INSERT INTO uploads (id, path, checksum, document_id, error, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Path, rec.Checksum, rec.DocumentID, rec.Error, rec.UploadedAt.UTC())
	if err != nil {
		return fmt.Errorf("recording upload: %w", err)
	}
	return nil
}

// Recent returns the newest entries first. A non-positive limit returns all.
func (j *uploadJournal) Recent(ctx context.Context, limit int) ([]domain.UploadRecord, error) {
	query := `SELECT id, path, checksum, document_id, error, uploaded_at
		FROM uploads ORDER BY uploaded_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing uploads: %w", err)
	}
	defer rows.Close()

	var out []domain.UploadRecord
	for rows.Next() {
		var rec domain.UploadRecord
		if err := rows.Scan(&rec.ID, &rec.Path, &rec.Checksum, &rec.DocumentID, &rec.Error, &rec.UploadedAt); err != nil {
			return nil, fmt.Errorf("scanning upload: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
