package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/bnema/drivefocus/internal/adapters/store/sqlite/migrations"
	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/ports"
)

const (
	databaseName = "drivefocus.db"

	kindBool      = "bool"
	kindTimestamp = "timestamp"

	defaultBusyTimeout = 250 * time.Millisecond
)

var _ ports.StateStore = (*Store)(nil)

type Store struct {
	db    *sql.DB
	dir   string
	path  string
	clock ports.Clock
}

// NewStore opens (or creates) the state database inside dataDir.
func NewStore(dataDir string, busyTimeout time.Duration) (*Store, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, errors.New("state directory is empty")
	}
	if busyTimeout <= 0 {
		busyTimeout = defaultBusyTimeout
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, databaseName)
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", dbPath, busyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:    db,
		dir:   dataDir,
		path:  dbPath,
		clock: ports.SystemClock{},
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Dir returns the directory holding the database and its WAL files.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) GetBool(ctx context.Context, key string, fallback bool) (bool, error) {
	value, found, err := s.get(ctx, key, kindBool)
	if err != nil {
		return fallback, err
	}
	if !found {
		return fallback, nil
	}
	return value != 0, nil
}

func (s *Store) SetBool(ctx context.Context, key string, value bool) error {
	var stored int64
	if value {
		stored = 1
	}
	return s.put(ctx, key, kindBool, stored)
}

func (s *Store) GetTimestamp(ctx context.Context, key string) (time.Time, bool, error) {
	value, found, err := s.get(ctx, key, kindTimestamp)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	return time.UnixMilli(value), true, nil
}

func (s *Store) SetTimestamp(ctx context.Context, key string, value time.Time) error {
	return s.put(ctx, key, kindTimestamp, value.UnixMilli())
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys beginning with prefix in lexical order.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key FROM kv
		WHERE substr(key, 1, length(?)) = ?
		ORDER BY key
	`, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}

	return keys, nil
}

func (s *Store) get(ctx context.Context, key, kind string) (int64, bool, error) {
	var (
		storedKind string
		value      int64
	)
	row := s.db.QueryRowContext(ctx, `SELECT kind, value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&storedKind, &value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("reading %s: %w", key, err)
	}
	if storedKind != kind {
		return 0, false, fmt.Errorf("reading %s as %s: %w", key, kind, domain.ErrTypeMismatch)
	}
	return value, true, nil
}

func (s *Store) put(ctx context.Context, key, kind string, value int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, kind, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			kind = excluded.kind,
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, kind, value, s.clock.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// migrate runs all pending migrations. Statements are idempotent so two
// processes opening a fresh database at once both succeed.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at INTEGER NOT NULL
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
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(
			`INSERT OR IGNORE INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
			version, s.clock.Now().UnixMilli(),
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
