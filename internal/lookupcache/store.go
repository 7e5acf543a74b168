package lookupcache

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// timeLayout sorts lexically in time order, which Purge relies on.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

//go:embed migrations/*.sql
var schemaFS embed.FS

// ErrLocked reports that another process holds the cache.
var ErrLocked = errors.New("lookup cache is in use by another process")

// Store is a SQLite-backed registry response cache.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
	now  func() time.Time
}

// Open creates or opens the cache database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock, now: time.Now}
	if _, err := migrate(ctx, db); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// migrate runs the embedded NNNN_name.sql scripts numbered above the
// database's user_version, in order, and returns the resulting version.
func migrate(ctx context.Context, db *sql.DB) (int, error) {
	var current int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}

	names, err := fs.Glob(schemaFS, "migrations/*.sql")
	if err != nil {
		return 0, fmt.Errorf("list migrations: %w", err)
	}
	// Glob returns names sorted, and the zero-padded prefix keeps that numeric.
	for _, name := range names {
		base := filepath.Base(name)
		prefix, _, _ := strings.Cut(base, "_")
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return 0, fmt.Errorf("migration %s: version prefix: %w", base, err)
		}
		if version <= current {
			continue
		}
		script, err := schemaFS.ReadFile(name)
		if err != nil {
			return 0, fmt.Errorf("read migration %s: %w", base, err)
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return 0, fmt.Errorf("begin migration %s: %w", base, err)
		}
		if _, err := tx.ExecContext(ctx, string(script)); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("apply migration %s: %w", base, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, "PRAGMA user_version = "+strconv.Itoa(version)); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("record migration %s: %w", base, err)
		}
		if err := tx.Commit(); err != nil {
			return 0, fmt.Errorf("commit migration %s: %w", base, err)
		}
		current = version
	}
	return current, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database and releases the lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
		err = fmt.Errorf("release cache lock: %w", unlockErr)
	}
	return err
}

// Get returns the stored payload for query and limit. Entries older than
// maxAge are treated as missing; maxAge <= 0 accepts any age.
func (s *Store) Get(ctx context.Context, query string, limit int, maxAge time.Duration) ([]byte, bool, error) {
	var (
		payload   []byte
		fetchedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM registry_responses WHERE query = ? AND limit_n = ?`,
		query, limit,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached response: %w", err)
	}
	if maxAge > 0 {
		ts, err := time.Parse(timeLayout, fetchedAt)
		if err != nil {
			return nil, false, fmt.Errorf("parse fetched_at %q: %w", fetchedAt, err)
		}
		if s.now().Sub(ts) > maxAge {
			return nil, false, nil
		}
	}
	return payload, true, nil
}

// Put stores payload for query and limit, replacing any previous entry.
func (s *Store) Put(ctx context.Context, query string, limit int, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO registry_responses (query, limit_n, payload, fetched_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(query, limit_n) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		query, limit, payload, s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("put cached response: %w", err)
	}
	return nil
}

// Purge deletes entries fetched more than olderThan ago and returns how many
// were removed. olderThan <= 0 clears the cache.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if olderThan <= 0 {
		res, err = s.db.ExecContext(ctx, `DELETE FROM registry_responses`)
	} else {
		cutoff := s.now().Add(-olderThan).UTC().Format(timeLayout)
		res, err = s.db.ExecContext(ctx, `DELETE FROM registry_responses WHERE fetched_at < ?`, cutoff)
	}
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of cached responses.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM registry_responses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return n, nil
}
