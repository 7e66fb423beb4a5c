package sqlxdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/Allen-Davis-M/Attendify/core"
	appfs "github.com/Allen-Davis-M/Attendify/fs"
)

const driver = "sqlite3"

// Store is a core.KVStore kept in a sqlite database file.
type Store struct {
	db     *sqlx.DB
	closed atomic.Bool
}

var _ core.KVStore = (*Store)(nil)

// Open opens (or creates) the sqlite file at path and migrates it.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	db, err := sqlx.Open(driver, path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}
	db.SetMaxOpenConns(1)

	if err = Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Migrate runs the embedded migrations up to the latest version.
func Migrate(db *sql.DB) error {
	return MigrateRun("up", db)
}

var gooseRunFunc = goose.Run

// MigrateRun runs a goose command against the embedded migrations.
func MigrateRun(command string, db *sql.DB, args ...string) error {
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect(driver); err != nil {
		return errors.Wrap(err, "setting migration dialect")
	}
	if err := gooseRunFunc(command, db, "migrations", args...); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if s.closed.Load() {
		return "", core.ErrStoreClosed
	}
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", core.ErrKeyNotFound
	case err != nil:
		return "", errors.Wrap(err, "reading from sqlite database")
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, key, value string) error {
	const q = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if s.closed.Load() {
		return core.ErrStoreClosed
	}
	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return errors.Wrap(err, "writing to sqlite database")
	}
	return nil
}

// DB exposes the underlying handle, e.g. to run migrations by hand.
func (s *Store) DB() *sql.DB {
	return s.db.DB
}

func (s *Store) Close() error {
	s.closed.Store(true)
	return s.db.Close()
}
