// Package store persists exam history and LLM request logs in SQLite.
// Tables are declared with ent's schema package and migrated on open;
// rows are written and read with ent's SQL builders.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// pragmas run on the single pooled connection right after it opens.
var pragmas = []struct{ name, value string }{
	{"journal_mode", "WAL"},
	{"busy_timeout", "5000"},
	{"foreign_keys", "ON"},
	{"synchronous", "NORMAL"},
}

// Store is an open database. It is safe for concurrent use; writes are
// serialized on one connection.
type Store struct {
	db   *sql.DB
	drv  *entsql.Driver
	repo *eventRepo
}

// Open connects to the SQLite database at dsn, which may be a file path or
// a file: URI, and brings its tables up to date.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, drv: entsql.OpenDB(dialect.SQLite, db)}
	if err := s.init(context.Background()); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	for _, p := range pragmas {
		stmt := fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}

	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(ctx, s.db)
	if err != nil {
		return err
	}
	s.repo = &eventRepo{db: s.db, seq: seq}
	return nil
}

// DB exposes the connection for ad hoc queries.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.drv.Close() }

func (s *Store) EventRepo() EventRepo { return s.repo }

// DefaultDBPath picks the database file and creates its directory. The
// first of these wins:
//
//	$GATE_EXAM_DB
//	$XDG_DATA_HOME/gate-exam/gate-exam.db
//	~/.local/share/gate-exam/gate-exam.db
func DefaultDBPath() (string, error) {
	p := os.Getenv("GATE_EXAM_DB")
	if p == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home dir: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		p = filepath.Join(base, "gate-exam", "gate-exam.db")
	}
	return p, EnsureDir(p)
}

// EnsureDir creates the directory that will hold path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
