package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rccgrog/rogsite/pkg/api"
)

type sqliteStore struct{ db *sql.DB }

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *sqliteStore) q(ctx context.Context) querier {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return s.db
}

// RunInTx begins a transaction, exposes it through the context and commits
// when fn succeeds. Nested calls reuse the outer transaction.
func (s *sqliteStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := fn(WithTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit()
}

// EventLog
func (s *sqliteStore) List(ctx context.Context, cur api.Cursor, limit int) ([]api.Event, api.Cursor, error) {
	q := `SELECT rowid, time, type, kind, version FROM events`
	args := []any{}
	switch {
	case cur.Seq > 0:
		q += ` WHERE time > ? OR (time = ? AND rowid > ?)`
		args = append(args, cur.After.UTC(), cur.After.UTC(), cur.Seq)
	case !cur.After.IsZero():
		q += ` WHERE time > ?`
		args = append(args, cur.After.UTC())
	}
	q += ` ORDER BY time ASC, rowid ASC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.q(ctx).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, api.Cursor{}, err
	}
	defer rows.Close()
	var out []api.Event
	var lastSeq int64
	for rows.Next() {
		var ev api.Event
		var typ, kind string
		if err := rows.Scan(&lastSeq, &ev.Time, &typ, &kind, &ev.Version); err != nil {
			return nil, api.Cursor{}, err
		}
		ev.Type = api.EventType(typ)
		ev.Kind = api.Kind(kind)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, api.Cursor{}, err
	}
	var next api.Cursor
	if len(out) > 0 {
		next = api.Cursor{After: out[len(out)-1].Time, Seq: lastSeq}
	}
	return out, next, nil
}

func (s *sqliteStore) GetSection(ctx context.Context, kind api.Kind) (api.Section, error) {
	var sec api.Section
	var k, rec string
	row := s.q(ctx).QueryRowContext(ctx, `SELECT kind, version, record, updated_at FROM sections WHERE kind=?`, string(kind))
	if err := row.Scan(&k, &sec.Version, &rec, &sec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return api.Section{}, ErrNotFound
		}
		return api.Section{}, err
	}
	sec.Kind = api.Kind(k)
	sec.Record = []byte(rec)
	return sec, nil
}

func (s *sqliteStore) ListSections(ctx context.Context) ([]api.Section, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT kind, version, record, updated_at FROM sections ORDER BY kind ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []api.Section
	for rows.Next() {
		var sec api.Section
		var k, rec string
		if err := rows.Scan(&k, &sec.Version, &rec, &sec.UpdatedAt); err != nil {
			return nil, err
		}
		sec.Kind = api.Kind(k)
		sec.Record = []byte(rec)
		out = append(out, sec)
	}
	return out, rows.Err()
}

func (s *sqliteStore) PutSection(ctx context.Context, sec api.Section, ifVersion int64) (api.Section, error) {
	if sec.Kind == "" {
		return api.Section{}, fmt.Errorf("section kind is required")
	}
	if sec.UpdatedAt.IsZero() {
		sec.UpdatedAt = time.Now().UTC()
	}
	var out api.Section
	err := s.RunInTx(ctx, func(ctx context.Context) error {
		tx := TxFromContext(ctx)
		var cur int64
		err := tx.QueryRowContext(ctx, `SELECT version FROM sections WHERE kind=?`, string(sec.Kind)).Scan(&cur)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if ifVersion > 0 {
				return ErrNotFound
			}
			sec.Version = 1
			if _, err := tx.ExecContext(ctx, `INSERT INTO sections(kind, version, record, updated_at) VALUES(?,?,?,?)`,
				string(sec.Kind), sec.Version, string(sec.Record), sec.UpdatedAt.UTC()); err != nil {
				if strings.Contains(err.Error(), "UNIQUE") {
					return ErrConflict
				}
				return err
			}
		case err != nil:
			return err
		default:
			if ifVersion > 0 && cur != ifVersion {
				return ErrConflict
			}
			sec.Version = cur + 1
			res, err := tx.ExecContext(ctx, `UPDATE sections SET version=?, record=?, updated_at=? WHERE kind=? AND version=?`,
				sec.Version, string(sec.Record), sec.UpdatedAt.UTC(), string(sec.Kind), cur)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return ErrConflict
			}
		}
		out = sec
		return appendEventTx(ctx, tx, api.Event{Time: sec.UpdatedAt, Type: api.EventUpsert, Kind: sec.Kind, Version: sec.Version})
	})
	if err != nil {
		return api.Section{}, err
	}
	return out, nil
}

func (s *sqliteStore) DeleteSection(ctx context.Context, kind api.Kind) error {
	return s.RunInTx(ctx, func(ctx context.Context) error {
		tx := TxFromContext(ctx)
		var cur int64
		if err := tx.QueryRowContext(ctx, `SELECT version FROM sections WHERE kind=?`, string(kind)).Scan(&cur); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE kind=?`, string(kind)); err != nil {
			return err
		}
		return appendEventTx(ctx, tx, api.Event{Time: time.Now().UTC(), Type: api.EventDelete, Kind: kind, Version: cur})
	})
}

// openSQLite connects to a SQLite database using modernc.org/sqlite driver and ensures schema exists.
func openSQLite(ctx context.Context, dsn string) (*Store, io.Closer, error) {
	path := strings.TrimPrefix(dsn, "sqlite://")
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, err
	}
	// set WAL mode
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, nil, err
	}
	if _, err := dbh.ExecContext(ctx, `PRAGMA busy_timeout=5000;`); err != nil {
		_ = dbh.Close()
		return nil, nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, nil, err
	}
	s := &sqliteStore{db: dbh}
	return &Store{Sections: s, Events: s, tx: s}, dbh, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS sections (
  kind TEXT PRIMARY KEY,
  version INTEGER NOT NULL,
  record TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
  time TIMESTAMP NOT NULL,
  type TEXT NOT NULL,
  kind TEXT NOT NULL,
  version INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_time ON events(time);
`)
	return err
}

// appendEventTx writes to events within the provided transaction.
func appendEventTx(ctx context.Context, tx *sql.Tx, ev api.Event) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO events(time, type, kind, version) VALUES(?,?,?,?)`,
		ev.Time.UTC(), string(ev.Type), string(ev.Kind), ev.Version)
	return err
}
