package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rccgrog/rogsite/pkg/api"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("version conflict")
)

// SectionRepo stores one document per section kind.
type SectionRepo interface {
	GetSection(ctx context.Context, kind api.Kind) (api.Section, error)
	ListSections(ctx context.Context) ([]api.Section, error)
	// PutSection writes s and returns the stored row. ifVersion 0 writes
	// unconditionally; otherwise the stored version must equal ifVersion.
	PutSection(ctx context.Context, s api.Section, ifVersion int64) (api.Section, error)
	DeleteSection(ctx context.Context, kind api.Kind) error
}

// EventLog lists the audit trail of section writes.
type EventLog interface {
	List(ctx context.Context, cur api.Cursor, limit int) ([]api.Event, api.Cursor, error)
}

// Store groups the repositories behind one backend.
type Store struct {
	Sections SectionRepo
	Events   EventLog
	tx       TxRunner
}

// RunInTx runs fn so that every repository call made with the context it
// receives shares one transaction. Backends without transactions call fn
// directly.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.RunInTx(ctx, fn)
}

// Open returns a Store for dsn: sqlite://<path> or mem://.
func Open(ctx context.Context, dsn string) (*Store, io.Closer, error) {
	switch {
	case strings.HasPrefix(dsn, "mem://"):
		m := newMemStore()
		return &Store{Sections: m, Events: m}, io.NopCloser(nil), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return openSQLite(ctx, dsn)
	default:
		return nil, nil, fmt.Errorf("unsupported db url %q (want sqlite:// or mem://)", dsn)
	}
}
