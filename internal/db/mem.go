package db

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rccgrog/rogsite/pkg/api"
)

// memStore keeps sections in memory. It backs mem:// and the handler tests.
type memStore struct {
	mu       sync.RWMutex
	events   []api.Event
	sections map[api.Kind]api.Section
}

func newMemStore() *memStore {
	return &memStore{sections: make(map[api.Kind]api.Section)}
}

func (m *memStore) List(ctx context.Context, cur api.Cursor, limit int) ([]api.Event, api.Cursor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// An event's sequence number is its position in m.events plus one.
	var seqs []int64
	for i, ev := range m.events {
		seq := int64(i + 1)
		switch {
		case cur.Seq > 0:
			if ev.Time.Before(cur.After) || (ev.Time.Equal(cur.After) && seq <= cur.Seq) {
				continue
			}
		case !cur.After.IsZero():
			if !ev.Time.After(cur.After) {
				continue
			}
		}
		seqs = append(seqs, seq)
	}
	sort.SliceStable(seqs, func(i, j int) bool {
		return m.events[seqs[i]-1].Time.Before(m.events[seqs[j]-1].Time)
	})
	if limit > 0 && len(seqs) > limit {
		seqs = seqs[:limit]
	}
	var out []api.Event
	for _, seq := range seqs {
		out = append(out, m.events[seq-1])
	}
	var next api.Cursor
	if len(out) > 0 {
		next = api.Cursor{After: out[len(out)-1].Time, Seq: seqs[len(seqs)-1]}
	}
	return out, next, nil
}

func (m *memStore) GetSection(ctx context.Context, kind api.Kind) (api.Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sections[kind]
	if !ok {
		return api.Section{}, ErrNotFound
	}
	return s, nil
}

func (m *memStore) ListSections(ctx context.Context) ([]api.Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]api.Section, 0, len(m.sections))
	for _, s := range m.sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out, nil
}

func (m *memStore) PutSection(ctx context.Context, s api.Section, ifVersion int64) (api.Section, error) {
	if s.Kind == "" {
		return api.Section{}, fmt.Errorf("section kind is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.sections[s.Kind]
	switch {
	case !ok && ifVersion > 0:
		return api.Section{}, ErrNotFound
	case ok && ifVersion > 0 && cur.Version != ifVersion:
		return api.Section{}, ErrConflict
	}
	s.Version = cur.Version + 1
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	s.Record = append([]byte(nil), s.Record...)
	m.sections[s.Kind] = s
	m.events = append(m.events, api.Event{Time: s.UpdatedAt, Type: api.EventUpsert, Kind: s.Kind, Version: s.Version})
	return s, nil
}

func (m *memStore) DeleteSection(ctx context.Context, kind api.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.sections[kind]
	if !ok {
		return ErrNotFound
	}
	delete(m.sections, kind)
	m.events = append(m.events, api.Event{Time: time.Now().UTC(), Type: api.EventDelete, Kind: kind, Version: cur.Version})
	return nil
}
