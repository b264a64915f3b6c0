package db

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rccgrog/rogsite/pkg/api"
)

func setupTestDB(t *testing.T) (*Store, context.Context) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, closer, err := Open(ctx, "sqlite://"+dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })
	return store, ctx
}

func setupMem(t *testing.T) (*Store, context.Context) {
	t.Helper()
	store, closer, err := Open(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })
	return store, context.Background()
}

func forEachBackend(t *testing.T, fn func(t *testing.T, store *Store, ctx context.Context)) {
	t.Run("sqlite", func(t *testing.T) {
		store, ctx := setupTestDB(t)
		fn(t, store, ctx)
	})
	t.Run("mem", func(t *testing.T) {
		store, ctx := setupMem(t)
		fn(t, store, ctx)
	})
}

func TestPutSectionCAS(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, ctx context.Context) {
		repo := store.Sections
		hero := api.Section{Kind: api.KindHero, Record: json.RawMessage(`{"title":"Welcome"}`)}

		t.Run("missing row with version is not found", func(t *testing.T) {
			_, err := repo.PutSection(ctx, hero, 3)
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run("create starts at version 1", func(t *testing.T) {
			created, err := repo.PutSection(ctx, hero, 0)
			require.NoError(t, err)
			assert.Equal(t, int64(1), created.Version)
			assert.False(t, created.UpdatedAt.IsZero())
		})

		t.Run("matching version advances", func(t *testing.T) {
			hero.Record = json.RawMessage(`{"title":"Welcome home"}`)
			updated, err := repo.PutSection(ctx, hero, 1)
			require.NoError(t, err)
			assert.Equal(t, int64(2), updated.Version)

			got, err := repo.GetSection(ctx, api.KindHero)
			require.NoError(t, err)
			assert.Equal(t, int64(2), got.Version)
			assert.JSONEq(t, `{"title":"Welcome home"}`, string(got.Record))
		})

		t.Run("stale version conflicts", func(t *testing.T) {
			hero.Record = json.RawMessage(`{"title":"stale"}`)
			_, err := repo.PutSection(ctx, hero, 1)
			assert.ErrorIs(t, err, ErrConflict)

			got, err := repo.GetSection(ctx, api.KindHero)
			require.NoError(t, err)
			assert.JSONEq(t, `{"title":"Welcome home"}`, string(got.Record))
		})

		t.Run("unconditional write still advances", func(t *testing.T) {
			updated, err := repo.PutSection(ctx, hero, 0)
			require.NoError(t, err)
			assert.Equal(t, int64(3), updated.Version)
		})

		t.Run("empty kind rejected", func(t *testing.T) {
			_, err := repo.PutSection(ctx, api.Section{}, 0)
			assert.Error(t, err)
		})
	})
}

func TestListAndDeleteSections(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, ctx context.Context) {
		repo := store.Sections
		for _, k := range []api.Kind{api.KindMinisters, api.KindAbout, api.KindHero} {
			_, err := repo.PutSection(ctx, api.Section{Kind: k, Record: json.RawMessage(`{}`)}, 0)
			require.NoError(t, err)
		}
		list, err := repo.ListSections(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []api.Kind{api.KindAbout, api.KindHero, api.KindMinisters}, []api.Kind{list[0].Kind, list[1].Kind, list[2].Kind})

		require.NoError(t, repo.DeleteSection(ctx, api.KindAbout))
		_, err = repo.GetSection(ctx, api.KindAbout)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.DeleteSection(ctx, api.KindAbout), ErrNotFound)
	})
}

func TestEventsRecordWrites(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, ctx context.Context) {
		_, err := store.Sections.PutSection(ctx, api.Section{Kind: api.KindHistory, Record: json.RawMessage(`{}`)}, 0)
		require.NoError(t, err)
		_, err = store.Sections.PutSection(ctx, api.Section{Kind: api.KindHistory, Record: json.RawMessage(`{"heading":"x"}`)}, 1)
		require.NoError(t, err)
		require.NoError(t, store.Sections.DeleteSection(ctx, api.KindHistory))

		evs, next, err := store.Events.List(ctx, api.Cursor{}, 0)
		require.NoError(t, err)
		require.Len(t, evs, 3)
		assert.Equal(t, api.EventUpsert, evs[0].Type)
		assert.Equal(t, int64(2), evs[1].Version)
		assert.Equal(t, api.EventDelete, evs[2].Type)
		assert.Equal(t, api.KindHistory, evs[2].Kind)
		assert.Equal(t, evs[2].Time.UTC(), next.After.UTC())

		limited, _, err := store.Events.List(ctx, api.Cursor{}, 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)
	})
}

func TestEventPagingKeepsTiedTimestamps(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store *Store, ctx context.Context) {
		base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
		writes := []struct {
			kind api.Kind
			at   time.Time
		}{
			{api.KindHero, base}, {api.KindAbout, base}, {api.KindHistory, base},
			{api.KindMinisters, base.Add(time.Minute)}, {api.KindEvents, base.Add(time.Minute)}, {api.KindGetInvolved, base.Add(time.Minute)},
			{api.KindHero, base.Add(2 * time.Minute)}, {api.KindAbout, base.Add(2 * time.Minute)}, {api.KindHistory, base.Add(2 * time.Minute)},
		}
		for _, w := range writes {
			_, err := store.Sections.PutSection(ctx, api.Section{Kind: w.kind, Record: json.RawMessage(`{}`), UpdatedAt: w.at}, 0)
			require.NoError(t, err)
		}

		all, _, err := store.Events.List(ctx, api.Cursor{}, 0)
		require.NoError(t, err)
		require.Len(t, all, len(writes))

		var paged []api.Event
		var cur api.Cursor
		for i := 0; i < 10; i++ {
			page, next, err := store.Events.List(ctx, cur, 2)
			require.NoError(t, err)
			if len(page) == 0 {
				break
			}
			paged = append(paged, page...)
			cur = next
		}
		require.Len(t, paged, len(writes))
		for i := range all {
			assert.Equal(t, all[i].Kind, paged[i].Kind, "event %d", i)
			assert.Equal(t, all[i].Version, paged[i].Version, "event %d", i)
			assert.True(t, all[i].Time.Equal(paged[i].Time), "event %d", i)
		}

		// A bare time cursor still excludes every event at that time.
		after, _, err := store.Events.List(ctx, api.Cursor{After: base.Add(time.Minute)}, 0)
		require.NoError(t, err)
		require.Len(t, after, 3)
		assert.Equal(t, api.KindHero, after[0].Kind)
	})
}

func TestRunInTxRollsBack(t *testing.T) {
	store, ctx := setupTestDB(t)
	boom := errors.New("boom")
	err := store.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := store.Sections.PutSection(ctx, api.Section{Kind: api.KindEvents, Record: json.RawMessage(`{}`)}, 0); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	_, err = store.Sections.GetSection(ctx, api.KindEvents)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.RunInTx(ctx, func(ctx context.Context) error {
		_, err := store.Sections.PutSection(ctx, api.Section{Kind: api.KindEvents, Record: json.RawMessage(`{}`)}, 0)
		return err
	}))
	got, err := store.Sections.GetSection(ctx, api.KindEvents)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, _, err := Open(context.Background(), "postgres://localhost/site")
	assert.Error(t, err)
}
