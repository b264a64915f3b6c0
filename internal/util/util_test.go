package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	kinds := []string{"hero", "about", "history", "ministers", "events", "get_involved"}
	got := Suggest("mnstr", kinds, 1)
	assert.Equal(t, []string{"ministers"}, got)
	assert.Contains(t, Suggest("his", kinds, 3), "history")
	assert.Empty(t, Suggest("zzz", kinds, 3))
	assert.Nil(t, Suggest("", kinds, 3))
}

func TestParseTimeExpr(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"2h":                   now.Add(-2 * time.Hour),
		"3d":                   now.Add(-72 * time.Hour),
		"1w":                   now.Add(-7 * 24 * time.Hour),
		"1mo":                  time.Date(2026, 9, 16, 12, 0, 0, 0, time.UTC),
		"2026-10-01":           time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		"2026-10-01T08:30":     time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC),
		"2026-10-01T08:30:00Z": time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseTimeExpr(in, now)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: got %s want %s", in, got, want)
	}
	for _, bad := range []string{"", "xd", "yesterday", "-1d", "200000000d", "9223372036854775807d", "106751w", "99999999mo", "9999999999h"} {
		_, err := ParseTimeExpr(bad, now)
		assert.Error(t, err, bad)
	}

	got, err := ParseTimeExpr("36500d", now)
	require.NoError(t, err)
	assert.Equal(t, 1926, got.Year())
	assert.True(t, got.Before(now))
}
