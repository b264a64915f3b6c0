package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxLookbackDays bounds relative expressions to roughly a thousand years.
const maxLookbackDays = 366 * 1000

// ParseTimeExpr parses relative ("90m", "2h", "3d", "2w", "1mo") and absolute
// (RFC3339, "2006-01-02T15:04", "2006-01-02") time expressions. Relative
// expressions count back from now.
func ParseTimeExpr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time expression")
	}

	// Custom shorthands: mo (months), w (weeks), d (days)
	suffixes := []struct {
		suffix string
		maxN   int
		apply  func(int) time.Time
	}{
		{"mo", maxLookbackDays / 31, func(n int) time.Time { return now.AddDate(0, -n, 0) }},
		{"w", maxLookbackDays / 7, func(n int) time.Time { return now.AddDate(0, 0, -7*n) }},
		{"d", maxLookbackDays, func(n int) time.Time { return now.AddDate(0, 0, -n) }},
	}
	for _, sfx := range suffixes {
		if strings.HasSuffix(s, sfx.suffix) {
			numStr := strings.TrimSuffix(s, sfx.suffix)
			n, err := strconv.Atoi(numStr)
			if err != nil || n < 0 {
				return time.Time{}, fmt.Errorf("invalid %s duration: %q", sfx.suffix, s)
			}
			if n > sfx.maxN {
				return time.Time{}, fmt.Errorf("%s duration out of range: %q", sfx.suffix, s)
			}
			return sfx.apply(n), nil
		}
	}

	// Standard Go durations (keeps 'm' = minutes)
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(-d), nil
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time expression: %q", s)
}
