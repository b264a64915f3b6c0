package util

import "github.com/sahilm/fuzzy"

// Suggest returns up to n candidates that fuzzily match input, best first.
func Suggest(input string, candidates []string, n int) []string {
	if input == "" {
		return nil
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return nil
	}

	limit := n
	if n <= 0 || len(matches) < limit {
		limit = len(matches)
	}

	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = matches[i].Str
	}
	return out
}
