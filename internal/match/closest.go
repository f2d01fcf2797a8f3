package match

import (
	"sort"
	"strings"
	"unicode"
)

// Normalize folds case and drops everything but letters and digits.
func Normalize(name string) string {
	var sb strings.Builder

	sb.Grow(len(name))

	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}

	return sb.String()
}

// Closest returns up to limit candidates resembling name, best first.
// A candidate qualifies when its normalized edit distance to name is at
// most a third of the longer normalized length, or when one normalized
// name contains the other. Ties keep candidate order.
func Closest(name string, candidates []string, limit int) []string {
	norm := Normalize(name)
	if norm == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		name string
		dist int
	}

	var (
		hits []scored
		seen = make(map[string]bool)
	)

	for _, c := range candidates {
		if c == name || seen[c] {
			continue
		}

		seen[c] = true

		nc := Normalize(c)
		if nc == "" {
			continue
		}

		dist := Levenshtein(norm, nc)
		budget := max(len([]rune(norm)), len([]rune(nc))) / 3

		if dist <= budget || strings.Contains(nc, norm) || strings.Contains(norm, nc) {
			hits = append(hits, scored{c, dist})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})

	out := make([]string, 0, min(limit, len(hits)))
	for _, h := range hits[:min(limit, len(hits))] {
		out = append(out, h.name)
	}

	return out
}
