package prices

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// Suggest returns up to n keys from the book most similar to query by
// Jaro-Winkler similarity, best first. Ties are broken by key.
func Suggest(book *Book, query string, n int) []string {
	if book == nil || n <= 0 || book.Len() == 0 {
		return nil
	}

	type scored struct {
		key   string
		score float64
	}
	candidates := make([]scored, 0, book.Len())
	book.Each(func(key, _ string) bool {
		if s := matchr.JaroWinkler(query, key, false); s > 0 {
			candidates = append(candidates, scored{key: key, score: s})
		}
		return true
	})

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].key < candidates[j].key
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.key
	}
	return out
}

// Champion returns every key in the book that belongs to champion, in book order.
func Champion(book *Book, champion string) []string {
	prefix := Normalize(champion) + "_"
	var keys []string
	book.Each(func(key, _ string) bool {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return true
	})
	return keys
}

// Search returns up to n keys for a free-text query such as "ahri fox".
// Keys containing every query word come first in book order; the remainder
// is filled from Suggest.
func Search(book *Book, query string, n int) []string {
	if book == nil || n <= 0 {
		return nil
	}
	var words []string
	for _, f := range strings.Fields(query) {
		if w := Normalize(f); w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil
	}

	seen := make(map[string]bool, n)
	var out []string
	book.Each(func(key, _ string) bool {
		for _, w := range words {
			if !strings.Contains(key, w) {
				return true
			}
		}
		out = append(out, key)
		seen[key] = true
		return len(out) < n
	})

	if len(out) < n {
		for _, key := range Suggest(book, strings.Join(words, "_"), n) {
			if len(out) == n {
				break
			}
			if !seen[key] {
				out = append(out, key)
			}
		}
	}
	return out
}
