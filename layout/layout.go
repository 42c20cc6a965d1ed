// Package layout fingerprints the tag structure of a table body so a run can
// notice when the upstream page changes shape between scrapes.
package layout

import (
	"hash/fnv"
	"math/bits"
	"strings"

	"golang.org/x/net/html"
)

const shingleSize = 3

// Fingerprint computes a 64-bit SimHash over the element tag sequence of
// markup. Text, attributes and closing tags are ignored, so price edits do
// not move the fingerprint but added or removed columns do.
func Fingerprint(markup string) uint64 {
	tags := tagSequence(markup)
	if len(tags) == 0 {
		return 0
	}

	tokens := shingles(tags, shingleSize)
	if len(tokens) == 0 {
		tokens = tags
	}
	return simhash(tokens)
}

// Distance returns the Hamming distance between two fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Drifted reports whether b differs from the baseline a by more than
// threshold bits.
func Drifted(a, b uint64, threshold int) bool {
	return Distance(a, b) > threshold
}

func tagSequence(markup string) []string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var tags []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return tags
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tags = append(tags, string(name))
		}
	}
}

func shingles(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], "_"))
	}
	return out
}

// simhash accumulates FNV-64a hashes of tokens into a per-bit vote.
func simhash(tokens []string) uint64 {
	var votes [64]int
	for _, tok := range tokens {
		h := fnv.New64a()
		h.Write([]byte(tok))
		sum := h.Sum64()
		for i := range votes {
			if sum&(1<<uint(i)) != 0 {
				votes[i]++
			} else {
				votes[i]--
			}
		}
	}

	var fp uint64
	for i, v := range votes {
		if v > 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}
