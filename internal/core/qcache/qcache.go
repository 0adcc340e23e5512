// Package qcache implements the lexical question-matching heuristics the
// response cache is built on: normalization, a cheap order-dependent hash
// for exact lookups, and a substring/Jaccard fallback for paraphrases.
// This is deliberately not semantic matching; unrelated questions sharing
// many common words can collide, which is an accepted tradeoff.
package qcache

import (
	"strconv"
	"strings"
	"unicode"
)

// jaccardThreshold is the word-set overlap above which two normalized
// questions are treated as the same question.
const jaccardThreshold = 0.7

// Normalize lowercases, strips punctuation and collapses whitespace so
// "Do you deliver?!" and "do  you deliver" hash identically.
func Normalize(question string) string {
	var b strings.Builder
	b.Grow(len(question))

	lastSpace := true
	for _, r := range strings.ToLower(question) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// Hash computes a 32-bit shift-add hash of the normalized question,
// rendered in base 36. Order-dependent by construction: "open sunday" and
// "sunday open" hash differently, which is what the similarity fallback
// is for.
func Hash(question string) string {
	normalized := Normalize(question)

	var h int32
	for _, r := range normalized {
		h = (h << 5) - h + int32(r)
	}

	return strconv.FormatInt(int64(h), 36)
}

// IsSimilar reports whether two raw questions should resolve to the same
// cached answer: equal after normalization, one containing the other, or
// word-set Jaccard similarity above the threshold.
func IsSimilar(q1, q2 string) bool {
	n1 := Normalize(q1)
	n2 := Normalize(q2)

	if n1 == n2 {
		return true
	}
	if n1 == "" || n2 == "" {
		return false
	}

	// One contains the other (slight variations)
	if strings.Contains(n1, n2) || strings.Contains(n2, n1) {
		return true
	}

	return jaccard(n1, n2) > jaccardThreshold
}

func jaccard(n1, n2 string) float64 {
	set1 := wordSet(n1)
	set2 := wordSet(n2)

	intersection := 0
	for w := range set1 {
		if _, ok := set2[w]; ok {
			intersection++
		}
	}

	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

func wordSet(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Split(normalized, " ") {
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
