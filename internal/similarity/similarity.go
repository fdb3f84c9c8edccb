// Package similarity computes the composite fuzzy score used to compare a
// normalized query against candidate canonical names. The score blends
// lexical, positional, edit-distance and phonetic signals; the weights and
// shortcut values are tuned against known hard cases (fragmented
// multi-word names, b/v typos, missing connectors) and gate whether a
// match may be auto-accepted.
package similarity

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/location-resolver/internal/normalizer"
)

// Scorer computes similarities in [0,1]. Stateless and safe for
// concurrent use.
type Scorer struct{}

// NewScorer returns a Scorer.
func NewScorer() *Scorer { return &Scorer{} }

// Score returns the composite similarity of two pre-normalized strings.
// Equal strings score 1.0; full containment scores 0.95; otherwise the
// result is the maximum of three weighted blends, each dominant for a
// different error type.
func (sc *Scorer) Score(a, b string) float64 {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.95
	}

	// The b/v confusion is frequent enough in the source orthography that
	// word-level comparison runs on the folded strings.
	fa := strings.ReplaceAll(a, "v", "b")
	fb := strings.ReplaceAll(b, "v", "b")

	wordsA := significantWords(fa)
	wordsB := significantWords(fb)

	overlap := wordOverlap(wordsA, wordsB)
	order := wordOrder(wordsA, wordsB)
	firstWord := firstWordScore(strings.Fields(fa), strings.Fields(fb))
	lev := levenshteinScore(fa, fb)
	phonetic := phoneticScore(wordsA, wordsB)
	variation := variationBonus(a, b)

	score := overlap*0.4 + order*0.2 + firstWord
	if alt := lev*0.3 + phonetic*0.4 + variation*0.3; alt > score {
		score = alt
	}
	if alt := firstWord + overlap*0.5 + variation*0.2; alt > score {
		score = alt
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	return score
}

// significantWords drops connectors, descriptors and sub-2-character
// tokens. When nothing survives the filter the raw tokens are kept, so
// all-filler names still compare.
func significantWords(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, w := range fields {
		if !normalizer.IsStopword(w) {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return fields
	}
	return out
}

// wordOverlap is |intersection| / max(|a|, |b|) over word sets.
func wordOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]bool, len(a))
	for _, w := range a {
		setA[w] = true
	}
	matched := 0
	seen := make(map[string]bool, len(b))
	for _, w := range b {
		if setA[w] && !seen[w] {
			matched++
			seen[w] = true
		}
	}
	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	return float64(matched) / float64(max)
}

// wordOrder is the fraction of aligned positions holding the same word,
// over the shorter word count.
func wordOrder(a, b []string) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	same := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			same++
		}
	}
	return float64(same) / float64(n)
}

// firstWordScore special-cases the leading token: identical proper nouns
// are strong evidence, descriptor-vs-proper-noun mismatches are neutral,
// and strongly dissimilar leads are penalized.
func firstWordScore(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	wa, wb := a[0], b[0]

	switch {
	case wa == wb:
		return 0.4
	case normalizer.IsDescriptor(wa) && normalizer.IsDescriptor(wb):
		return 0.15
	case normalizer.IsDescriptor(wa) != normalizer.IsDescriptor(wb):
		return 0
	case strings.Contains(wa, wb) || strings.Contains(wb, wa):
		return 0.3
	}

	if normalizedEditDistance(wa, wb) > 0.5 {
		return -0.1
	}
	return 0
}

// levenshteinScore is the normalized edit-distance similarity over the
// full strings.
func levenshteinScore(a, b string) float64 {
	return 1.0 - normalizedEditDistance(a, b)
}

// normalizedEditDistance is levenshtein distance divided by the longer
// string length, in [0,1].
func normalizedEditDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(maxLen)
}

// phoneticScore folds every significant word pair through the substitution
// table and counts the pairs that land within edit distance 0.3 of each
// other.
func phoneticScore(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	matches := 0
	total := 0
	for _, wa := range a {
		pa := phoneticFold(wa)
		for _, wb := range b {
			total++
			if normalizedEditDistance(pa, phoneticFold(wb)) <= 0.3 {
				matches++
			}
		}
	}
	return float64(matches) / float64(total)
}

// variationBonus rewards pairs that connector-word variations can bridge:
// 0.8 when a variation of one side reproduces the other verbatim, 0.6 when
// variations of both sides meet.
func variationBonus(a, b string) float64 {
	varsA := normalizer.GenerateVariations(a)
	for _, v := range varsA {
		if v == b {
			return 0.8
		}
	}
	varsB := normalizer.GenerateVariations(b)
	for _, v := range varsB {
		if v == a {
			return 0.8
		}
	}
	if len(varsA) > 0 && len(varsB) > 0 {
		setA := make(map[string]bool, len(varsA))
		for _, v := range varsA {
			setA[v] = true
		}
		for _, v := range varsB {
			if setA[v] {
				return 0.6
			}
		}
	}
	return 0
}
