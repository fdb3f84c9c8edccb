package normalizer

import (
	"regexp"
	"strings"
)

// TextNormalizer implements the normalization pipeline applied to every
// clerk-entered place description before matching. The output is the
// comparison key used throughout the engine, so every step is
// deterministic and the whole pipeline is idempotent.
type TextNormalizer struct {
	noisePattern  *regexp.Regexp
	spacePattern  *regexp.Regexp
	abbreviations map[string]string
	suffixes      []string
}

// NewTextNormalizer creates a normalizer with precompiled patterns.
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{
		noisePattern:  regexp.MustCompile(`[^a-z0-9\s-]+`),
		spacePattern:  regexp.MustCompile(`\s+`),
		abbreviations: abbreviations,
		suffixes:      stateSuffixes,
	}
}

// Normalize runs the full pipeline: lowercase, accent strip, punctuation
// cleanup, trailing state-suffix strip, abbreviation expansion and the
// curated correction table. Always returns a string; empty input yields
// an empty string.
func (tn *TextNormalizer) Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	s = StripAccents(s)
	s = tn.noisePattern.ReplaceAllString(s, " ")
	s = tn.collapse(s)

	s = tn.stripStateSuffix(s)
	s = tn.expandAbbreviations(s)
	s = tn.applyCorrections(s)

	return strings.TrimSpace(s)
}

// collapse squeezes repeated whitespace into single spaces.
func (tn *TextNormalizer) collapse(s string) string {
	return strings.TrimSpace(tn.spacePattern.ReplaceAllString(s, " "))
}

// stripStateSuffix removes trailing state hints ("gro", "oaxaca", ...)
// repeatedly, so stacked hints collapse in one Normalize call. A query that
// is nothing but the state name is left alone.
func (tn *TextNormalizer) stripStateSuffix(s string) string {
	for {
		trimmed := false
		for _, suffix := range tn.suffixes {
			if s == suffix {
				return s
			}
			if strings.HasSuffix(s, " "+suffix) {
				s = strings.TrimSpace(strings.TrimSuffix(s, " "+suffix))
				trimmed = true
				break
			}
		}
		if !trimmed {
			return s
		}
	}
}

// expandAbbreviations substitutes whole tokens via the abbreviation table.
// The string is padded with boundary spaces so plain substring replacement
// cannot fire inside a word.
func (tn *TextNormalizer) expandAbbreviations(s string) string {
	padded := " " + s + " "
	for abbr, full := range tn.abbreviations {
		padded = strings.ReplaceAll(padded, " "+abbr+" ", " "+full+" ")
	}
	return tn.collapse(padded)
}

// applyCorrections runs the curated correction tables: exact rewrites of
// whole queries first, then in-place fragment fixes.
func (tn *TextNormalizer) applyCorrections(s string) string {
	if corrected, ok := exactCorrections[s]; ok {
		return corrected
	}
	padded := " " + s + " "
	for wrong, right := range partialCorrections {
		padded = strings.ReplaceAll(padded, wrong, right)
	}
	return tn.collapse(padded)
}
