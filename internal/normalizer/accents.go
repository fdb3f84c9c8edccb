package normalizer

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentTable maps the Latin accented characters that appear in the
// canonical place-name tables. Applied before the generic fallback so the
// common path never allocates a transformer.
var accentTable = map[rune]rune{
	'á': 'a', 'é': 'e', 'í': 'i', 'ó': 'o', 'ú': 'u',
	'à': 'a', 'è': 'e', 'ì': 'i', 'ò': 'o', 'ù': 'u',
	'â': 'a', 'ê': 'e', 'î': 'i', 'ô': 'o', 'û': 'u',
	'ä': 'a', 'ë': 'e', 'ï': 'i', 'ö': 'o', 'ü': 'u',
	'ñ': 'n', 'ç': 'c',
}

// StripAccents removes diacritics using the explicit table, then falls back
// to ASCII transliteration for anything the table does not cover.
func StripAccents(s string) string {
	ascii := true
	for _, r := range s {
		if r > unicode.MaxASCII {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if mapped, ok := accentTable[r]; ok {
			b.WriteRune(mapped)
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()

	for _, r := range out {
		if r > unicode.MaxASCII {
			return unidecode.Unidecode(out)
		}
	}
	return out
}

// StripDiacritics removes combining marks via Unicode decomposition. Kept
// for callers that need to preserve non-Latin base characters.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes(), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func runes() transform.Transformer {
	return transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	})
}
