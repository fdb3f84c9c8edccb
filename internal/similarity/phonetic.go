package similarity

import "strings"

// phoneticPairs is the substitution table for the simplified phonetic
// folding. Substitutions apply top to bottom, so ge/gi fold before the
// gue/gui rewrites introduce new ge/gi sequences.
var phoneticPairs = []struct{ from, to string }{
	{"ph", "f"},
	{"ch", "x"},
	{"ll", "y"},
	{"rr", "r"},
	{"qu", "k"},
	{"ce", "se"},
	{"ci", "si"},
	{"ge", "je"},
	{"gi", "ji"},
	{"gue", "ge"},
	{"gui", "gi"},
	{"ü", "u"},
	{"b", "v"},
	{"z", "s"},
}

// phoneticFold reduces a word to a coarse phonetic key: digraph and
// confusable-letter substitutions followed by vowel-repeat collapse.
// Words that sound alike under common dictation errors fold to equal keys.
func phoneticFold(word string) string {
	s := word
	for _, p := range phoneticPairs {
		s = strings.ReplaceAll(s, p.from, p.to)
	}
	return collapseRepeatedVowels(s)
}

func collapseRepeatedVowels(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		if r == prev && isVowel(r) {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
