package normalizer

import "strings"

// GenerateVariations produces plausible alternate renderings of a
// normalized multi-word phrase by inserting or removing connector words at
// word boundaries. It bridges inputs where the source text dropped a
// grammatical connector present in the canonical name, or vice versa
// ("jario pantoja" ↔ "jario y pantoja").
//
// Inputs of fewer than two words yield no variations. Results are
// deduplicated and never include the input itself.
func GenerateVariations(normalized string) []string {
	words := strings.Fields(normalized)
	if len(words) < 2 {
		return nil
	}

	seen := map[string]bool{normalized: true}
	var out []string
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	// Insert each connector at every word-pair boundary.
	for i := 1; i < len(words); i++ {
		for _, conn := range Connectors {
			if words[i-1] == conn || words[i] == conn {
				continue
			}
			variant := make([]string, 0, len(words)+1)
			variant = append(variant, words[:i]...)
			variant = append(variant, conn)
			variant = append(variant, words[i:]...)
			add(strings.Join(variant, " "))
		}
	}

	// One variant with every connector removed, when any were present.
	stripped := make([]string, 0, len(words))
	for _, w := range words {
		if !IsConnector(w) {
			stripped = append(stripped, w)
		}
	}
	if len(stripped) > 0 && len(stripped) < len(words) {
		add(strings.Join(stripped, " "))
	}

	// Two-word inputs always get the four canonical connector insertions.
	if len(words) == 2 {
		a, b := words[0], words[1]
		for _, conn := range []string{"y", "de", "del", "la"} {
			add(a + " " + conn + " " + b)
		}
	}

	return out
}
