// Package analyzer detects geographic hints embedded in raw clerk text:
// state abbreviations or names, municipality keywords for the prioritized
// states, and separator-based structure. All pattern sets are compiled once
// at construction.
package analyzer

import (
	"regexp"
	"strings"

	"github.com/location-resolver/app/models"
	"github.com/location-resolver/internal/normalizer"
)

// statePatterns groups the compiled detection patterns for one state.
type statePatterns struct {
	name     string
	patterns []*regexp.Regexp
}

// ComponentAnalyzer splits an utterance into candidate parts and detects
// state/municipality keywords. Safe for concurrent use after construction.
type ComponentAnalyzer struct {
	normalizer *normalizer.TextNormalizer
	separators []string
	states     []statePatterns
	// municipalities maps a normalized municipality keyword to the state
	// display name it belongs to; keywords preserves declaration order.
	municipalities map[string]string
	keywords       []string
}

// guerreroMunicipalities and oaxacaMunicipalities enumerate the
// municipality names worth recognizing inline for the two priority states.
var guerreroMunicipalities = []string{
	"acapulco", "chilpancingo", "iguala", "taxco", "zihuatanejo",
	"tixtla", "ayutla", "atoyac", "coyuca", "tecpan", "petatlan",
	"ometepec", "tlapa", "arcelia", "huitzuco", "chilapa", "san marcos",
}

var oaxacaMunicipalities = []string{
	"oaxaca de juarez", "salina cruz", "juchitan", "tuxtepec",
	"huajuapan", "tehuantepec", "puerto escondido", "pinotepa",
	"tlaxiaco", "miahuatlan", "pochutla", "ixtepec", "ocotlan",
	"etla", "zimatlan", "tlacolula",
}

// NewComponentAnalyzer compiles the pattern sets for the priority states.
func NewComponentAnalyzer() *ComponentAnalyzer {
	ca := &ComponentAnalyzer{
		normalizer: normalizer.NewTextNormalizer(),
		separators: []string{",", " - ", "/", "|", ";"},
		states: []statePatterns{
			{
				name: "Guerrero",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`\bgro\b`),
					regexp.MustCompile(`\bguerrero\b`),
					regexp.MustCompile(`\bestado de guerrero\b`),
				},
			},
			{
				name: "Oaxaca",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`\boax\b`),
					regexp.MustCompile(`\boaxaca\b`),
					regexp.MustCompile(`\bestado de oaxaca\b`),
					regexp.MustCompile(`\boaxaca de juarez\b`),
				},
			},
		},
		municipalities: make(map[string]string),
	}

	for _, m := range guerreroMunicipalities {
		ca.municipalities[m] = "Guerrero"
		ca.keywords = append(ca.keywords, m)
	}
	for _, m := range oaxacaMunicipalities {
		ca.municipalities[m] = "Oaxaca"
		ca.keywords = append(ca.keywords, m)
	}

	return ca
}

// Analyze derives the structured breakdown of a raw utterance. It never
// fails; a text with no detectable structure comes back as a single part
// with no state.
func (ca *ComponentAnalyzer) Analyze(raw string) models.TextComponents {
	cleaned := strings.ToLower(strings.TrimSpace(normalizer.StripAccents(raw)))
	comps := models.TextComponents{}

	parts, hasSeparator := ca.splitParts(cleaned)
	comps.HasSeparator = hasSeparator

	normalizedParts := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := ca.normalizer.Normalize(p); n != "" {
			normalizedParts = append(normalizedParts, n)
		}
	}
	if len(normalizedParts) == 0 {
		normalizedParts = []string{ca.normalizer.Normalize(cleaned)}
	}
	comps.Parts = normalizedParts

	// First state match across the parts wins.
	for _, p := range parts {
		if state := ca.detectState(p); state != "" {
			comps.DetectedState = state
			break
		}
	}

	// Municipality keywords are checked against the whole text, independent
	// of the part split; a hit overrides the part-level state. The keyword
	// lists are scanned in declaration order so detection is deterministic.
	whole := ca.normalizer.Normalize(cleaned)
	for _, keyword := range ca.keywords {
		if containsPhrase(whole, keyword) {
			comps.DetectedMunicipality = keyword
			comps.DetectedState = ca.municipalities[keyword]
			break
		}
	}

	return comps
}

// splitParts splits on the first separator found, falling back to a split
// around an embedded state keyword.
func (ca *ComponentAnalyzer) splitParts(cleaned string) ([]string, bool) {
	for _, sep := range ca.separators {
		if strings.Contains(cleaned, sep) {
			pieces := strings.Split(cleaned, sep)
			parts := make([]string, 0, len(pieces))
			for _, p := range pieces {
				if t := strings.TrimSpace(p); t != "" {
					parts = append(parts, t)
				}
			}
			return parts, true
		}
	}

	// No separator: try to cut the text around a geographic keyword so the
	// state hint becomes its own part.
	for _, sp := range ca.states {
		for _, pat := range sp.patterns {
			loc := pat.FindStringIndex(cleaned)
			if loc == nil || loc[0] == 0 {
				continue
			}
			head := strings.TrimSpace(cleaned[:loc[0]])
			tail := strings.TrimSpace(cleaned[loc[0]:])
			if head != "" && tail != "" {
				return []string{head, tail}, false
			}
		}
	}

	return []string{cleaned}, false
}

// detectState returns the display name of the first state whose pattern
// family matches the part.
func (ca *ComponentAnalyzer) detectState(part string) string {
	for _, sp := range ca.states {
		for _, pat := range sp.patterns {
			if pat.MatchString(part) {
				return sp.name
			}
		}
	}
	for _, keyword := range ca.keywords {
		if containsPhrase(part, keyword) {
			return ca.municipalities[keyword]
		}
	}
	return ""
}

// containsPhrase reports whether phrase occurs in s on word boundaries.
func containsPhrase(s, phrase string) bool {
	return strings.Contains(" "+s+" ", " "+phrase+" ")
}
