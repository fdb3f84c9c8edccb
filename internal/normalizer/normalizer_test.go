package normalizer

import (
	"strings"
	"testing"
)

func TestNormalize_Pipeline(t *testing.T) {
	tn := NewTextNormalizer()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Trailing state abbreviation with punctuation",
			input:    "  Acapulco,  Gro. ",
			expected: "acapulco de juarez",
		},
		{
			name:     "Abbreviation expansion",
			input:    "CD RENACIMIENTO",
			expected: "ciudad renacimiento",
		},
		{
			name:     "Misspelling plus state name",
			input:    "Chilpansingo Guerrero",
			expected: "chilpancingo de los bravo",
		},
		{
			name:     "Partial correction",
			input:    "Oajaca",
			expected: "oaxaca",
		},
		{
			name:     "Accent stripping",
			input:    "Juchitán",
			expected: "juchitan de zaragoza",
		},
		{
			name:     "Stacked state hints",
			input:    "Acapulco Gro Guerrero",
			expected: "acapulco de juarez",
		},
		{
			name:     "State name alone survives",
			input:    "Guerrero",
			expected: "guerrero",
		},
		{
			name:     "Trailing Morelos stripped as state hint",
			input:    "Cuernavaca Morelos",
			expected: "cuernavaca",
		},
		{
			name:     "Hyphens are kept",
			input:    "Xyzabc-Nonexistent-Place",
			expected: "xyzabc-nonexistent-place",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "Punctuation only",
			input:    "  !!! ??? ",
			expected: "",
		},
		{
			name:     "San abbreviation",
			input:    "Sn Marcos",
			expected: "san marcos",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tn.Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	tn := NewTextNormalizer()

	inputs := []string{
		"Acapulco, Gro.",
		"Chilpansingo",
		"El Guayavo",
		"Sta Maria Tonameca Oax",
		"CD. DE LOS SERVICIOS",
		"Guerrero",
		"san pedro mixtepec",
	}

	for _, input := range inputs {
		once := tn.Normalize(input)
		twice := tn.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalize_NeverUppercaseOrPadded(t *testing.T) {
	tn := NewTextNormalizer()

	inputs := []string{"ACAPULCO", " Tlapa ", "IGUALA, GRO"}
	for _, input := range inputs {
		got := tn.Normalize(input)
		if got != strings.TrimSpace(got) {
			t.Errorf("Normalize(%q) returned padded result %q", input, got)
		}
		if got != strings.ToLower(got) {
			t.Errorf("Normalize(%q) returned non-lowercase result %q", input, got)
		}
	}
}

func TestStripAccents(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"juchitán", "juchitan"},
		{"cañada", "canada"},
		{"María", "Maria"},
		{"plain ascii", "plain ascii"},
	}

	for _, tc := range testCases {
		if got := StripAccents(tc.input); got != tc.expected {
			t.Errorf("StripAccents(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestStripDiacritics(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Juchitán", "Juchitan"},
		{"señor", "senor"},
		{"no marks", "no marks"},
	}
	for _, tc := range testCases {
		if got := StripDiacritics(tc.input); got != tc.expected {
			t.Errorf("StripDiacritics(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestIsStopword(t *testing.T) {
	stopwords := []string{"de", "la", "y", "colonia", "ciudad", "en", "x"}
	for _, w := range stopwords {
		if !IsStopword(w) {
			t.Errorf("IsStopword(%q) = false, want true", w)
		}
	}

	keepers := []string{"acapulco", "guayabo", "marcos"}
	for _, w := range keepers {
		if IsStopword(w) {
			t.Errorf("IsStopword(%q) = true, want false", w)
		}
	}
}
