package similarity

import "testing"

func TestScore_Shortcuts(t *testing.T) {
	sc := NewScorer()

	testCases := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"Identical", "acapulco de juarez", "acapulco de juarez", 1.0},
		{"Containment", "acapulco", "acapulco de juarez", 0.95},
		{"Containment reversed", "acapulco de juarez", "acapulco", 0.95},
		{"Empty left", "", "acapulco", 0},
		{"Empty right", "acapulco", "", 0},
		{"Both empty", "", "", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sc.Score(tc.a, tc.b); got != tc.expected {
				t.Errorf("Score(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestScore_BVConfusion(t *testing.T) {
	sc := NewScorer()

	testCases := []struct{ a, b string }{
		{"el guayavo", "el guayabo"},
		{"valle verde", "balle berde"},
	}

	for _, tc := range testCases {
		if got := sc.Score(tc.a, tc.b); got < 0.9 {
			t.Errorf("Score(%q, %q) = %v, want >= 0.9 for a pure b/v swap", tc.a, tc.b, got)
		}
	}
}

func TestScore_ConnectorBridging(t *testing.T) {
	sc := NewScorer()

	if got := sc.Score("jario pantoja", "jario y pantoja"); got < 0.8 {
		t.Errorf("Score bridged by connector variation = %v, want >= 0.8", got)
	}
}

func TestScore_Symmetry(t *testing.T) {
	sc := NewScorer()

	pairs := [][2]string{
		{"el guayavo", "el guayabo"},
		{"jario pantoja", "jario y pantoja"},
		{"acapulco de juarez", "tlacolula"},
		{"santa maria tonameca", "san pedro mixtepec"},
	}

	for _, p := range pairs {
		ab, ba := sc.Score(p[0], p[1]), sc.Score(p[1], p[0])
		if ab != ba {
			t.Errorf("Score(%q, %q) = %v but Score(%q, %q) = %v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestScore_Range(t *testing.T) {
	sc := NewScorer()

	pairs := [][2]string{
		{"acapulco de juarez", "tlacolula"},
		{"x", "completely different place name"},
		{"colonia centro", "ciudad renacimiento"},
		{"el guayavo", "el guayabo"},
		{"zzz", "aaa"},
	}

	for _, p := range pairs {
		got := sc.Score(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Score(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestScore_DissimilarStaysLow(t *testing.T) {
	sc := NewScorer()

	if got := sc.Score("acapulco de juarez", "tlacolula"); got >= 0.5 {
		t.Errorf("Score of unrelated names = %v, want < 0.5", got)
	}
}

func TestPhoneticFold(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"guerrero", "gerero"},
		{"llano", "yano"},
		{"quechultenango", "kexultenango"},
		{"cabeza", "cavesa"},
	}

	for _, tc := range testCases {
		if got := phoneticFold(tc.input); got != tc.expected {
			t.Errorf("phoneticFold(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestPhoneticFold_SoundalikePairsConverge(t *testing.T) {
	pairs := [][2]string{
		{"cabeza", "caveza"},
		{"llano", "yano"},
		{"guerrero", "guerero"},
	}
	for _, p := range pairs {
		if phoneticFold(p[0]) != phoneticFold(p[1]) {
			t.Errorf("phoneticFold(%q) = %q, phoneticFold(%q) = %q, want equal keys",
				p[0], phoneticFold(p[0]), p[1], phoneticFold(p[1]))
		}
	}
}
