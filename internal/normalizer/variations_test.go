package normalizer

import "testing"

func TestGenerateVariations_TwoWords(t *testing.T) {
	variations := GenerateVariations("jario pantoja")

	mustContain := []string{
		"jario y pantoja",
		"jario de pantoja",
		"jario del pantoja",
		"jario la pantoja",
	}
	set := make(map[string]bool, len(variations))
	for _, v := range variations {
		set[v] = true
	}
	for _, want := range mustContain {
		if !set[want] {
			t.Errorf("variations of %q missing %q, got %v", "jario pantoja", want, variations)
		}
	}
}

func TestGenerateVariations_NeverEchoesInput(t *testing.T) {
	inputs := []string{"jario pantoja", "el guayabo", "chilpancingo de los bravo"}
	for _, input := range inputs {
		for _, v := range GenerateVariations(input) {
			if v == input {
				t.Errorf("variations of %q include the input itself", input)
			}
		}
	}
}

func TestGenerateVariations_ConnectorRemoval(t *testing.T) {
	variations := GenerateVariations("chilpancingo de los bravo")

	found := false
	for _, v := range variations {
		if v == "chilpancingo bravo" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected connector-stripped variant %q in %v", "chilpancingo bravo", variations)
	}
}

func TestGenerateVariations_SingleWord(t *testing.T) {
	if got := GenerateVariations("acapulco"); got != nil {
		t.Errorf("GenerateVariations(single word) = %v, want nil", got)
	}
	if got := GenerateVariations(""); got != nil {
		t.Errorf("GenerateVariations(empty) = %v, want nil", got)
	}
}

func TestGenerateVariations_NoDuplicates(t *testing.T) {
	inputs := []string{"jario pantoja", "san marcos", "santa maria tonameca"}
	for _, input := range inputs {
		variations := GenerateVariations(input)
		seen := make(map[string]bool, len(variations))
		for _, v := range variations {
			if seen[v] {
				t.Errorf("variations of %q contain duplicate %q", input, v)
			}
			seen[v] = true
		}
	}
}
