package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Thresholds are the acceptance bars of the resolution cascade. The
// shipped defaults were tuned empirically against production intake data;
// overriding them changes matching behavior, so treat the yaml file as an
// operator escape hatch, not a tuning surface.
type Thresholds struct {
	FuzzyAccept      float64 `yaml:"fuzzy_accept" json:"fuzzy_accept"`             // 0.65
	FuzzyHigh        float64 `yaml:"fuzzy_high" json:"fuzzy_high"`                 // 0.8
	FragmentWords    float64 `yaml:"fragment_words" json:"fragment_words"`         // 0.6
	FragmentAccept   float64 `yaml:"fragment_accept" json:"fragment_accept"`       // 0.55
	ComponentHigh    float64 `yaml:"component_high" json:"component_high"`         // 0.9
	MunicipalityLike float64 `yaml:"municipality_like" json:"municipality_like"`   // 0.7
	NationwideFuzzy  float64 `yaml:"nationwide_fuzzy" json:"nationwide_fuzzy"`     // 0.6
	PartialPriority  float64 `yaml:"partial_priority" json:"partial_priority"`     // 0.68
	PartialNation    float64 `yaml:"partial_nationwide" json:"partial_nationwide"` // 0.70
	ScopedAccept     float64 `yaml:"scoped_accept" json:"scoped_accept"`           // 0.78
}

// Bonuses are the state-priority additions applied during broad partial
// search, capped so a bonus can never manufacture a passing score alone.
type Bonuses struct {
	TopState    float64 `yaml:"top_state" json:"top_state"`       // +0.05
	SecondState float64 `yaml:"second_state" json:"second_state"` // +0.04
}

// ResolverCfg is the tuned parameter set for the cascade.
type ResolverCfg struct {
	Thresholds    Thresholds `yaml:"thresholds" json:"thresholds"`
	Bonuses       Bonuses    `yaml:"bonuses" json:"bonuses"`
	FragmentTopK  int        `yaml:"fragment_topk" json:"fragment_topk"`     // 5
	NationwideMax int        `yaml:"nationwide_max" json:"nationwide_max"`   // 3
	ScopedLimit   int        `yaml:"scoped_limit" json:"scoped_limit"`       // 50
	MinWordLength int        `yaml:"min_word_length" json:"min_word_length"` // 3
}

// C is the loaded configuration. Starts at the tuned defaults.
var C = Defaults()

// Defaults returns the tuned production constants.
func Defaults() ResolverCfg {
	return ResolverCfg{
		Thresholds: Thresholds{
			FuzzyAccept:      0.65,
			FuzzyHigh:        0.8,
			FragmentWords:    0.6,
			FragmentAccept:   0.55,
			ComponentHigh:    0.9,
			MunicipalityLike: 0.7,
			NationwideFuzzy:  0.6,
			PartialPriority:  0.68,
			PartialNation:    0.70,
			ScopedAccept:     0.78,
		},
		Bonuses: Bonuses{
			TopState:    0.05,
			SecondState: 0.04,
		},
		FragmentTopK:  5,
		NationwideMax: 3,
		ScopedLimit:   50,
		MinWordLength: 3,
	}
}

// Load overrides the defaults from a yaml file. Missing file is not an
// error path callers need to special-case; they can check os.IsNotExist.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return err
	}
	C = cfg
	return nil
}

// RequestTimeout bounds one resolution attempt end to end.
func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
