package models

// Confidence is the coarse trust tier of a resolution, distinct from the
// raw numeric similarity.
type Confidence string

const (
	ConfidenceExact          Confidence = "exact"
	ConfidenceExactVariation Confidence = "exact_variation"
	ConfidenceHigh           Confidence = "high"
	ConfidenceMedium         Confidence = "medium"
	ConfidenceLow            Confidence = "low"
	ConfidenceStateOnly      Confidence = "state_only"
	ConfidenceNone           Confidence = "none"
)

// ResolutionResult is the engine's output for one resolution attempt.
// Constructed fresh per call and never persisted by the engine; the caller
// decides whether to store LocationID or fall back to the original text.
//
// Invariant: ConfidenceExact always has Suggestion=false; any other tier
// carrying a LocationID has Suggestion=true unless the similarity cleared
// the high-confidence bar of the phase that produced it.
type ResolutionResult struct {
	LocationID   *uint64     `json:"location_id,omitempty"`
	Name         string      `json:"name,omitempty"`
	Municipality string      `json:"municipality,omitempty"`
	State        string      `json:"state,omitempty"`
	Suggestion   bool        `json:"suggestion"`
	Confidence   Confidence  `json:"confidence"`
	Similarity   *float64    `json:"similarity,omitempty"`
	Candidates   []Candidate `json:"candidates,omitempty"`
}

// Candidate is one plausible alternative surfaced when a phase cannot pick
// a single winner safely.
type Candidate struct {
	LocationID   uint64  `json:"location_id"`
	Name         string  `json:"name"`
	Municipality string  `json:"municipality"`
	State        string  `json:"state"`
	Similarity   float64 `json:"similarity"`
}

// TextComponents is the structured breakdown of a query produced by the
// Component Analyzer. Derived once per resolution attempt.
type TextComponents struct {
	DetectedState        string   `json:"detected_state,omitempty"`
	DetectedMunicipality string   `json:"detected_municipality,omitempty"`
	HasSeparator         bool     `json:"has_separator"`
	Parts                []string `json:"parts"`
}

// Matched reports whether the result carries a concrete location link.
func (r *ResolutionResult) Matched() bool {
	return r != nil && r.LocationID != nil
}

// Float64Ptr is a small helper for optional similarity fields.
func Float64Ptr(v float64) *float64 { return &v }

// Uint64Ptr is a small helper for optional id fields.
func Uint64Ptr(v uint64) *uint64 { return &v }
