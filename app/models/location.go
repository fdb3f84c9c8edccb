package models

// State canonical state record from the hospital's relational schema.
type State struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name"`
	// PriorityLevel is 1..5 for states in the priority set, 0 otherwise.
	PriorityLevel int `json:"priority_level,omitempty"`
}

// Municipality canonical municipality record.
type Municipality struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name"`
	StateID        uint64 `json:"state_id"`
	StateName      string `json:"state_name"`
}

// CanonicalLocation is the flattened location → municipality → state row
// the engine resolves against. Read-only from the engine's perspective.
type CanonicalLocation struct {
	LocationID       uint64 `json:"location_id"`
	LocationName     string `json:"location_name"`
	MunicipalityID   uint64 `json:"municipality_id"`
	MunicipalityName string `json:"municipality_name"`
	StateID          uint64 `json:"state_id"`
	StateName        string `json:"state_name"`
}

// PriorityLocationEntry is the denormalized, precomputed projection of a
// CanonicalLocation for states in the priority set. Built offline by the
// seedstore job; exactly one entry per location in a prioritized state.
type PriorityLocationEntry struct {
	CanonicalLocation
	NormalizedName string `json:"normalized_name"`
	PriorityLevel  int    `json:"priority_level"` // 1 = highest
}

// Priority state identifiers (INEGI state codes). The institution's
// catchment area concentrates in Guerrero and Oaxaca.
const (
	StateIDGuerrero  uint64 = 12
	StateIDOaxaca    uint64 = 20
	StateIDMexico    uint64 = 15
	StateIDMichoacan uint64 = 16
	StateIDMorelos   uint64 = 17
)

// StatePriority maps a state id to its matching priority tier.
var StatePriority = map[uint64]int{
	StateIDGuerrero:  1,
	StateIDOaxaca:    2,
	StateIDMichoacan: 3,
	StateIDMexico:    4,
	StateIDMorelos:   5,
}

// StateIDByName maps canonical state display names to identifiers for the
// states the Component Analyzer can detect.
var StateIDByName = map[string]uint64{
	"Guerrero": StateIDGuerrero,
	"Oaxaca":   StateIDOaxaca,
}
