package responses

import "github.com/location-resolver/app/models"

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ResolveLocationResponse wraps a single resolution result. Result is
// null when nothing matched; Matched makes that explicit for clients.
type ResolveLocationResponse struct {
	Matched          bool                     `json:"matched"`
	Result           *models.ResolutionResult `json:"result"`
	CacheHit         bool                     `json:"cache_hit"`
	ProcessingTimeMs int64                    `json:"processing_time_ms"`
}

// BatchResolveResponse wraps results in input order.
type BatchResolveResponse struct {
	Results          []*models.ResolutionResult `json:"results"`
	ProcessingTimeMs int64                      `json:"processing_time_ms"`
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
