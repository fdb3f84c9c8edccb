package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/xrash/smetrics"
	"go.uber.org/zap"

	"github.com/location-resolver/app/models"
	"github.com/location-resolver/internal/analyzer"
	"github.com/location-resolver/internal/gateway"
	"github.com/location-resolver/internal/normalizer"
	"github.com/location-resolver/internal/resolver"
	"github.com/location-resolver/internal/similarity"
)

// ErrEmptyText rejects requests with no usable content before the
// cascade runs.
var ErrEmptyText = errors.New("location text must not be empty")

// ResolutionService fronts the resolver with caching and the operator
// diagnostics surface. Intake never sees resolver failures; anything
// unexpected degrades to a no-match result.
type ResolutionService struct {
	resolver   *resolver.Resolver
	lookup     gateway.Lookup
	normalizer *normalizer.TextNormalizer
	analyzer   *analyzer.ComponentAnalyzer
	scorer     *similarity.Scorer
	cache      ICacheService
	logger     *zap.Logger
	startTime  time.Time
}

// DiagnosticCandidate is one scored priority entry in a diagnostics
// report. JaroWinkler is informational; the cascade never uses it.
type DiagnosticCandidate struct {
	Name           string  `json:"name"`
	NormalizedName string  `json:"normalized_name"`
	Municipality   string  `json:"municipality"`
	State          string  `json:"state"`
	PriorityLevel  int     `json:"priority_level"`
	Similarity     float64 `json:"similarity"`
	JaroWinkler    float64 `json:"jaro_winkler"`
}

// DiagnosticsReport shows how the engine sees a piece of raw text.
type DiagnosticsReport struct {
	Input      string                   `json:"input"`
	Normalized string                   `json:"normalized"`
	Variations []string                 `json:"variations"`
	Components models.TextComponents    `json:"components"`
	Candidates []DiagnosticCandidate    `json:"candidates"`
	Result     *models.ResolutionResult `json:"result,omitempty"`
}

// NewResolutionService wires the resolver pipeline behind a cache.
func NewResolutionService(res *resolver.Resolver, lookup gateway.Lookup, tn *normalizer.TextNormalizer, ca *analyzer.ComponentAnalyzer, sc *similarity.Scorer, cache ICacheService, logger *zap.Logger) *ResolutionService {
	return &ResolutionService{
		resolver:   res,
		lookup:     lookup,
		normalizer: tn,
		analyzer:   ca,
		scorer:     sc,
		cache:      cache,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// ResolveLocation resolves raw clerk text, consulting the cache keyed by
// the normalized form so spelling-equivalent inputs share one entry. A
// nil result means nothing matched safely.
func (rs *ResolutionService) ResolveLocation(ctx context.Context, raw string, skipCache bool) (*models.ResolutionResult, bool, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, false, ErrEmptyText
	}

	key := rs.normalizer.Normalize(raw)
	if key == "" {
		return nil, false, nil
	}

	if !skipCache {
		if cached, found, err := rs.cache.Get(ctx, key); err == nil && found {
			return cached, true, nil
		}
	}

	result, err := rs.resolver.Resolve(ctx, raw)
	if err != nil {
		rs.logger.Error("resolution failed, treating as no match",
			zap.Error(err), zap.String("query", key))
		return nil, false, nil
	}

	if result != nil {
		if err := rs.cache.Set(ctx, key, result); err != nil {
			rs.logger.Warn("cache write failed", zap.Error(err), zap.String("key", key))
		}
	}
	return result, false, nil
}

// Diagnose exposes the intermediate pipeline artifacts for one input:
// the normalized form, generated variations, detected components, and
// scored priority candidates.
func (rs *ResolutionService) Diagnose(ctx context.Context, raw string) (*DiagnosticsReport, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyText
	}

	normalized := rs.normalizer.Normalize(raw)
	report := &DiagnosticsReport{
		Input:      raw,
		Normalized: normalized,
		Variations: normalizer.GenerateVariations(normalized),
		Components: rs.analyzer.Analyze(raw),
	}
	if normalized == "" {
		return report, nil
	}

	entries, err := rs.lookup.ListAllPriority(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		sim := rs.scorer.Score(normalized, e.NormalizedName)
		if sim < 0.3 {
			continue
		}
		report.Candidates = append(report.Candidates, DiagnosticCandidate{
			Name:           e.LocationName,
			NormalizedName: e.NormalizedName,
			Municipality:   e.MunicipalityName,
			State:          e.StateName,
			PriorityLevel:  e.PriorityLevel,
			Similarity:     sim,
			JaroWinkler:    smetrics.JaroWinkler(normalized, e.NormalizedName, 0.7, 4),
		})
	}
	sort.SliceStable(report.Candidates, func(i, j int) bool {
		return report.Candidates[i].Similarity > report.Candidates[j].Similarity
	})
	if len(report.Candidates) > 10 {
		report.Candidates = report.Candidates[:10]
	}

	result, err := rs.resolver.Resolve(ctx, raw)
	if err == nil {
		report.Result = result
	}
	return report, nil
}

// Uptime reports how long the service has been running.
func (rs *ResolutionService) Uptime() time.Duration {
	return time.Since(rs.startTime)
}
