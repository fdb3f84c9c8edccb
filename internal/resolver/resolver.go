// Package resolver orchestrates the cascading resolution of free-text
// place descriptions against the canonical lookup tables. Phases run in
// strict priority order and short-circuit on the first accepted match;
// absence of a match falls through, never errors.
package resolver

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/location-resolver/app/config"
	"github.com/location-resolver/app/models"
	"github.com/location-resolver/internal/analyzer"
	"github.com/location-resolver/internal/gateway"
	"github.com/location-resolver/internal/normalizer"
	"github.com/location-resolver/internal/similarity"
)

// Resolver runs the phase cascade. Stateless per call; safe for
// concurrent use.
type Resolver struct {
	lookup     gateway.Lookup
	normalizer *normalizer.TextNormalizer
	analyzer   *analyzer.ComponentAnalyzer
	scorer     *similarity.Scorer
	cfg        config.ResolverCfg
	logger     *zap.Logger
}

// New creates a Resolver wired to the given lookup gateway.
func New(lookup gateway.Lookup, tn *normalizer.TextNormalizer, ca *analyzer.ComponentAnalyzer, sc *similarity.Scorer, logger *zap.Logger) *Resolver {
	return &Resolver{
		lookup:     lookup,
		normalizer: tn,
		analyzer:   ca,
		scorer:     sc,
		cfg:        config.C,
		logger:     logger,
	}
}

// Resolve maps raw clerk text to a canonical location, a partial
// municipality/state result, or nil when no safe match exists. Gateway
// errors propagate to the caller.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*models.ResolutionResult, error) {
	start := time.Now()

	query := r.normalizer.Normalize(raw)
	if query == "" {
		return nil, nil
	}
	comps := r.analyzer.Analyze(raw)

	phases := []struct {
		name string
		run  func(context.Context, string, models.TextComponents) (*models.ResolutionResult, error)
	}{
		{"exact_priority", r.exactPriority},
		{"exact_variation", r.exactVariation},
		{"priority_fuzzy", r.priorityFuzzy},
		{"word_fragment", r.wordFragment},
		{"detected_component", r.detectedComponent},
		{"priority_municipality", r.priorityMunicipality},
		{"nationwide_exact", r.nationwideExact},
		{"nationwide_fuzzy", r.nationwideFuzzy},
		{"broad_partial", r.broadPartial},
		{"scoped_secondary", r.scopedSecondary},
		{"state_only", r.stateOnly},
	}

	for _, phase := range phases {
		result, err := phase.run(ctx, query, comps)
		if err != nil {
			return nil, err
		}
		if result != nil {
			r.logger.Debug("location resolved",
				zap.String("query", query),
				zap.String("phase", phase.name),
				zap.String("confidence", string(result.Confidence)),
				zap.Duration("duration", time.Since(start)))
			return result, nil
		}
	}

	r.logger.Debug("no match",
		zap.String("query", query),
		zap.Duration("duration", time.Since(start)))
	return nil, nil
}

// exactPriority matches the query verbatim against the priority index,
// lowest tier first.
func (r *Resolver) exactPriority(ctx context.Context, query string, _ models.TextComponents) (*models.ResolutionResult, error) {
	entry, err := r.lookup.FindPriorityByNormalizedName(ctx, query)
	if err != nil || entry == nil {
		return nil, err
	}
	return entryResult(entry, models.ConfidenceExact, 1.0, false), nil
}

// exactVariation retries the exact lookup with each connector-word
// variation of the query.
func (r *Resolver) exactVariation(ctx context.Context, query string, _ models.TextComponents) (*models.ResolutionResult, error) {
	for _, variation := range normalizer.GenerateVariations(query) {
		entry, err := r.lookup.FindPriorityByNormalizedName(ctx, variation)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			continue
		}
		sim := r.scorer.Score(query, entry.NormalizedName)
		return entryResult(entry, models.ConfidenceExactVariation, sim, sim < r.cfg.Thresholds.FuzzyHigh), nil
	}
	return nil, nil
}

// priorityFuzzy LIKE-filters the priority index on every query word and
// scores the survivors, with a b/v-swapped retry when the first filter
// finds nothing.
func (r *Resolver) priorityFuzzy(ctx context.Context, query string, _ models.TextComponents) (*models.ResolutionResult, error) {
	patterns := r.searchWords(query)
	if len(patterns) == 0 {
		return nil, nil
	}

	entries, err := r.lookup.SearchPriorityLike(ctx, patterns, nil)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		entries, err = r.lookup.SearchPriorityLike(ctx, swapBV(patterns), nil)
		if err != nil {
			return nil, err
		}
	}

	type scored struct {
		entry models.PriorityLocationEntry
		sim   float64
	}
	var accepted []scored
	for _, e := range entries {
		sim := r.scorer.Score(query, e.NormalizedName)
		if sim >= r.cfg.Thresholds.FuzzyAccept {
			accepted = append(accepted, scored{e, sim})
		}
	}
	if len(accepted) == 0 {
		return nil, nil
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].entry.PriorityLevel != accepted[j].entry.PriorityLevel {
			return accepted[i].entry.PriorityLevel < accepted[j].entry.PriorityLevel
		}
		return accepted[i].sim > accepted[j].sim
	})

	best := accepted[0]
	conf := models.ConfidenceMedium
	if best.sim >= r.cfg.Thresholds.FuzzyHigh {
		conf = models.ConfidenceHigh
	}
	return entryResult(&best.entry, conf, best.sim, best.sim < r.cfg.Thresholds.FuzzyHigh), nil
}

// wordFragment handles fragmented or out-of-order input by scoring every
// priority entry word by word. Prefix containment only counts when the
// length ratio clears 0.7, so short fragments cannot latch onto longer
// unrelated words for free; failed partials accrue a penalty instead.
func (r *Resolver) wordFragment(ctx context.Context, query string, _ models.TextComponents) (*models.ResolutionResult, error) {
	queryWords := strings.Fields(query)
	if len(queryWords) == 0 {
		return nil, nil
	}

	entries, err := r.lookup.ListAllPriority(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		entry    models.PriorityLocationEntry
		fraction float64
		sim      float64
	}
	var qualified []scored

	for _, e := range entries {
		entryWords := strings.Fields(e.NormalizedName)
		matches, penalties := 0.0, 0.0

		for _, qw := range queryWords {
			matched, penalized := false, false
			for _, ew := range entryWords {
				if qw == ew {
					matched = true
					break
				}
				if strings.HasPrefix(ew, qw) || strings.HasPrefix(qw, ew) {
					if lengthRatio(qw, ew) >= 0.7 {
						matched = true
						break
					}
					penalized = true
				}
			}
			if matched {
				matches++
			} else if penalized {
				penalties++
			}
		}

		fraction := (matches - penalties*0.25) / float64(len(queryWords))
		if fraction < r.cfg.Thresholds.FragmentWords {
			continue
		}
		sim := r.scorer.Score(query, e.NormalizedName)
		if sim < r.cfg.Thresholds.FragmentAccept {
			continue
		}
		qualified = append(qualified, scored{e, fraction, sim})
	}
	if len(qualified) == 0 {
		return nil, nil
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		if qualified[i].entry.PriorityLevel != qualified[j].entry.PriorityLevel {
			return qualified[i].entry.PriorityLevel < qualified[j].entry.PriorityLevel
		}
		if qualified[i].fraction != qualified[j].fraction {
			return qualified[i].fraction > qualified[j].fraction
		}
		return qualified[i].sim > qualified[j].sim
	})
	if len(qualified) > r.cfg.FragmentTopK {
		qualified = qualified[:r.cfg.FragmentTopK]
	}

	best := qualified[0]
	conf := models.ConfidenceLow
	switch {
	case best.sim >= r.cfg.Thresholds.FuzzyHigh:
		conf = models.ConfidenceHigh
	case best.sim >= r.cfg.Thresholds.FuzzyAccept:
		conf = models.ConfidenceMedium
	}
	return entryResult(&best.entry, conf, best.sim, best.sim < r.cfg.Thresholds.FuzzyHigh), nil
}

// detectedComponent narrows the priority search to the state the analyzer
// detected, trying the query first and the detected municipality second.
func (r *Resolver) detectedComponent(ctx context.Context, query string, comps models.TextComponents) (*models.ResolutionResult, error) {
	if comps.DetectedState == "" {
		return nil, nil
	}
	stateID, ok := models.StateIDByName[comps.DetectedState]
	if !ok {
		return nil, nil
	}

	entries, err := r.lookup.SearchPriorityLike(ctx, r.searchWords(query), &stateID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 && comps.DetectedMunicipality != "" {
		entries, err = r.lookup.SearchPriorityLike(ctx, []string{comps.DetectedMunicipality}, &stateID)
		if err != nil {
			return nil, err
		}
	}
	if len(entries) == 0 {
		return nil, nil
	}

	best, bestSim := &entries[0], r.scorer.Score(query, entries[0].NormalizedName)
	for i := 1; i < len(entries); i++ {
		if sim := r.scorer.Score(query, entries[i].NormalizedName); sim > bestSim {
			best, bestSim = &entries[i], sim
		}
	}

	conf := models.ConfidenceMedium
	if bestSim >= r.cfg.Thresholds.ComponentHigh {
		conf = models.ConfidenceHigh
	}
	return entryResult(best, conf, bestSim, bestSim < r.cfg.Thresholds.ComponentHigh), nil
}

// priorityMunicipality searches the canonical municipality table directly
// and returns a location-less result. With no detected state both priority
// states are tried in tier order.
func (r *Resolver) priorityMunicipality(ctx context.Context, query string, comps models.TextComponents) (*models.ResolutionResult, error) {
	states := []uint64{models.StateIDGuerrero, models.StateIDOaxaca}
	if comps.DetectedState != "" {
		if id, ok := models.StateIDByName[comps.DetectedState]; ok {
			states = []uint64{id}
		}
	}

	for _, stateID := range states {
		muni, err := r.lookup.FindMunicipalityExact(ctx, stateID, query)
		if err != nil {
			return nil, err
		}
		if muni != nil {
			return municipalityResult(muni, models.ConfidenceHigh, 1.0, false), nil
		}
	}

	patterns := []string{query}
	if comps.DetectedMunicipality != "" {
		patterns = append(patterns, comps.DetectedMunicipality)
	}
	for _, stateID := range states {
		for _, pattern := range patterns {
			muni, err := r.lookup.SearchMunicipalityLike(ctx, stateID, pattern)
			if err != nil {
				return nil, err
			}
			if muni == nil {
				continue
			}
			sim := r.scorer.Score(query, muni.NormalizedName)
			if sim >= r.cfg.Thresholds.MunicipalityLike {
				return municipalityResult(muni, models.ConfidenceMedium, sim, true), nil
			}
		}
	}
	return nil, nil
}

// nationwideExact matches the query against the full canonical location
// table with no state restriction.
func (r *Resolver) nationwideExact(ctx context.Context, query string, _ models.TextComponents) (*models.ResolutionResult, error) {
	loc, err := r.lookup.FindLocationExact(ctx, query)
	if err != nil || loc == nil {
		return nil, err
	}
	return locationResult(loc, models.ConfidenceExact, 1.0, false), nil
}

// nationwideFuzzy fetches LIKE candidates from the two prioritized states
// and surfaces a suggestion list when more than one plausible candidate
// survives scoring.
func (r *Resolver) nationwideFuzzy(ctx context.Context, query string, _ models.TextComponents) (*models.ResolutionResult, error) {
	patterns := r.searchWords(query)
	if len(patterns) == 0 {
		return nil, nil
	}

	type scored struct {
		entry models.PriorityLocationEntry
		sim   float64
	}
	var accepted []scored
	for _, stateID := range []uint64{models.StateIDGuerrero, models.StateIDOaxaca} {
		id := stateID
		entries, err := r.lookup.SearchPriorityLike(ctx, patterns, &id)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if sim := r.scorer.Score(query, e.NormalizedName); sim >= r.cfg.Thresholds.NationwideFuzzy {
				accepted = append(accepted, scored{e, sim})
			}
		}
	}
	if len(accepted) == 0 {
		return nil, nil
	}

	sort.SliceStable(accepted, func(i, j int) bool { return accepted[i].sim > accepted[j].sim })
	if len(accepted) > r.cfg.NationwideMax {
		accepted = accepted[:r.cfg.NationwideMax]
	}

	best := accepted[0]
	conf := models.ConfidenceMedium
	if best.sim >= r.cfg.Thresholds.FuzzyHigh {
		conf = models.ConfidenceHigh
	}
	result := entryResult(&best.entry, conf, best.sim, best.sim < r.cfg.Thresholds.FuzzyHigh)

	if len(accepted) > 1 {
		result.Suggestion = true
		for _, s := range accepted {
			result.Candidates = append(result.Candidates, models.Candidate{
				LocationID:   s.entry.LocationID,
				Name:         s.entry.LocationName,
				Municipality: s.entry.MunicipalityName,
				State:        s.entry.StateName,
				Similarity:   s.sim,
			})
		}
	}
	return result, nil
}

// broadPartial requires every significant query word to LIKE-match and
// adds the state-priority bonus to the score. The first attempt restricts
// to the two prioritized states with a lower bar; the second opens the
// whole priority index with a stricter one.
func (r *Resolver) broadPartial(ctx context.Context, query string, _ models.TextComponents) (*models.ResolutionResult, error) {
	patterns := r.significantWords(query)
	if len(patterns) == 0 {
		return nil, nil
	}

	restricted := func() ([]models.PriorityLocationEntry, error) {
		var out []models.PriorityLocationEntry
		for _, stateID := range []uint64{models.StateIDGuerrero, models.StateIDOaxaca} {
			id := stateID
			entries, err := r.lookup.SearchPriorityLike(ctx, patterns, &id)
			if err != nil {
				return nil, err
			}
			out = append(out, entries...)
		}
		return out, nil
	}
	unrestricted := func() ([]models.PriorityLocationEntry, error) {
		return r.lookup.SearchPriorityLike(ctx, patterns, nil)
	}

	attempts := []struct {
		fetch     func() ([]models.PriorityLocationEntry, error)
		threshold float64
	}{
		{restricted, r.cfg.Thresholds.PartialPriority},
		{unrestricted, r.cfg.Thresholds.PartialNation},
	}

	for _, attempt := range attempts {
		entries, err := attempt.fetch()
		if err != nil {
			return nil, err
		}

		var best *models.PriorityLocationEntry
		bestScore := 0.0
		for i := range entries {
			score := r.scorer.Score(query, entries[i].NormalizedName) + r.stateBonus(entries[i].StateID)
			if score > 1.0 {
				score = 1.0
			}
			if score > bestScore {
				best, bestScore = &entries[i], score
			}
		}
		if best == nil || bestScore < attempt.threshold {
			continue
		}

		conf := models.ConfidenceMedium
		if bestScore >= r.cfg.Thresholds.FuzzyHigh {
			conf = models.ConfidenceHigh
		}
		return entryResult(best, conf, bestScore, bestScore < r.cfg.Thresholds.FuzzyHigh), nil
	}
	return nil, nil
}

// scopedSecondary trusts a detected municipality or state and re-scores
// canonical locations inside that scope. The bar is stricter than the
// general cascade because the pass compounds a partial detection.
func (r *Resolver) scopedSecondary(ctx context.Context, query string, comps models.TextComponents) (*models.ResolutionResult, error) {
	if comps.DetectedState == "" {
		return nil, nil
	}
	stateID, ok := models.StateIDByName[comps.DetectedState]
	if !ok {
		return nil, nil
	}

	var municipalityID *uint64
	if comps.DetectedMunicipality != "" {
		muni, err := r.lookup.FindMunicipalityExact(ctx, stateID, comps.DetectedMunicipality)
		if err != nil {
			return nil, err
		}
		if muni == nil {
			muni, err = r.lookup.SearchMunicipalityLike(ctx, stateID, comps.DetectedMunicipality)
			if err != nil {
				return nil, err
			}
		}
		if muni != nil {
			id := muni.ID
			municipalityID = &id
		}
	}

	locations, err := r.lookup.SearchLocationsScoped(ctx, &stateID, municipalityID, r.cfg.ScopedLimit)
	if err != nil {
		return nil, err
	}

	var best *models.CanonicalLocation
	bestSim := 0.0
	for i := range locations {
		sim := r.scorer.Score(query, r.normalizer.Normalize(locations[i].LocationName))
		if sim > bestSim {
			best, bestSim = &locations[i], sim
		}
	}
	if best == nil || bestSim < r.cfg.Thresholds.ScopedAccept {
		return nil, nil
	}

	conf := models.ConfidenceMedium
	if bestSim >= r.cfg.Thresholds.FuzzyHigh {
		conf = models.ConfidenceHigh
	}
	return locationResult(best, conf, bestSim, bestSim < r.cfg.Thresholds.FuzzyHigh), nil
}

// stateOnly is the last resort when a state was detected but nothing
// resolved: the caller keeps the literal text and records the state.
func (r *Resolver) stateOnly(_ context.Context, _ string, comps models.TextComponents) (*models.ResolutionResult, error) {
	if comps.DetectedState == "" {
		return nil, nil
	}
	return &models.ResolutionResult{
		State:      comps.DetectedState,
		Suggestion: true,
		Confidence: models.ConfidenceStateOnly,
	}, nil
}

// searchWords returns every query word long enough to be a safe LIKE
// pattern. Connectors of qualifying length stay in: they still narrow the
// ANDed filter.
func (r *Resolver) searchWords(query string) []string {
	var out []string
	for _, w := range strings.Fields(query) {
		if len(w) >= r.cfg.MinWordLength {
			out = append(out, w)
		}
	}
	return out
}

// significantWords is searchWords minus connectors, for the broad partial
// pass where a connector pattern would filter out legitimate candidates.
func (r *Resolver) significantWords(query string) []string {
	var out []string
	for _, w := range strings.Fields(query) {
		if len(w) >= r.cfg.MinWordLength && !normalizer.IsConnector(w) {
			out = append(out, w)
		}
	}
	return out
}

// stateBonus is the priority weighting added during broad partial search.
func (r *Resolver) stateBonus(stateID uint64) float64 {
	switch models.StatePriority[stateID] {
	case 1:
		return r.cfg.Bonuses.TopState
	case 2:
		return r.cfg.Bonuses.SecondState
	}
	return 0
}

func swapBV(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		var b strings.Builder
		b.Grow(len(w))
		for _, c := range w {
			switch c {
			case 'b':
				b.WriteRune('v')
			case 'v':
				b.WriteRune('b')
			default:
				b.WriteRune(c)
			}
		}
		out[i] = b.String()
	}
	return out
}

func lengthRatio(a, b string) float64 {
	la, lb := len(a), len(b)
	if la > lb {
		la, lb = lb, la
	}
	if lb == 0 {
		return 0
	}
	return float64(la) / float64(lb)
}

func entryResult(e *models.PriorityLocationEntry, conf models.Confidence, sim float64, suggestion bool) *models.ResolutionResult {
	return &models.ResolutionResult{
		LocationID:   models.Uint64Ptr(e.LocationID),
		Name:         e.LocationName,
		Municipality: e.MunicipalityName,
		State:        e.StateName,
		Suggestion:   suggestion,
		Confidence:   conf,
		Similarity:   models.Float64Ptr(sim),
	}
}

func locationResult(l *models.CanonicalLocation, conf models.Confidence, sim float64, suggestion bool) *models.ResolutionResult {
	return &models.ResolutionResult{
		LocationID:   models.Uint64Ptr(l.LocationID),
		Name:         l.LocationName,
		Municipality: l.MunicipalityName,
		State:        l.StateName,
		Suggestion:   suggestion,
		Confidence:   conf,
		Similarity:   models.Float64Ptr(sim),
	}
}

func municipalityResult(m *models.Municipality, conf models.Confidence, sim float64, suggestion bool) *models.ResolutionResult {
	return &models.ResolutionResult{
		Municipality: m.Name,
		State:        m.StateName,
		Suggestion:   suggestion,
		Confidence:   conf,
		Similarity:   models.Float64Ptr(sim),
	}
}
