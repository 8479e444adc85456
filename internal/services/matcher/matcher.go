// Package matcher implements the raw-record scoring pipeline: normalize,
// score, rank.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"retirement-match-engine/internal/models"
	"retirement-match-engine/internal/services/metrics"
	"retirement-match-engine/internal/services/normalizer"
	"retirement-match-engine/internal/services/scoring"
)

// ErrNoRepository is returned by ScoreUser when the service has no stored
// profile or candidate source.
var ErrNoRepository = errors.New("no profile or candidate repository configured")

// PreferenceSource loads stored raw preference profiles.
type PreferenceSource interface {
	GetByUserID(ctx context.Context, userID string) (*models.RawPreferences, error)
}

// CandidateSource loads stored raw candidate records.
type CandidateSource interface {
	GetAll(ctx context.Context) ([]models.RawCandidate, error)
}

// Service runs the matching pipeline
type Service struct {
	engine     *scoring.Engine
	normalizer *normalizer.Normalizer
	metrics    *metrics.Metrics
	logger     *zap.Logger
	prefs      PreferenceSource
	towns      CandidateSource
}

// Summary aggregates one batch
type Summary struct {
	Total          int     `json:"total"`
	Scored         int     `json:"scored"`
	Failed         int     `json:"failed"`
	TopCandidateID string  `json:"topCandidateId,omitempty"`
	TopPercent     int     `json:"topPercent"`
	AveragePercent float64 `json:"averagePercent"`
}

// BatchResult contains the complete result of scoring a batch of candidates
type BatchResult struct {
	BatchID          string               `json:"batchId"`
	ProfileID        string               `json:"profileId,omitempty"`
	ScoringVersion   string               `json:"scoringVersion"`
	Results          []models.MatchResult `json:"results"`
	Warnings         []string             `json:"warnings,omitempty"`
	Summary          Summary              `json:"summary"`
	ProcessingTimeMs int64                `json:"processingTimeMs"`
}

// NewService creates a matcher service. m may be nil.
func NewService(engine *scoring.Engine, norm *normalizer.Normalizer, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{engine: engine, normalizer: norm, metrics: m, logger: logger}
}

// WithRepositories attaches stored profile and candidate sources for ScoreUser.
func (s *Service) WithRepositories(prefs PreferenceSource, towns CandidateSource) *Service {
	s.prefs = prefs
	s.towns = towns
	return s
}

// ScoreRaw normalizes a raw profile and raw candidates, then scores every
// candidate. Results keep the input order.
func (s *Service) ScoreRaw(ctx context.Context, raw *models.RawPreferences, candidates []models.RawCandidate) (*BatchResult, error) {
	start := time.Now()
	if raw == nil {
		return nil, models.ErrNilPreferences
	}

	result := &BatchResult{
		BatchID:        uuid.New().String(),
		ProfileID:      raw.UserID,
		ScoringVersion: s.engine.Version(),
	}

	prefs, warnings := s.normalizer.Preferences(raw)
	s.collect(result, warnings)

	normalized := make([]*models.Candidate, len(candidates))
	for i := range candidates {
		c, warnings := s.normalizer.Candidate(&candidates[i])
		s.collect(result, warnings)
		normalized[i] = c
	}

	scored, err := s.engine.ScoreAll(ctx, prefs, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to score candidates: %w", err)
	}
	result.Results = scored
	result.Summary = summarize(scored)

	elapsed := time.Since(start)
	result.ProcessingTimeMs = elapsed.Milliseconds()
	s.record(scored, elapsed)

	s.logger.Info("Scored candidate batch",
		zap.String("batch_id", result.BatchID),
		zap.String("profile_id", result.ProfileID),
		zap.Int("candidates", result.Summary.Total),
		zap.Int("failed", result.Summary.Failed),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("duration", elapsed),
	)
	return result, nil
}

// ScoreUser scores every stored candidate against a stored profile and keeps
// the best limit results. limit <= 0 keeps all of them.
func (s *Service) ScoreUser(ctx context.Context, userID string, limit int) (*BatchResult, error) {
	if s.prefs == nil || s.towns == nil {
		return nil, ErrNoRepository
	}

	raw, err := s.prefs.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", userID, err)
	}
	towns, err := s.towns.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	result, err := s.ScoreRaw(ctx, raw, towns)
	if err != nil {
		return nil, err
	}
	result.Results = TopMatches(result.Results, limit)
	return result, nil
}

// TopMatches returns successful results ordered by overall percent, highest
// first, with ties broken by candidate ID. The input is not modified.
func TopMatches(results []models.MatchResult, limit int) []models.MatchResult {
	out := make([]models.MatchResult, 0, len(results))
	for _, r := range results {
		if !r.Failed() {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b models.MatchResult) int {
		if a.OverallPercent != b.OverallPercent {
			return b.OverallPercent - a.OverallPercent
		}
		switch {
		case a.CandidateID < b.CandidateID:
			return -1
		case a.CandidateID > b.CandidateID:
			return 1
		}
		return 0
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *Service) collect(result *BatchResult, warnings []normalizer.Warning) {
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, w.String())
		s.metrics.IncrementDropped(w.Field)
	}
}

func (s *Service) record(results []models.MatchResult, elapsed time.Duration) {
	for _, r := range results {
		s.metrics.IncrementScored(r.Failed())
		if !r.Failed() {
			s.metrics.ObserveOverallPercent(r.OverallPercent)
		}
	}
	s.metrics.ObserveBatchLatency(elapsed)
}

func summarize(results []models.MatchResult) Summary {
	sum := Summary{Total: len(results)}
	var total int
	for _, r := range results {
		if r.Failed() {
			sum.Failed++
			continue
		}
		sum.Scored++
		total += r.OverallPercent
		if sum.TopCandidateID == "" || r.OverallPercent > sum.TopPercent {
			sum.TopCandidateID = r.CandidateID
			sum.TopPercent = r.OverallPercent
		}
	}
	if sum.Scored > 0 {
		sum.AveragePercent = float64(total) / float64(sum.Scored)
	}
	return sum
}
