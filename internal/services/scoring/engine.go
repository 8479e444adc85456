package scoring

import (
	"fmt"

	"go.uber.org/zap"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
)

// Engine scores normalized candidates against a normalized profile. It holds
// no mutable state after construction and is safe for concurrent use.
type Engine struct {
	scoring     *config.Scoring
	scorers     []CategoryScorer
	aggregator  Aggregator
	concurrency int
	logger      *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for batch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithConcurrency overrides the batch worker limit from the scoring table.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// New builds an engine from a scoring table. A nil table means the built-in
// defaults.
func New(scoring *config.Scoring, opts ...Option) (*Engine, error) {
	if scoring == nil {
		scoring = config.DefaultScoring()
	}
	if v := scoring.Validate(); !v.OK() {
		return nil, v.Err()
	}

	e := &Engine{
		scoring: scoring,
		scorers: []CategoryScorer{
			NewRegionScorer(scoring.Region),
			NewClimateScorer(scoring.Climate),
			NewCultureScorer(scoring.Culture),
			NewHobbyScorer(scoring.Hobbies),
			NewAdminScorer(scoring.Admin),
			NewBudgetScorer(scoring.Budget),
		},
		aggregator:  NewAggregator(scoring.Weights),
		concurrency: scoring.Batch.Concurrency,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.concurrency < 1 {
		e.concurrency = 1
	}
	return e, nil
}

// Version returns the version of the scoring table in use.
func (e *Engine) Version() string { return e.scoring.Version }

// Concurrency returns the batch worker limit.
func (e *Engine) Concurrency() int { return e.concurrency }

// Score computes the match result of a single candidate.
func (e *Engine) Score(p *models.Preferences, c *models.Candidate) (models.MatchResult, error) {
	if p == nil {
		return models.MatchResult{}, models.ErrNilPreferences
	}
	if err := models.ValidateCandidate(c); err != nil {
		return models.MatchResult{}, err
	}

	result := models.MatchResult{
		CandidateID:    c.ID,
		CandidateName:  c.Name,
		Categories:     make(map[models.Category]models.CategoryResult, len(e.scorers)),
		MatchedHobbies: []string{},
		MissingHobbies: []string{},
	}
	for _, s := range e.scorers {
		out := s.Score(p, c)
		result.Categories[s.Category()] = out.Result
		result.MatchedHobbies = append(result.MatchedHobbies, out.MatchedHobbies...)
		result.MissingHobbies = append(result.MissingHobbies, out.MissingHobbies...)
		result.DataQuality = append(result.DataQuality, out.DataQuality...)
	}
	result.OverallPercent = e.aggregator.OverallPercent(result.Categories)
	return result, nil
}

// scoreIsolated scores one candidate and turns any error or panic into a
// failed result, so one bad record never aborts a batch.
func (e *Engine) scoreIsolated(p *models.Preferences, c *models.Candidate) (result models.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Candidate scoring panicked",
				zap.String("candidate_id", candidateID(c)),
				zap.Any("panic", r))
			result = failedResult(c, fmt.Errorf("scoring panicked: %v", r))
		}
	}()

	result, err := e.Score(p, c)
	if err != nil {
		e.logger.Warn("Candidate could not be scored",
			zap.String("candidate_id", candidateID(c)),
			zap.Error(err))
		return failedResult(c, err)
	}
	return result
}

func failedResult(c *models.Candidate, err error) models.MatchResult {
	r := models.MatchResult{
		CandidateID:    candidateID(c),
		Categories:     map[models.Category]models.CategoryResult{},
		MatchedHobbies: []string{},
		MissingHobbies: []string{},
		Error:          err.Error(),
	}
	if c != nil {
		r.CandidateName = c.Name
	}
	return r
}

func candidateID(c *models.Candidate) string {
	if c == nil {
		return ""
	}
	return c.ID
}
