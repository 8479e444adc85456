package scoring

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"retirement-match-engine/internal/models"
)

// ScoreAll scores every candidate against p with bounded concurrency.
// Results keep the input order. A candidate that fails yields a result with
// Error set; only a nil profile or a cancelled context fails the whole
// batch, and in that case no partial results are returned.
func (e *Engine) ScoreAll(ctx context.Context, p *models.Preferences, candidates []*models.Candidate) ([]models.MatchResult, error) {
	if p == nil {
		return nil, models.ErrNilPreferences
	}
	start := time.Now()

	results := make([]models.MatchResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, c := range candidates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.scoreIsolated(p, c)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debug("Scored candidate batch",
		zap.Int("candidates", len(candidates)),
		zap.Int("concurrency", e.concurrency),
		zap.Duration("elapsed", time.Since(start)))
	return results, nil
}
