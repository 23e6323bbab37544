package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/namematch-console/internal/domain"
	"github.com/samvad-hq/namematch-console/pkg/pairs"
	"golang.org/x/time/rate"
)

// BatchOutcome is the result of comparing a single pair in a batch.
type BatchOutcome struct {
	Pair   pairs.Pair
	Result domain.ComparisonResult
	Err    error
}

// ExpectationMet reports whether the verdict matched the pair's expectation.
// checked is false when the pair has no expectation or the comparison failed.
func (o BatchOutcome) ExpectationMet() (met, checked bool) {
	if o.Err != nil || !o.Pair.HasExpectation() {
		return false, false
	}
	return o.Result.IsMatch == o.Pair.Expect, true
}

// RunBatch compares pairs sequentially, paced to the configured rate.
// onOutcome, when set, is called after every pair. Per-pair failures are
// recorded in the outcome; only a cancelled context stops the run early.
func (s *Session) RunBatch(ctx context.Context, list []pairs.Pair, onOutcome func(BatchOutcome)) ([]BatchOutcome, error) {
	limiter := newLimiter(s.cfg.BatchRatePerSecond)
	start := time.Now()

	outcomes := make([]BatchOutcome, 0, len(list))
	for _, p := range list {
		if err := limiter.Wait(ctx); err != nil {
			return outcomes, fmt.Errorf("batch interrupted after %d of %d pairs: %w", len(outcomes), len(list), err)
		}

		res, err := s.Compare(ctx, p.Name1, p.Name2)
		out := BatchOutcome{Pair: p, Result: res, Err: err}
		outcomes = append(outcomes, out)
		if onOutcome != nil {
			onOutcome(out)
		}
	}

	s.log.InfoObj("batch completed", "batch_meta", map[string]any{
		"pairs":      len(list),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return outcomes, nil
}

// newLimiter returns a limiter for perSecond requests; non-positive means unlimited.
func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}
