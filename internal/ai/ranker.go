// Package ai orders recommendation candidates, either with a hosted model or
// locally.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fridgepick.pl/api/internal/recommend"
)

type Ranked struct {
	RecipeId string `json:"recipeId"`
	Reason   string `json:"reason"`
}

// Ranker picks at most limit candidates, best first.
type Ranker interface {
	Rank(ctx context.Context, products []recommend.Product, candidates []recommend.Recommendation, limit int) ([]Ranked, error)
}

// QuotaError means the provider refused the call for quota reasons.
type QuotaError struct {
	RetryAfter time.Duration
	Cause      error
}

func (qe *QuotaError) Error() string {
	if qe.Cause == nil {
		return fmt.Sprintf("ai quota exhausted, retry after %s", qe.RetryAfter)
	}
	return fmt.Sprintf("ai quota exhausted, retry after %s: %v", qe.RetryAfter, qe.Cause)
}

func (qe *QuotaError) Unwrap() error {
	return qe.Cause
}

func IsQuotaError(err error) (*QuotaError, bool) {
	var qe *QuotaError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}
