package ai

import (
	"context"

	"fridgepick.pl/api/internal/recommend"
	"go.uber.org/zap"
)

// FallbackRanker uses Secondary whenever Primary fails for a reason other
// than quota. Quota errors are returned so callers can report the limit.
type FallbackRanker struct {
	Primary   Ranker
	Secondary Ranker
	Logger    *zap.Logger
}

func (fr *FallbackRanker) Rank(ctx context.Context, products []recommend.Product, candidates []recommend.Recommendation, limit int) ([]Ranked, error) {
	ranked, err := fr.Primary.Rank(ctx, products, candidates, limit)
	if err == nil {
		return ranked, nil
	}
	if _, ok := IsQuotaError(err); ok {
		return nil, err
	}
	if fr.Logger != nil {
		fr.Logger.Warn("primary ranker failed, ranking locally", zap.Error(err))
	}
	return fr.Secondary.Rank(ctx, products, candidates, limit)
}
