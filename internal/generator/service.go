// Package generator produces and caches the recommendation set of an
// account.
package generator

import (
	"context"
	"fmt"
	"time"

	"fridgepick.pl/api/internal/ai"
	"fridgepick.pl/api/internal/cache"
	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/quota"
	"fridgepick.pl/api/internal/recommend"
	"go.uber.org/zap"
)

type RecommendationSet struct {
	GeneratedAt time.Time                  `json:"generatedAt"`
	Items       []recommend.Recommendation `json:"items"`
}

type Service struct {
	Products data.ProductRepository
	Recipes  data.RecipeRepository
	Cache    cache.Store
	Quota    *quota.Limiter
	Ranker   ai.Ranker
	// Local ranks without spending quota when the account has none left.
	Local          ai.Ranker
	Logger         *zap.Logger
	Limit          int
	TTL            time.Duration
	ExpiringWithin time.Duration
	now            func() time.Time
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func cacheKey(account string) string {
	return fmt.Sprintf("recommendations:%s", account)
}

func (s *Service) generate(ctx context.Context, account string, ranker ai.Ranker) (RecommendationSet, error) {
	productItems, err := s.Products.ListAll(ctx, account)
	if err != nil {
		return RecommendationSet{}, fmt.Errorf("loading products: %w", err)
	}
	recipes, err := s.Recipes.ListAll(ctx, data.GLOBAL_ACCOUNT)
	if err != nil {
		return RecommendationSet{}, fmt.Errorf("loading recipes: %w", err)
	}
	now := s.clock()
	products := data.ToProducts(productItems)
	candidates := Candidates(products, recipes, now, s.ExpiringWithin, recommend.MaxMissingIngredients)
	ranked, err := ranker.Rank(ctx, products, candidates, s.Limit)
	if err != nil {
		return RecommendationSet{}, err
	}
	set := RecommendationSet{
		GeneratedAt: now,
		Items:       Order(candidates, ranked, s.Limit),
	}
	if err := cache.SetJSON(ctx, s.Cache, cacheKey(account), set, s.TTL); err != nil {
		return RecommendationSet{}, err
	}
	s.Logger.Debug("generated recommendations",
		zap.String("account", account),
		zap.Int("candidates", len(candidates)),
		zap.Int("items", len(set.Items)))
	return set, nil
}

// Current returns the cached set, generating one on a miss. A miss never
// spends the account's refresh quota: it ranks with the configured ranker
// while the account still has refreshes left and locally otherwise, so
// inventory edits cannot use up manual refreshes and reading never answers
// with a rate limit.
func (s *Service) Current(ctx context.Context, account string) (RecommendationSet, error) {
	set, ok, err := cache.GetJSON[RecommendationSet](ctx, s.Cache, cacheKey(account))
	if err != nil {
		s.Logger.Warn("ignoring unreadable cached recommendations", zap.String("account", account), zap.Error(err))
	}
	if ok {
		return set, nil
	}
	decision, err := s.Quota.Peek(ctx, account)
	if err != nil {
		return RecommendationSet{}, err
	}
	if !decision.Allowed {
		return s.generate(ctx, account, s.Local)
	}
	set, err = s.generate(ctx, account, s.Ranker)
	if _, limited := ai.IsQuotaError(err); limited {
		return s.generate(ctx, account, s.Local)
	}
	return set, err
}

// RefreshQuota reports the manual refreshes left without spending one.
func (s *Service) RefreshQuota(ctx context.Context, account string) (quota.Decision, error) {
	return s.Quota.Peek(ctx, account)
}

// Refresh regenerates the set. When the account's quota or the provider's
// quota is exhausted the set is left alone and the limit is returned.
func (s *Service) Refresh(ctx context.Context, account string) (RecommendationSet, recommend.RateLimit, error) {
	decision, err := s.Quota.Allow(ctx, account)
	if err != nil {
		return RecommendationSet{}, recommend.RateLimit{}, err
	}
	if !decision.Allowed {
		return RecommendationSet{}, recommend.NewRateLimit(decision.ResetAt), nil
	}
	set, err := s.generate(ctx, account, s.Ranker)
	if qe, limited := ai.IsQuotaError(err); limited {
		s.Logger.Info("ai quota exhausted", zap.String("account", account), zap.Duration("retryAfter", qe.RetryAfter))
		return RecommendationSet{}, recommend.NewRateLimit(s.clock().Add(qe.RetryAfter)), nil
	}
	if err != nil {
		return RecommendationSet{}, recommend.RateLimit{}, err
	}
	return set, recommend.RateLimit{}, nil
}

func (s *Service) Invalidate(ctx context.Context, account string) error {
	return s.Cache.Delete(ctx, cacheKey(account))
}

// Refresher binds the service to one account for the refresh controller.
func (s *Service) Refresher(account string) recommend.Refresher {
	return recommend.RefresherFunc(func(ctx context.Context) ([]recommend.Recommendation, recommend.RateLimit, error) {
		set, limit, err := s.Refresh(ctx, account)
		return set.Items, limit, err
	})
}
