package generator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fridgepick.pl/api/internal/ai"
	"fridgepick.pl/api/internal/cache"
	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/exceptions"
	"fridgepick.pl/api/internal/generator"
	"fridgepick.pl/api/internal/quota"
	"fridgepick.pl/api/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// listRepository serves fixed items from ListAll; the rest is unused here.
type listRepository[T any, I any] struct {
	items map[string][]T
}

func (r *listRepository[T, I]) List(ctx context.Context, accountId string, params data.QueryParams) (data.QueryResults[T], error) {
	return data.QueryResults[T]{Items: r.items[accountId]}, nil
}

func (r *listRepository[T, I]) ListAll(ctx context.Context, accountId string) ([]T, error) {
	return r.items[accountId], nil
}

func (r *listRepository[T, I]) Get(ctx context.Context, accountId string, itemId string) (T, error) {
	var zero T
	return zero, exceptions.NotFound("item", itemId)
}

func (r *listRepository[T, I]) Create(ctx context.Context, accountId string, input I) (T, error) {
	var zero T
	return zero, errors.New("not supported")
}

func (r *listRepository[T, I]) CreateWithItemId(ctx context.Context, accountId string, input I, itemId string) (T, error) {
	var zero T
	return zero, errors.New("not supported")
}

func (r *listRepository[T, I]) Update(ctx context.Context, accountId string, itemId string, input I) (T, error) {
	var zero T
	return zero, errors.New("not supported")
}

func (r *listRepository[T, I]) Delete(ctx context.Context, accountId string, itemId string) error {
	return errors.New("not supported")
}

type countingRanker struct {
	inner ai.Ranker
	err   error
	calls int
}

func (c *countingRanker) Rank(ctx context.Context, products []recommend.Product, candidates []recommend.Recommendation, limit int) ([]ai.Ranked, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.inner.Rank(ctx, products, candidates, limit)
}

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func recipe(id string, name string, ingredients ...data.IngredientDTO) data.RecipeDTO {
	return data.RecipeDTO{SK: id, Name: name, MealCategory: string(recommend.Breakfast), Ingredients: ingredients}
}

func required(name string, quantity float64, unit recommend.Unit) data.IngredientDTO {
	return data.IngredientDTO{Name: name, Quantity: quantity, Unit: string(unit), IsRequired: true}
}

func fixture(ranker *countingRanker, local *countingRanker, refreshes int) (*generator.Service, *cache.MemoryStore) {
	expires := now.Add(24 * time.Hour)
	products := &listRepository[data.ProductDTO, data.ProductInputDTO]{items: map[string][]data.ProductDTO{
		"ala": {
			{Name: "Mleko", Quantity: 1, Unit: "l", ExpiresAt: &expires},
			{Name: "Płatki owsiane", Quantity: 500, Unit: "g"},
			{Name: "Jajka", Quantity: 2, Unit: "szt"},
		},
	}}
	recipes := &listRepository[data.RecipeDTO, data.RecipeInputDTO]{items: map[string][]data.RecipeDTO{
		data.GLOBAL_ACCOUNT: {
			recipe("owsianka", "Owsianka", required("Mleko", 250, recommend.Milliliter), required("Płatki owsiane", 50, recommend.Gram)),
			recipe("omlet", "Omlet", required("Jajka", 3, recommend.Piece), required("Mleko", 50, recommend.Milliliter)),
			recipe("tort", "Tort",
				required("Mąka", 1, recommend.Kilogram), required("Cukier", 1, recommend.Kilogram),
				required("Masło", 200, recommend.Gram), required("Śmietana", 500, recommend.Milliliter),
				required("Czekolada", 200, recommend.Gram), required("Truskawki", 500, recommend.Gram)),
		},
	}}
	clock := func() time.Time { return now }
	store := cache.NewMemoryStoreWithClock(clock)
	service := (&generator.Service{
		Products:       products,
		Recipes:        recipes,
		Cache:          store,
		Quota:          quota.NewLimiter(store, refreshes, time.Hour).WithClock(clock),
		Ranker:         ranker,
		Local:          local,
		Logger:         zap.NewNop(),
		Limit:          10,
		TTL:            time.Hour,
		ExpiringWithin: 72 * time.Hour,
	}).WithClock(clock)
	return service, store
}

func TestCandidates(t *testing.T) {
	products := []recommend.Product{{Name: "Jajka", Quantity: 2, Unit: recommend.Piece}}
	recipes := []data.RecipeDTO{
		recipe("omlet", "Omlet", required("Jajka", 2, recommend.Piece)),
		recipe("nalesniki", "Naleśniki", required("Jajka", 1, recommend.Piece), required("Mąka", 200, recommend.Gram), required("Mleko", 500, recommend.Milliliter)),
	}
	candidates := generator.Candidates(products, recipes, now, time.Hour, 1)
	require.Len(t, candidates, 1)
	assert.Equal(t, "omlet", candidates[0].Recipe.Id)
	assert.Equal(t, recommend.Ideal, candidates[0].MatchLevel)
	assert.Equal(t, 1.0, candidates[0].MatchScore)

	candidates = generator.Candidates(products, recipes, now, time.Hour, 5)
	require.Len(t, candidates, 2)
	assert.Equal(t, recommend.NeedsShopping, candidates[1].MatchLevel)
	assert.Equal(t, []string{"Mąka", "Mleko"}, candidates[1].MissingIngredients)
}

func TestOrder(t *testing.T) {
	candidates := []recommend.Recommendation{
		{Recipe: recommend.RecipeSummary{Id: "a"}, MatchScore: 0.5},
		{Recipe: recommend.RecipeSummary{Id: "b"}, MatchScore: 1},
	}
	items := generator.Order(candidates, []ai.Ranked{
		{RecipeId: "b", Reason: "najlepszy"},
		{RecipeId: "zmyslony"},
		{RecipeId: "b"},
		{RecipeId: "a"},
	}, 5)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].Recipe.Id)
	assert.Equal(t, "najlepszy", items[0].Reason)
	assert.Equal(t, 1.0, items[0].MatchScore)
	assert.Equal(t, "a", items[1].Recipe.Id)
}

func TestCurrentCachesTheSet(t *testing.T) {
	ctx := context.Background()
	ranker := &countingRanker{inner: ai.LocalRanker{}}
	local := &countingRanker{inner: ai.LocalRanker{}}
	service, _ := fixture(ranker, local, 5)

	set, err := service.Current(ctx, "ala")
	require.NoError(t, err)
	require.Len(t, set.Items, 2, "recipes missing more than five ingredients are not candidates")
	assert.Equal(t, "owsianka", set.Items[0].Recipe.Id)
	assert.Equal(t, []string{"Mleko"}, set.Items[0].UsingExpiringIngredients)
	assert.Equal(t, recommend.NearIdeal, set.Items[1].MatchLevel)
	assert.Equal(t, now, set.GeneratedAt)

	again, err := service.Current(ctx, "ala")
	require.NoError(t, err)
	assert.Equal(t, set.Items, again.Items)
	assert.Equal(t, 1, ranker.calls)
	assert.Equal(t, 0, local.calls)

	require.NoError(t, service.Invalidate(ctx, "ala"))
	_, err = service.Current(ctx, "ala")
	require.NoError(t, err)
	assert.Equal(t, 2, ranker.calls)
}

func TestCurrentWithoutQuotaRanksLocally(t *testing.T) {
	ctx := context.Background()
	ranker := &countingRanker{inner: ai.LocalRanker{}}
	local := &countingRanker{inner: ai.LocalRanker{}}
	service, _ := fixture(ranker, local, 1)

	_, limit, err := service.Refresh(ctx, "ala")
	require.NoError(t, err)
	require.False(t, limit.IsRateLimited)
	require.NoError(t, service.Invalidate(ctx, "ala"))

	set, err := service.Current(ctx, "ala")
	require.NoError(t, err)
	assert.Len(t, set.Items, 2)
	assert.Equal(t, 1, ranker.calls)
	assert.Equal(t, 1, local.calls)
}

func TestCurrentDoesNotSpendRefreshes(t *testing.T) {
	ctx := context.Background()
	ranker := &countingRanker{inner: ai.LocalRanker{}}
	service, _ := fixture(ranker, &countingRanker{inner: ai.LocalRanker{}}, 1)

	for i := 0; i < 5; i++ {
		_, err := service.Current(ctx, "ala")
		require.NoError(t, err)
		require.NoError(t, service.Invalidate(ctx, "ala"))
	}
	assert.Equal(t, 5, ranker.calls)

	left, err := service.RefreshQuota(ctx, "ala")
	require.NoError(t, err)
	assert.True(t, left.Allowed)
	assert.Equal(t, 1, left.Remaining)

	_, limit, err := service.Refresh(ctx, "ala")
	require.NoError(t, err)
	assert.False(t, limit.IsRateLimited, "product edits do not use up manual refreshes")

	left, err = service.RefreshQuota(ctx, "ala")
	require.NoError(t, err)
	assert.False(t, left.Allowed)
	assert.Zero(t, left.Remaining)
	assert.Equal(t, now.Add(time.Hour), left.ResetAt)
}

func TestCurrentFallsBackOnProviderQuota(t *testing.T) {
	ranker := &countingRanker{err: &ai.QuotaError{RetryAfter: time.Minute}}
	local := &countingRanker{inner: ai.LocalRanker{}}
	service, _ := fixture(ranker, local, 5)

	set, err := service.Current(context.Background(), "ala")
	require.NoError(t, err)
	assert.Len(t, set.Items, 2)
	assert.Equal(t, 1, local.calls)
}

func TestRefreshRateLimited(t *testing.T) {
	ctx := context.Background()
	ranker := &countingRanker{inner: ai.LocalRanker{}}
	service, _ := fixture(ranker, &countingRanker{inner: ai.LocalRanker{}}, 2)

	for i := 0; i < 2; i++ {
		set, limit, err := service.Refresh(ctx, "ala")
		require.NoError(t, err)
		assert.False(t, limit.IsRateLimited)
		assert.Len(t, set.Items, 2)
	}

	_, limit, err := service.Refresh(ctx, "ala")
	require.NoError(t, err)
	require.True(t, limit.IsRateLimited)
	assert.Equal(t, now.Add(time.Hour).UnixMilli(), *limit.ResetTime)
	assert.Equal(t, 2, ranker.calls)
}

func TestRefreshProviderQuota(t *testing.T) {
	ranker := &countingRanker{err: &ai.QuotaError{RetryAfter: 30 * time.Second}}
	service, _ := fixture(ranker, &countingRanker{inner: ai.LocalRanker{}}, 5)

	_, limit, err := service.Refresh(context.Background(), "ala")
	require.NoError(t, err)
	require.True(t, limit.IsRateLimited)
	assert.Equal(t, now.Add(30*time.Second), limit.ResetAt().UTC())
}

func TestRefreshError(t *testing.T) {
	ranker := &countingRanker{err: errors.New("boom")}
	service, _ := fixture(ranker, &countingRanker{inner: ai.LocalRanker{}}, 5)

	_, limit, err := service.Refresh(context.Background(), "ala")
	assert.Error(t, err)
	assert.False(t, limit.IsRateLimited)
}

func TestRefresherDrivesController(t *testing.T) {
	ctx := context.Background()
	service, _ := fixture(&countingRanker{inner: ai.LocalRanker{}}, &countingRanker{inner: ai.LocalRanker{}}, 1)
	controller := recommend.NewRefreshController(service.Refresher("ala"), recommend.WithClock(func() time.Time { return now }))

	started, err := controller.Refresh(ctx)
	require.NoError(t, err)
	assert.True(t, started)
	assert.Len(t, controller.Recommendations(), 2)

	_, err = controller.Refresh(ctx)
	require.NoError(t, err)
	snapshot := controller.Snapshot()
	assert.Equal(t, recommend.RateLimited, snapshot.State)
	assert.Equal(t, "60m 0s", snapshot.Countdown())
}
