package categories

import (
	"context"
	"time"

	"fridgepick.pl/api/internal/cache"
	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/recommend"
	"fridgepick.pl/api/internal/routes"
	"fridgepick.pl/api/internal/routes/util"
	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

const (
	cacheKey = "categories"
	cacheTTL = time.Hour
)

type Categories struct {
	Items []recommend.MealCategory `json:"items"`
}

type CategoryService struct {
	recipes data.RecipeRepository
	cache   cache.Store
	logger  *zap.Logger
}

func NewRoute(recipes data.RecipeRepository, store cache.Store, logger *zap.Logger) routes.Service {
	return &CategoryService{
		recipes: recipes,
		cache:   store,
		logger:  logger,
	}
}

func (cs *CategoryService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/categories": util.AuthorizedRoute(cs.ListCategories),
	}
}

// Distinct returns the known categories used by the recipes, in menu order.
func Distinct(recipes []data.RecipeDTO) []recommend.MealCategory {
	used := make(map[string]bool)
	for _, recipe := range recipes {
		used[recipe.MealCategory] = true
	}
	categories := make([]recommend.MealCategory, 0, len(recommend.MealCategories))
	for _, category := range recommend.MealCategories {
		if used[string(category)] {
			categories = append(categories, category)
		}
	}
	return categories
}

func (cs *CategoryService) ListCategories(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	cached, ok, err := cache.GetJSON[Categories](ctx, cs.cache, cacheKey)
	if err != nil {
		cs.logger.Warn("ignoring cached categories", zap.Error(err))
	}
	if ok {
		return util.SerializeResponseOK(util.Identity[Categories], cached, nil)
	}
	recipes, err := cs.recipes.ListAll(ctx, data.GLOBAL_ACCOUNT)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	categories := Categories{Items: Distinct(recipes)}
	if err := cache.SetJSON(ctx, cs.cache, cacheKey, categories, cacheTTL); err != nil {
		cs.logger.Warn("failed to cache categories", zap.Error(err))
	}
	return util.SerializeResponseOK(util.Identity[Categories], categories, nil)
}
