package recommendations

import (
	"context"
	"errors"
	"fmt"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/exceptions"
	"fridgepick.pl/api/internal/generator"
	"fridgepick.pl/api/internal/quota"
	"fridgepick.pl/api/internal/recommend"
	"fridgepick.pl/api/internal/routes"
	"fridgepick.pl/api/internal/routes/util"
	"github.com/aws/aws-lambda-go/events"
)

type Generator interface {
	Current(ctx context.Context, account string) (generator.RecommendationSet, error)
	Refresh(ctx context.Context, account string) (generator.RecommendationSet, recommend.RateLimit, error)
	RefreshQuota(ctx context.Context, account string) (quota.Decision, error)
}

type RecommendationService struct {
	generator Generator
	settings  data.SettingsRepository
}

func NewRoute(generator Generator, settings data.SettingsRepository) routes.Service {
	return &RecommendationService{
		generator: generator,
		settings:  settings,
	}
}

func (rs *RecommendationService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/recommendations":          util.AuthorizedRoute(rs.GetRecommendations),
		"POST:/recommendations/refresh": util.AuthorizedRoute(rs.RefreshRecommendations),
	}
}

func (rs *RecommendationService) storedFilters(ctx context.Context) (recommend.FilterState, error) {
	settings, err := rs.settings.Get(ctx, util.Username(ctx), data.SETTINGS_ID)
	var notFound *exceptions.NotFoundError
	if errors.As(err, &notFound) {
		return recommend.DefaultFilterState(), nil
	}
	if err != nil {
		return recommend.FilterState{}, err
	}
	return settings.FilterState(), nil
}

// requestFilters overrides the stored filters with the query parameters.
// A category of "all" clears the stored category.
func requestFilters(event events.APIGatewayV2HTTPRequest, state recommend.FilterState) (recommend.FilterState, recommend.Tab, error) {
	if value, ok := util.QueryParam(event, "category"); ok {
		if value == string(recommend.TabAll) {
			state = state.WithMealCategory(nil)
		} else {
			category, ok := recommend.ParseMealCategory(value)
			if !ok {
				return state, "", exceptions.InvalidInput(fmt.Sprintf("unknown category %q", value))
			}
			state = state.WithMealCategory(&category)
		}
	}
	maxMissing, err := util.QueryInt(event, "maxMissing")
	if err != nil {
		return state, "", err
	}
	if maxMissing != nil {
		state = state.WithMaxMissingIngredients(*maxMissing)
	}
	prioritize, err := util.QueryBool(event, "prioritizeExpiring")
	if err != nil {
		return state, "", err
	}
	if prioritize != nil {
		state = state.WithPrioritizeExpiring(*prioritize)
	}
	value, _ := util.QueryParam(event, "tab")
	tab, ok := recommend.ParseTab(value)
	if !ok {
		return state, "", exceptions.InvalidInput(fmt.Sprintf("unknown tab %q", value))
	}
	return state, tab, nil
}

func (rs *RecommendationService) GetRecommendations(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	stored, err := rs.storedFilters(ctx)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	state, tab, err := requestFilters(event, stored)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	set, err := rs.generator.Current(ctx, util.Username(ctx))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	decision, err := rs.generator.RefreshQuota(ctx, util.Username(ctx))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.SerializeResponseOK(util.Identity[Recommendations], Recommendations{
		GeneratedAt:         set.GeneratedAt,
		Refreshes:           NewRefreshes(decision),
		RecommendationsView: recommend.View(set.Items, state, tab),
	}, nil)
}

func (rs *RecommendationService) RefreshRecommendations(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	set, limit, err := rs.generator.Refresh(ctx, util.Username(ctx))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if limit.IsRateLimited {
		return events.APIGatewayV2HTTPResponse{}, exceptions.TooManyRequests(limit.ResetAt())
	}
	return util.SerializeResponseOK(util.Identity[RefreshResult], RefreshResult{
		GeneratedAt:     set.GeneratedAt,
		Recommendations: set.Items,
		RateLimit:       limit,
	}, nil)
}
