package recipes

import (
	"context"
	"fmt"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/exceptions"
	"fridgepick.pl/api/internal/recommend"
	"fridgepick.pl/api/internal/routes"
	"fridgepick.pl/api/internal/routes/util"
	"github.com/aws/aws-lambda-go/events"
)

// RecipeService serves the shared catalog. Recipes live under the global
// account; only the ingredient view looks at the caller's products.
type RecipeService struct {
	data     data.RecipeRepository
	products data.ProductRepository
}

func NewRoute(data data.RecipeRepository, products data.ProductRepository) routes.Service {
	return &RecipeService{
		data:     data,
		products: products,
	}
}

func (rs *RecipeService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/recipes":                       util.AuthorizedRoute(rs.ListRecipes),
		"GET:/recipes/:recipeId":             util.AuthorizedRoute(rs.GetRecipe),
		"GET:/recipes/:recipeId/ingredients": util.AuthorizedRoute(rs.GetIngredients),
	}
}

func (rs *RecipeService) ListRecipes(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	value, ok := util.QueryParam(event, "category")
	if !ok {
		params, err := util.ListParams(event)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
		items, err := rs.data.List(ctx, data.GLOBAL_ACCOUNT, params)
		return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewRecipe), items, err)
	}
	category, ok := recommend.ParseMealCategory(value)
	if !ok {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(fmt.Sprintf("unknown category %q", value))
	}
	all, err := rs.data.ListAll(ctx, data.GLOBAL_ACCOUNT)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	matching := make([]data.RecipeDTO, 0, len(all))
	for _, recipe := range all {
		if recipe.MealCategory == string(category) {
			matching = append(matching, recipe)
		}
	}
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewRecipe), data.QueryResults[data.RecipeDTO]{Items: matching}, nil)
}

func (rs *RecipeService) GetRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := rs.data.Get(ctx, data.GLOBAL_ACCOUNT, util.RequestParam(ctx, "recipeId"))
	return util.SerializeResponseOK(NewRecipe, item, err)
}

func (rs *RecipeService) GetIngredients(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	recipe, err := rs.data.Get(ctx, data.GLOBAL_ACCOUNT, util.RequestParam(ctx, "recipeId"))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	products, err := rs.products.ListAll(ctx, util.Username(ctx))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	inventory := recommend.NewInventory(data.ToProducts(products))
	view := RecipeIngredients{
		RecipeId:        recipe.SK,
		IngredientsView: recommend.Aggregate(recipe.RecipeIngredients(), inventory),
	}
	return util.SerializeResponseOK(util.Identity[RecipeIngredients], view, nil)
}
