package shopping

import (
	"context"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/exceptions"
	"fridgepick.pl/api/internal/recommend"
	"fridgepick.pl/api/internal/routes"
	"fridgepick.pl/api/internal/routes/util"
	"github.com/aws/aws-lambda-go/events"
)

type ShoppingListService struct {
	data     data.ShoppingListDataService
	recipes  data.RecipeRepository
	products data.ProductRepository
}

func NewRoute(data data.ShoppingListDataService, recipes data.RecipeRepository, products data.ProductRepository) routes.Service {
	return &ShoppingListService{
		data:     data,
		recipes:  recipes,
		products: products,
	}
}

func (sl *ShoppingListService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/lists":                    util.AuthorizedRoute(sl.ListShoppingLists),
		"GET:/lists/:listId":            util.AuthorizedRoute(sl.GetShoppingList),
		"POST:/lists":                   util.AuthorizedRoute(sl.CreateShoppingList),
		"POST:/lists/recipes/:recipeId": util.AuthorizedRoute(sl.CreateRecipeShoppingList),
		"PUT:/lists/:listId":            util.AuthorizedRoute(sl.UpdateShoppingList),
		"DELETE:/lists/:listId":         util.AuthorizedRoute(sl.DeleteShoppingList),
	}
}

func (sl *ShoppingListService) ListShoppingLists(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList(sl.data, NewShoppingList, event, ctx)
}

func (sl *ShoppingListService) GetShoppingList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := sl.data.Get(ctx, util.Username(ctx), util.RequestParam(ctx, "listId"))
	return util.SerializeResponseOK(NewShoppingList, item, err)
}

func (sl *ShoppingListService) CreateShoppingList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeInput[ShoppingListInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if input.Name == nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("name is required")
	}
	created, err := sl.data.Create(ctx, util.Username(ctx), input.ToData())
	return util.SerializeResponseOK(NewShoppingList, created, err)
}

// CreateRecipeShoppingList writes down what the caller still has to buy to
// cook the recipe.
func (sl *ShoppingListService) CreateRecipeShoppingList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	recipe, err := sl.recipes.Get(ctx, data.GLOBAL_ACCOUNT, util.RequestParam(ctx, "recipeId"))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	products, err := sl.products.ListAll(ctx, util.Username(ctx))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	view := recommend.Aggregate(recipe.RecipeIngredients(), recommend.NewInventory(data.ToProducts(products)))
	items := ShortfallItems(view)
	created, err := sl.data.Create(ctx, util.Username(ctx), data.ShoppingListInputDTO{
		Name:     &recipe.Name,
		RecipeId: &recipe.SK,
		Items:    &items,
	})
	return util.SerializeResponseOK(NewShoppingList, created, err)
}

func (sl *ShoppingListService) UpdateShoppingList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeInput[ShoppingListInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := sl.data.Update(ctx, util.Username(ctx), util.RequestParam(ctx, "listId"), input.ToData())
	return util.SerializeResponseOK(NewShoppingList, item, err)
}

func (sl *ShoppingListService) DeleteShoppingList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := sl.data.Delete(ctx, util.Username(ctx), util.RequestParam(ctx, "listId"))
	return util.SerializeResponseNoContent(err)
}
