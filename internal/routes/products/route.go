package products

import (
	"context"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/routes"
	"fridgepick.pl/api/internal/routes/util"
	"github.com/aws/aws-lambda-go/events"
)

type ProductService struct {
	data data.ProductRepository
}

func NewRoute(data data.ProductRepository) routes.Service {
	return &ProductService{
		data: data,
	}
}

func (ps *ProductService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/products":               util.AuthorizedRoute(ps.ListProducts),
		"GET:/products/:productId":    util.AuthorizedRoute(ps.GetProduct),
		"POST:/products":              util.AuthorizedRoute(ps.CreateProduct),
		"PUT:/products/:productId":    util.AuthorizedRoute(ps.UpdateProduct),
		"DELETE:/products/:productId": util.AuthorizedRoute(ps.DeleteProduct),
	}
}

func (ps *ProductService) ListProducts(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList(ps.data, NewProduct, event, ctx)
}

func (ps *ProductService) GetProduct(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := ps.data.Get(ctx, util.Username(ctx), util.RequestParam(ctx, "productId"))
	return util.SerializeResponseOK(NewProduct, item, err)
}

func (ps *ProductService) CreateProduct(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeInput[CreateProductInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := ps.data.Create(ctx, util.Username(ctx), input.ToData())
	return util.SerializeResponseOK(NewProduct, created, err)
}

func (ps *ProductService) UpdateProduct(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeInput[ProductInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := ps.data.Update(ctx, util.Username(ctx), util.RequestParam(ctx, "productId"), input.ToData())
	return util.SerializeResponseOK(NewProduct, item, err)
}

func (ps *ProductService) DeleteProduct(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := ps.data.Delete(ctx, util.Username(ctx), util.RequestParam(ctx, "productId"))
	return util.SerializeResponseNoContent(err)
}
