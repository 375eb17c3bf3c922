package settings

import (
	"context"
	"errors"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/exceptions"
	"fridgepick.pl/api/internal/routes"
	"fridgepick.pl/api/internal/routes/util"
	"github.com/aws/aws-lambda-go/events"
)

type SettingsService struct {
	data data.SettingsRepository
}

func NewRoute(data data.SettingsRepository) routes.Service {
	return &SettingsService{
		data: data,
	}
}

func (s *SettingsService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/settings":  util.AuthorizedRoute(s.GetSettings),
		"POST:/settings": util.AuthorizedRoute(s.PutSettings),
	}
}

func (s *SettingsService) GetSettings(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := s.data.Get(ctx, util.Username(ctx), data.SETTINGS_ID)
	var notFound *exceptions.NotFoundError
	if errors.As(err, &notFound) {
		return util.SerializeResponseOK(NewSettings, data.DefaultSettings(), nil)
	}
	return util.SerializeResponseOK(NewSettings, item, err)
}

func (s *SettingsService) PutSettings(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeInput[SettingsInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := s.data.CreateWithItemId(ctx, util.Username(ctx), input.ToData(), data.SETTINGS_ID)
	if err == nil {
		return util.SerializeResponseOK(NewSettings, item, nil)
	}
	var conflict *exceptions.ConflictError
	if errors.As(err, &conflict) {
		item, err = s.data.Update(ctx, util.Username(ctx), data.SETTINGS_ID, input.ToData())
		return util.SerializeResponseOK(NewSettings, item, err)
	}
	return events.APIGatewayV2HTTPResponse{}, err
}
