package main

import (
	"context"

	"fridgepick.pl/api/internal/app"
	"fridgepick.pl/api/internal/config"
	"fridgepick.pl/api/internal/logger"
	"fridgepick.pl/api/internal/routes"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

type App struct {
	Router *routes.Router
}

func NewApp(ctx context.Context) (*App, *zap.Logger) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	wired, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to wire the api", zap.Error(err))
	}
	return &App{Router: wired.Router()}, log
}

func (a *App) HandleRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return a.Router.Invoke(request, ctx), nil
}

func main() {
	api, log := NewApp(context.Background())
	defer log.Sync()
	lambda.Start(api.HandleRequest)
}
