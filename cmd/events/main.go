package main

import (
	"context"

	"fridgepick.pl/api/internal/app"
	"fridgepick.pl/api/internal/config"
	"fridgepick.pl/api/internal/events"
	"fridgepick.pl/api/internal/logger"
	lambdaEvents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

type Handler struct {
	Filters []events.EventFilter
	Logger  *zap.Logger
}

// HandleRequest never fails the batch; failed records are logged so the
// stream keeps moving.
func (h *Handler) HandleRequest(ctx context.Context, event lambdaEvents.DynamoDBEvent) error {
	failures := events.Dispatch(ctx, h.Logger, h.Filters, event.Records)
	h.Logger.Info("processed stream batch",
		zap.Int("records", len(event.Records)),
		zap.Int("failures", failures))
	return nil
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync()
	wired, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to wire stream handlers", zap.Error(err))
	}
	handler := &Handler{
		Filters: wired.StreamHandlers(),
		Logger:  log.Named("events"),
	}
	lambda.Start(handler.HandleRequest)
}
