// Package app wires the repositories, caches and rankers behind every entry
// point.
package app

import (
	"context"
	"fmt"

	"fridgepick.pl/api/internal/ai"
	"fridgepick.pl/api/internal/cache"
	"fridgepick.pl/api/internal/config"
	"fridgepick.pl/api/internal/data"
	auditData "fridgepick.pl/api/internal/dynamodb/audits"
	productData "fridgepick.pl/api/internal/dynamodb/products"
	recipeData "fridgepick.pl/api/internal/dynamodb/recipes"
	settingsData "fridgepick.pl/api/internal/dynamodb/settings"
	shoppingData "fridgepick.pl/api/internal/dynamodb/shopping"
	subscriberData "fridgepick.pl/api/internal/dynamodb/subscriptions"
	"fridgepick.pl/api/internal/dynamodb/token"
	"fridgepick.pl/api/internal/events"
	"fridgepick.pl/api/internal/generator"
	"fridgepick.pl/api/internal/quota"
	"fridgepick.pl/api/internal/routes"
	"fridgepick.pl/api/internal/routes/audits"
	"fridgepick.pl/api/internal/routes/categories"
	"fridgepick.pl/api/internal/routes/products"
	"fridgepick.pl/api/internal/routes/recipes"
	"fridgepick.pl/api/internal/routes/recommendations"
	"fridgepick.pl/api/internal/routes/settings"
	"fridgepick.pl/api/internal/routes/shopping"
	"fridgepick.pl/api/internal/routes/subscriptions"
	"fridgepick.pl/api/internal/sns/services"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

type App struct {
	Config        *config.Config
	Logger        *zap.Logger
	DynamoDB      *dynamodb.Client
	Cache         cache.Store
	Products      data.ProductRepository
	Recipes       data.RecipeRepository
	Settings      data.SettingsRepository
	Shopping      data.ShoppingListDataService
	Audits        data.AuditRepository
	Subscriptions data.SubscriptionDataService
	Notifier      *services.NotificationSNSService
	Generator     *generator.Service
}

func loadAWS(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	options := []func(*awsConfig.LoadOptions) error{}
	if cfg.DynamoDBEndpoint != "" {
		options = append(options, awsConfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, opts ...interface{}) (aws.Endpoint, error) {
				if service == dynamodb.ServiceID {
					return aws.Endpoint{URL: cfg.DynamoDBEndpoint}, nil
				}
				return aws.Endpoint{}, &aws.EndpointNotFoundError{}
			})))
	}
	return awsConfig.LoadDefaultConfig(ctx, options...)
}

// NewRanker ranks with Gemini when an API key is configured, falling back to
// the local ordering on provider failures.
func NewRanker(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ai.Ranker, error) {
	if !cfg.AIEnabled() {
		logger.Info("no gemini api key, ranking recommendations locally")
		return ai.LocalRanker{}, nil
	}
	gemini, err := ai.NewGeminiRanker(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AIRequestsPerMinute, logger)
	if err != nil {
		return nil, err
	}
	return &ai.FallbackRanker{
		Primary:   gemini,
		Secondary: ai.LocalRanker{},
		Logger:    logger,
	}, nil
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	awsCfg, err := loadAWS(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	client := dynamodb.NewFromConfig(awsCfg)
	store, err := cache.NewStore(cfg, client)
	if err != nil {
		return nil, err
	}
	ranker, err := NewRanker(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	marshaler := token.NewGCM(cfg.TokenSecret)
	app := &App{
		Config:        cfg,
		Logger:        logger,
		DynamoDB:      client,
		Cache:         store,
		Products:      productData.NewProductService(cfg.TableName, client, marshaler),
		Recipes:       recipeData.NewRecipeService(cfg.TableName, client, marshaler),
		Settings:      settingsData.NewSettingService(cfg.TableName, client, marshaler),
		Shopping:      shoppingData.NewShoppingListService(cfg.TableName, client, marshaler),
		Audits:        auditData.NewAuditService(cfg.TableName, client, marshaler),
		Subscriptions: subscriberData.NewSubscriptionService(cfg.TableName, client, marshaler),
		Notifier:      &services.NotificationSNSService{
			Sns:      sns.NewFromConfig(awsCfg),
			TopicArn: cfg.TopicArn,
		},
	}
	app.Generator = &generator.Service{
		Products:       app.Products,
		Recipes:        app.Recipes,
		Cache:          store,
		Quota:          quota.NewLimiter(store, cfg.RefreshLimit, cfg.RefreshWindow),
		Ranker:         ranker,
		Local:          ai.LocalRanker{},
		Logger:         logger.Named("generator"),
		Limit:          cfg.RecommendationLimit,
		TTL:            cfg.RecommendationTTL,
		ExpiringWithin: cfg.ExpiringWithin,
	}
	return app, nil
}

func (a *App) Router() *routes.Router {
	router := routes.NewRouter(
		products.NewRoute(a.Products),
		recipes.NewRoute(a.Recipes, a.Products),
		categories.NewRoute(a.Recipes, a.Cache, a.Logger.Named("categories")),
		recommendations.NewRoute(a.Generator, a.Settings),
		shopping.NewRoute(a.Shopping, a.Recipes, a.Products),
		settings.NewRoute(a.Settings),
		audits.NewRoute(a.Audits),
		subscriptions.NewRoute(a.Subscriptions, a.Notifier),
	)
	router.Logger = a.Logger.Named("router")
	return router
}

// StreamHandlers are applied, in order, to every table stream record.
func (a *App) StreamHandlers() []events.EventFilter {
	return []events.EventFilter{
		events.DefaultAuditHandler(a.Audits),
		&events.InvalidateRecommendationsHandler{Recommendations: a.Generator},
		events.NewExpiringProductHandler(a.Notifier, a.Config.ExpiringWithin),
	}
}
