package settings

import (
	"time"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/dynamodb/services"
	"fridgepick.pl/api/internal/dynamodb/token"
	"fridgepick.pl/api/internal/recommend"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const NAME = "Settings"

func NewSettingService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.SettingsRepository {
	return &services.RepositoryDynamoDBService[data.SettingsDTO, data.SettingsInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           NAME,
		Shim: func(pk, sk string) data.SettingsDTO {
			return data.SettingsDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.SettingsInputDTO, now time.Time, pk, sk string) data.SettingsDTO {
			settings := data.DefaultSettings()
			settings.PK = pk
			settings.SK = sk
			settings.CreateTime = now
			settings.UpdateTime = now
			if input.MealCategory != nil && *input.MealCategory != "" {
				settings.MealCategory = input.MealCategory
			}
			if input.MaxMissingIngredients != nil {
				settings.MaxMissingIngredients = *input.MaxMissingIngredients
			}
			if input.PrioritizeExpiring != nil {
				settings.PrioritizeExpiring = *input.PrioritizeExpiring
			}
			return settings
		},
		OnUpdate: func(input data.SettingsInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
			if input.MealCategory != nil {
				if *input.MealCategory == "" {
					update = update.Remove(expression.Name("mealCategory"))
				} else {
					update = update.Set(expression.Name("mealCategory"), expression.Value(input.MealCategory))
				}
			}
			if input.MaxMissingIngredients != nil {
				max := recommend.DefaultFilterState().WithMaxMissingIngredients(*input.MaxMissingIngredients).MaxMissingIngredients
				update = update.Set(expression.Name("maxMissingIngredients"), expression.Value(max))
			}
			if input.PrioritizeExpiring != nil {
				update = update.Set(expression.Name("prioritizeExpiring"), expression.Value(input.PrioritizeExpiring))
			}
			return update
		},
	}
}
