package recipes

import (
	"time"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/dynamodb/services"
	"fridgepick.pl/api/internal/dynamodb/token"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const NAME = "Recipe"

// NewRecipeService binds the recipe catalog. Catalog entries live under
// data.GLOBAL_ACCOUNT.
func NewRecipeService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.RecipeRepository {
	return &services.RepositoryDynamoDBService[data.RecipeDTO, data.RecipeInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           NAME,
		Shim: func(pk, sk string) data.RecipeDTO {
			return data.RecipeDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.RecipeInputDTO, now time.Time, pk, sk string) data.RecipeDTO {
			recipe := data.RecipeDTO{
				PK:                 pk,
				SK:                 sk,
				Name:               *input.Name,
				MealCategory:       *input.MealCategory,
				Ingredients:        []data.IngredientDTO{},
				PrepareTimeMinutes: input.PrepareTimeMinutes,
				Thumbnail:          input.Thumbnail,
				CreateTime:         now,
				UpdateTime:         now,
			}
			if input.Description != nil {
				recipe.Description = *input.Description
			}
			if input.Instructions != nil {
				recipe.Instructions = *input.Instructions
			}
			if input.Ingredients != nil {
				recipe.Ingredients = *input.Ingredients
			}
			return recipe
		},
		OnUpdate: func(input data.RecipeInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
			if input.Name != nil {
				update = update.Set(expression.Name("name"), expression.Value(input.Name))
			}
			if input.Description != nil {
				update = update.Set(expression.Name("description"), expression.Value(input.Description))
			}
			if input.MealCategory != nil {
				update = update.Set(expression.Name("mealCategory"), expression.Value(input.MealCategory))
			}
			if input.Instructions != nil {
				update = update.Set(expression.Name("instructions"), expression.Value(input.Instructions))
			}
			if input.Ingredients != nil {
				update = update.Set(expression.Name("ingredients"), expression.Value(input.Ingredients))
			}
			if input.PrepareTimeMinutes != nil {
				update = update.Set(expression.Name("prepareTimeMinutes"), expression.Value(input.PrepareTimeMinutes))
			}
			if input.Thumbnail != nil {
				update = update.Set(expression.Name("thumbnail"), expression.Value(input.Thumbnail))
			}
			return update
		},
	}
}
