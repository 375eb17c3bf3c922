package data

import (
	"time"

	"fridgepick.pl/api/internal/recommend"
)

type IngredientDTO struct {
	Name       string  `dynamodbav:"name"`
	Quantity   float64 `dynamodbav:"quantity"`
	Unit       string  `dynamodbav:"unit"`
	IsRequired bool    `dynamodbav:"isRequired"`
}

type RecipeDTO struct {
	PK                 string          `dynamodbav:"PK"`
	SK                 string          `dynamodbav:"SK"`
	Name               string          `dynamodbav:"name"`
	Description        string          `dynamodbav:"description"`
	MealCategory       string          `dynamodbav:"mealCategory"`
	Instructions       string          `dynamodbav:"instructions"`
	Ingredients        []IngredientDTO `dynamodbav:"ingredients"`
	PrepareTimeMinutes *int            `dynamodbav:"prepareTimeMinutes"`
	Thumbnail          *string         `dynamodbav:"thumbnail"`
	CreateTime         time.Time       `dynamodbav:"createTime"`
	UpdateTime         time.Time       `dynamodbav:"updateTime"`
}

func (r RecipeDTO) Summary() recommend.RecipeSummary {
	return recommend.RecipeSummary{
		Id:                 r.SK,
		Name:               r.Name,
		Description:        r.Description,
		MealCategory:       recommend.MealCategory(r.MealCategory),
		PrepareTimeMinutes: r.PrepareTimeMinutes,
		Thumbnail:          r.Thumbnail,
	}
}

func (r RecipeDTO) RecipeIngredients() []recommend.Ingredient {
	ingredients := make([]recommend.Ingredient, len(r.Ingredients))
	for i, in := range r.Ingredients {
		ingredients[i] = recommend.Ingredient{
			Name:       in.Name,
			Quantity:   in.Quantity,
			Unit:       recommend.Unit(in.Unit),
			IsRequired: in.IsRequired,
		}
	}
	return ingredients
}

type RecipeInputDTO struct {
	Name               *string          `dynamodbav:"name"`
	Description        *string          `dynamodbav:"description"`
	MealCategory       *string          `dynamodbav:"mealCategory"`
	Instructions       *string          `dynamodbav:"instructions"`
	Ingredients        *[]IngredientDTO `dynamodbav:"ingredients"`
	PrepareTimeMinutes *int             `dynamodbav:"prepareTimeMinutes"`
	Thumbnail          *string          `dynamodbav:"thumbnail"`
}

type RecipeRepository interface {
	Repository[RecipeDTO, RecipeInputDTO]
}
