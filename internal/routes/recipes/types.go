package recipes

import (
	"time"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/recommend"
)

type Ingredient struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	IsRequired bool    `json:"isRequired"`
}

type Recipe struct {
	Id                 string       `json:"recipeId"`
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	MealCategory       string       `json:"mealCategory"`
	Instructions       string       `json:"instructions"`
	Ingredients        []Ingredient `json:"ingredients"`
	PrepareTimeMinutes *int         `json:"prepareTimeMinutes,omitempty"`
	Thumbnail          *string      `json:"thumbnail,omitempty"`
	CreateTime         time.Time    `json:"createTime"`
	UpdateTime         time.Time    `json:"updateTime"`
}

func NewRecipe(recipe data.RecipeDTO) Recipe {
	ingredients := make([]Ingredient, len(recipe.Ingredients))
	for i, in := range recipe.Ingredients {
		ingredients[i] = Ingredient{
			Name:       in.Name,
			Quantity:   in.Quantity,
			Unit:       in.Unit,
			IsRequired: in.IsRequired,
		}
	}
	return Recipe{
		Id:                 recipe.SK,
		Name:               recipe.Name,
		Description:        recipe.Description,
		MealCategory:       recipe.MealCategory,
		Instructions:       recipe.Instructions,
		Ingredients:        ingredients,
		PrepareTimeMinutes: recipe.PrepareTimeMinutes,
		Thumbnail:          recipe.Thumbnail,
		CreateTime:         recipe.CreateTime,
		UpdateTime:         recipe.UpdateTime,
	}
}

type RecipeIngredients struct {
	RecipeId string `json:"recipeId"`
	recommend.IngredientsView
}
