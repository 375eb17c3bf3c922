package data

import "time"

type ShoppingListItemDTO struct {
	Name      string  `dynamodbav:"name"`
	Unit      string  `dynamodbav:"unit"`
	Quantity  float64 `dynamodbav:"quantity"`
	Completed bool    `dynamodbav:"completed"`
}

type ShoppingListDTO struct {
	PK         string                `dynamodbav:"PK"`
	SK         string                `dynamodbav:"SK"`
	Name       string                `dynamodbav:"name"`
	RecipeId   *string               `dynamodbav:"recipeId"`
	Items      []ShoppingListItemDTO `dynamodbav:"items"`
	ExpiresIn  *int                  `dynamodbav:"expiresIn"`
	CreateTime time.Time             `dynamodbav:"createTime"`
	UpdateTime time.Time             `dynamodbav:"updateTime"`
}

type ShoppingListInputDTO struct {
	Name      *string                `dynamodbav:"name"`
	RecipeId  *string                `dynamodbav:"recipeId"`
	Items     *[]ShoppingListItemDTO `dynamodbav:"items"`
	ExpiresIn *int                   `dynamodbav:"expiresIn"`
}

type ShoppingListDataService interface {
	Repository[ShoppingListDTO, ShoppingListInputDTO]
}
