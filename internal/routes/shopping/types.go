package shopping

import (
	"time"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/recommend"
	"fridgepick.pl/api/internal/routes/util"
	"github.com/aws/aws-sdk-go-v2/aws"
)

type ShoppingListItem struct {
	Name      string  `json:"name" validate:"required"`
	Unit      string  `json:"unit" validate:"omitempty,unit"`
	Quantity  float64 `json:"quantity" validate:"gte=0"`
	Completed bool    `json:"completed"`
}

type ShoppingListInput struct {
	Name      *string             `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Items     *[]ShoppingListItem `json:"items,omitempty" validate:"omitempty,dive"`
	ExpiresIn *time.Time          `json:"expiresIn,omitempty"`
}

func (l *ShoppingListInput) ToData() data.ShoppingListInputDTO {
	var expiresIn *int = nil
	if l.ExpiresIn != nil {
		expiresIn = aws.Int(int(l.ExpiresIn.Unix()))
	}
	return data.ShoppingListInputDTO{
		Name:      l.Name,
		ExpiresIn: expiresIn,
		Items: util.MapOnList(l.Items, func(sli ShoppingListItem) data.ShoppingListItemDTO {
			return data.ShoppingListItemDTO{
				Name:      sli.Name,
				Unit:      sli.Unit,
				Quantity:  sli.Quantity,
				Completed: sli.Completed,
			}
		}),
	}
}

type ShoppingList struct {
	Id         string             `json:"listId"`
	Name       string             `json:"name"`
	RecipeId   *string            `json:"recipeId,omitempty"`
	Items      []ShoppingListItem `json:"items"`
	ExpiresIn  *time.Time         `json:"expiresIn,omitempty"`
	CreateTime time.Time          `json:"createTime"`
	UpdateTime time.Time          `json:"updateTime"`
}

func NewShoppingList(list data.ShoppingListDTO) ShoppingList {
	var expiresIn *time.Time = nil
	if list.ExpiresIn != nil {
		expiresIn = aws.Time(time.Unix(int64(*list.ExpiresIn), 0))
	}
	items := list.Items
	if items == nil {
		items = make([]data.ShoppingListItemDTO, 0)
	}
	return ShoppingList{
		Id:         list.SK,
		Name:       list.Name,
		RecipeId:   list.RecipeId,
		CreateTime: list.CreateTime,
		UpdateTime: list.UpdateTime,
		ExpiresIn:  expiresIn,
		Items: *util.MapOnList(&items, func(slid data.ShoppingListItemDTO) ShoppingListItem {
			return ShoppingListItem{
				Name:      slid.Name,
				Unit:      slid.Unit,
				Quantity:  slid.Quantity,
				Completed: slid.Completed,
			}
		}),
	}
}

// ShortfallItems lists what is left to buy for the required ingredients the
// user does not fully hold.
func ShortfallItems(view recommend.IngredientsView) []data.ShoppingListItemDTO {
	items := make([]data.ShoppingListItemDTO, 0, len(view.Required))
	for _, ingredient := range view.Required {
		shortfall := ingredient.Shortfall()
		if shortfall <= 0 {
			continue
		}
		items = append(items, data.ShoppingListItemDTO{
			Name:     ingredient.Name,
			Unit:     string(ingredient.Unit),
			Quantity: shortfall,
		})
	}
	return items
}
