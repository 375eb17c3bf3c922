package recommend

type IngredientAvailability struct {
	Ingredient
	UserQuantity float64            `json:"userQuantity"`
	Status       AvailabilityStatus `json:"status"`
}

type IngredientsView struct {
	Required       []IngredientAvailability `json:"required"`
	Optional       []IngredientAvailability `json:"optional"`
	AvailableCount int                      `json:"availableCount"`
	TotalCount     int                      `json:"totalCount"`
}

func availability(ingredient Ingredient, lookup QuantityLookup) IngredientAvailability {
	user := lookupQuantity(lookup, ingredient)
	if !validQuantity(user) {
		user = 0
	}
	return IngredientAvailability{
		Ingredient:   ingredient,
		UserQuantity: user,
		Status:       Classify(ingredient.Quantity, user),
	}
}

// Aggregate classifies every ingredient against the lookup and splits the
// result into required and optional, keeping the recipe order.
func Aggregate(ingredients []Ingredient, lookup QuantityLookup) IngredientsView {
	view := IngredientsView{
		Required:   make([]IngredientAvailability, 0, len(ingredients)),
		Optional:   make([]IngredientAvailability, 0),
		TotalCount: len(ingredients),
	}
	for _, ingredient := range ingredients {
		item := availability(ingredient, lookup)
		if item.Status == Available {
			view.AvailableCount++
		}
		if ingredient.IsRequired {
			view.Required = append(view.Required, item)
		} else {
			view.Optional = append(view.Optional, item)
		}
	}
	return view
}

// Shortfall is how much of an ingredient has to be bought to cover it.
func (ia IngredientAvailability) Shortfall() float64 {
	if ia.Status == Available {
		return 0
	}
	if !validQuantity(ia.Quantity) {
		return 0
	}
	return roundQuantity(ia.Quantity - ia.UserQuantity)
}
