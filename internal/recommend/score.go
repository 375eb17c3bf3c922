package recommend

import (
	"time"
)

type Match struct {
	MatchScore         float64    `json:"matchScore"`
	MatchLevel         MatchLevel `json:"matchLevel"`
	MissingIngredients []string   `json:"missingIngredients"`
}

// Score rates how well the inventory covers a recipe. Only required
// ingredients count. Each contributes the fraction of it the user holds,
// capped at one, and the score is the mean of those contributions.
//
// The level is idealny when every required ingredient is available,
// prawie idealny when exactly one is short and wymaga dokupienia otherwise.
func Score(ingredients []Ingredient, lookup QuantityLookup) Match {
	match := Match{
		MatchScore:         1,
		MatchLevel:         Ideal,
		MissingIngredients: make([]string, 0),
	}
	var required int
	var total float64
	var short int
	for _, ingredient := range ingredients {
		if !ingredient.IsRequired {
			continue
		}
		required++
		item := availability(ingredient, lookup)
		total += credit(ingredient.Quantity, item.UserQuantity)
		switch item.Status {
		case Missing:
			short++
			match.MissingIngredients = append(match.MissingIngredients, ingredient.Name)
		case Partial:
			short++
		}
	}
	if required == 0 {
		return match
	}
	match.MatchScore = total / float64(required)
	switch {
	case short == 0:
		match.MatchScore = 1
		match.MatchLevel = Ideal
	case short == 1:
		match.MatchLevel = NearIdeal
	default:
		match.MatchLevel = NeedsShopping
	}
	return match
}

// ExpiringIngredients lists the recipe ingredients, in recipe order and
// without duplicates, that the user holds in a product expiring before
// now+within.
func ExpiringIngredients(ingredients []Ingredient, products []Product, now time.Time, within time.Duration) []string {
	deadline := now.Add(within)
	expiring := make(map[string]bool, len(products))
	for _, product := range products {
		if product.ExpiresAt == nil || product.Quantity <= 0 || !validQuantity(product.Quantity) {
			continue
		}
		if product.ExpiresAt.Before(deadline) {
			expiring[product.Name] = true
		}
	}
	names := make([]string, 0)
	seen := make(map[string]bool, len(ingredients))
	for _, ingredient := range ingredients {
		if expiring[ingredient.Name] && !seen[ingredient.Name] {
			seen[ingredient.Name] = true
			names = append(names, ingredient.Name)
		}
	}
	return names
}
