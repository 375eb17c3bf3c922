// Package recommend holds the recipe matching logic: ingredient availability,
// match scoring, recommendation filtering and the refresh controller. Nothing
// in here performs I/O; callers hand it already-fetched lists.
package recommend

import (
	"math"
	"time"
)

type Unit string

const (
	Gram       Unit = "g"
	Kilogram   Unit = "kg"
	Milliliter Unit = "ml"
	Liter      Unit = "l"
	Piece      Unit = "szt"
)

var Units = []Unit{Gram, Kilogram, Milliliter, Liter, Piece}

type Dimension string

const (
	Mass   Dimension = "mass"
	Volume Dimension = "volume"
	Count  Dimension = "count"
)

func (u Unit) Dimension() (Dimension, bool) {
	switch u {
	case Gram, Kilogram:
		return Mass, true
	case Milliliter, Liter:
		return Volume, true
	case Piece:
		return Count, true
	}
	return "", false
}

func (u Unit) factor() float64 {
	switch u {
	case Kilogram, Liter:
		return 1000
	}
	return 1
}

// Converted quantities are kept to a millionth of a unit, so 1.001 kg and
// 1001 g compare equal.
const quantityPrecision = 1e6

func roundQuantity(q float64) float64 {
	if math.Abs(q) >= math.MaxFloat64/quantityPrecision {
		return q
	}
	return math.Round(q*quantityPrecision) / quantityPrecision
}

// ToBase converts q into the base unit of u's dimension (g, ml or szt).
func (u Unit) ToBase(q float64) float64 {
	return roundQuantity(q * u.factor())
}

// FromBase converts a base-unit quantity back into u.
func (u Unit) FromBase(q float64) float64 {
	return roundQuantity(q / u.factor())
}

func (u Unit) Valid() bool {
	_, ok := u.Dimension()
	return ok
}

type Ingredient struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       Unit    `json:"unit"`
	IsRequired bool    `json:"isRequired"`
}

type Product struct {
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      Unit       `json:"unit"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type MealCategory string

const (
	Breakfast MealCategory = "śniadanie"
	Lunch     MealCategory = "obiad"
	Dinner    MealCategory = "kolacja"
	Snack     MealCategory = "przekąska"
	Dessert   MealCategory = "deser"
)

var MealCategories = []MealCategory{Breakfast, Lunch, Dinner, Snack, Dessert}

func ParseMealCategory(value string) (MealCategory, bool) {
	for _, category := range MealCategories {
		if string(category) == value {
			return category, true
		}
	}
	return "", false
}

type MatchLevel string

const (
	Ideal         MatchLevel = "idealny"
	NearIdeal     MatchLevel = "prawie idealny"
	NeedsShopping MatchLevel = "wymaga dokupienia"
)

type RecipeSummary struct {
	Id                 string       `json:"recipeId"`
	Name               string       `json:"name"`
	Description        string       `json:"description,omitempty"`
	MealCategory       MealCategory `json:"mealCategory"`
	PrepareTimeMinutes *int         `json:"prepareTimeMinutes,omitempty"`
	Thumbnail          *string      `json:"thumbnail,omitempty"`
}

type Recommendation struct {
	Recipe                   RecipeSummary `json:"recipe"`
	MatchScore               float64       `json:"matchScore"`
	MatchLevel               MatchLevel    `json:"matchLevel"`
	MissingIngredients       []string      `json:"missingIngredients"`
	UsingExpiringIngredients []string      `json:"usingExpiringIngredients"`
	Reason                   string        `json:"reason,omitempty"`
}

// RateLimit is the signal returned by the refresh endpoint when the
// recommendation quota is exhausted. ResetTime is in epoch milliseconds.
type RateLimit struct {
	IsRateLimited bool   `json:"isRateLimited"`
	ResetTime     *int64 `json:"resetTime"`
}

func NewRateLimit(resetAt time.Time) RateLimit {
	millis := resetAt.UnixMilli()
	return RateLimit{
		IsRateLimited: true,
		ResetTime:     &millis,
	}
}

func (rl RateLimit) ResetAt() time.Time {
	if rl.ResetTime == nil {
		return time.Time{}
	}
	return time.UnixMilli(*rl.ResetTime)
}

func validQuantity(q float64) bool {
	return !math.IsNaN(q) && !math.IsInf(q, 0) && q >= 0
}
