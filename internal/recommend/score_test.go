package recommend_test

import (
	"testing"
	"time"

	"fridgepick.pl/api/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func required(name string, quantity float64) recommend.Ingredient {
	return recommend.Ingredient{Name: name, Quantity: quantity, Unit: recommend.Piece, IsRequired: true}
}

func optional(name string, quantity float64) recommend.Ingredient {
	return recommend.Ingredient{Name: name, Quantity: quantity, Unit: recommend.Piece}
}

func TestAggregate(t *testing.T) {
	ingredients := []recommend.Ingredient{
		required("Mleko", 2),
		optional("Cynamon", 1),
		required("Chleb", 1),
		optional("Miód", 1),
		required("Jajka", 3),
	}
	view := recommend.Aggregate(ingredients, recommend.Quantities{
		"Mleko":   1,
		"Cynamon": 1,
		"Jajka":   3,
	})

	assert.Equal(t, 5, view.TotalCount)
	assert.Equal(t, 2, view.AvailableCount)
	require.Len(t, view.Required, 3)
	require.Len(t, view.Optional, 2)
	assert.Equal(t, view.TotalCount, len(view.Required)+len(view.Optional))

	assert.Equal(t, "Mleko", view.Required[0].Name)
	assert.Equal(t, recommend.Partial, view.Required[0].Status)
	assert.Equal(t, 1.0, view.Required[0].Shortfall())
	assert.Equal(t, "Chleb", view.Required[1].Name)
	assert.Equal(t, recommend.Missing, view.Required[1].Status)
	assert.Equal(t, "Jajka", view.Required[2].Name)
	assert.Equal(t, recommend.Available, view.Required[2].Status)
	assert.Zero(t, view.Required[2].Shortfall())
	assert.Equal(t, "Cynamon", view.Optional[0].Name)
	assert.Equal(t, "Miód", view.Optional[1].Name)
}

func TestAggregateEmpty(t *testing.T) {
	view := recommend.Aggregate(nil, recommend.Quantities{"Mleko": 1})
	assert.NotNil(t, view.Required)
	assert.NotNil(t, view.Optional)
	assert.Empty(t, view.Required)
	assert.Empty(t, view.Optional)
	assert.Zero(t, view.AvailableCount)
	assert.Zero(t, view.TotalCount)
}

func TestAggregateWithoutLookup(t *testing.T) {
	view := recommend.Aggregate([]recommend.Ingredient{required("Mleko", 1)}, nil)
	assert.Equal(t, recommend.Missing, view.Required[0].Status)
}

func TestScorePartialAndMissing(t *testing.T) {
	match := recommend.Score([]recommend.Ingredient{
		required("Mleko", 2),
		required("Chleb", 1),
	}, recommend.Quantities{"Mleko": 1, "Chleb": 0})

	assert.Equal(t, []string{"Chleb"}, match.MissingIngredients)
	assert.Equal(t, recommend.NeedsShopping, match.MatchLevel)
	assert.InDelta(t, 0.25, match.MatchScore, 1e-9)
}

func TestScoreIdeal(t *testing.T) {
	match := recommend.Score([]recommend.Ingredient{required("Mleko", 2)}, recommend.Quantities{"Mleko": 2})
	assert.Equal(t, 1.0, match.MatchScore)
	assert.Equal(t, recommend.Ideal, match.MatchLevel)
	assert.NotNil(t, match.MissingIngredients)
	assert.Empty(t, match.MissingIngredients)
}

func TestScoreEmpty(t *testing.T) {
	match := recommend.Score(nil, nil)
	assert.Equal(t, 1.0, match.MatchScore)
	assert.Equal(t, recommend.Ideal, match.MatchLevel)
	assert.Empty(t, match.MissingIngredients)

	onlyOptional := recommend.Score([]recommend.Ingredient{optional("Cynamon", 1)}, nil)
	assert.Equal(t, 1.0, onlyOptional.MatchScore)
	assert.Equal(t, recommend.Ideal, onlyOptional.MatchLevel)
}

func TestScoreNearIdeal(t *testing.T) {
	ingredients := []recommend.Ingredient{
		required("Makaron", 1),
		required("Pomidory", 4),
		required("Czosnek", 2),
		optional("Bazylia", 1),
	}
	partial := recommend.Score(ingredients, recommend.Quantities{"Makaron": 1, "Pomidory": 2, "Czosnek": 2})
	assert.Equal(t, recommend.NearIdeal, partial.MatchLevel)
	assert.Empty(t, partial.MissingIngredients)
	assert.InDelta(t, 2.5/3, partial.MatchScore, 1e-9)

	missing := recommend.Score(ingredients, recommend.Quantities{"Makaron": 1, "Czosnek": 2})
	assert.Equal(t, recommend.NearIdeal, missing.MatchLevel)
	assert.Equal(t, []string{"Pomidory"}, missing.MissingIngredients)
	assert.InDelta(t, 2.0/3, missing.MatchScore, 1e-9)
}

func TestScoreMissingKeepsRecipeOrder(t *testing.T) {
	match := recommend.Score([]recommend.Ingredient{
		required("Ziemniaki", 1),
		optional("Koperek", 1),
		required("Cebula", 1),
		required("Boczek", 1),
	}, recommend.Quantities{"Cebula": 1})
	assert.Equal(t, []string{"Ziemniaki", "Boczek"}, match.MissingIngredients)
}

func TestScoreMonotonic(t *testing.T) {
	ingredients := []recommend.Ingredient{
		required("Mleko", 2),
		required("Chleb", 1),
		required("Jajka", 4),
	}
	held := recommend.Quantities{"Mleko": 0, "Chleb": 0, "Jajka": 0}
	previous := recommend.Score(ingredients, held).MatchScore
	for _, name := range []string{"Jajka", "Mleko", "Chleb", "Jajka", "Mleko", "Jajka", "Jajka"} {
		held[name] += 1
		current := recommend.Score(ingredients, held)
		assert.GreaterOrEqual(t, current.MatchScore, previous, "adding %s", name)
		assert.GreaterOrEqual(t, current.MatchScore, 0.0)
		assert.LessOrEqual(t, current.MatchScore, 1.0)
		previous = current.MatchScore
	}
	final := recommend.Score(ingredients, held)
	assert.Equal(t, 1.0, final.MatchScore)
	assert.Equal(t, recommend.Ideal, final.MatchLevel)
}

func TestScoreWithInventoryUnits(t *testing.T) {
	inventory := recommend.NewInventory([]recommend.Product{
		{Name: "Mąka", Quantity: 1, Unit: recommend.Kilogram},
	})
	match := recommend.Score([]recommend.Ingredient{
		{Name: "Mąka", Quantity: 500, Unit: recommend.Gram, IsRequired: true},
	}, inventory)
	assert.Equal(t, recommend.Ideal, match.MatchLevel)
}

func TestExpiringIngredients(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)
	products := []recommend.Product{
		{Name: "Mleko", Quantity: 1, Unit: recommend.Liter, ExpiresAt: &tomorrow},
		{Name: "Ser", Quantity: 200, Unit: recommend.Gram, ExpiresAt: &nextWeek},
		{Name: "Jogurt", Quantity: 0, Unit: recommend.Piece, ExpiresAt: &tomorrow},
		{Name: "Chleb", Quantity: 1, Unit: recommend.Piece},
	}
	ingredients := []recommend.Ingredient{
		required("Ser", 1),
		required("Mleko", 1),
		optional("Jogurt", 1),
		optional("Mleko", 1),
		required("Chleb", 1),
	}
	assert.Equal(t, []string{"Mleko"}, recommend.ExpiringIngredients(ingredients, products, now, 72*time.Hour))
	assert.Equal(t, []string{"Ser", "Mleko"}, recommend.ExpiringIngredients(ingredients, products, now, 8*24*time.Hour))
	assert.Empty(t, recommend.ExpiringIngredients(nil, products, now, time.Hour))
}
