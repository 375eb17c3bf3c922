package recommend_test

import (
	"encoding/json"
	"testing"

	"fridgepick.pl/api/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id string, category recommend.MealCategory, level recommend.MatchLevel, missing int, expiring ...string) recommend.Recommendation {
	names := make([]string, missing)
	for i := range names {
		names[i] = id + "-missing"
	}
	if expiring == nil {
		expiring = []string{}
	}
	return recommend.Recommendation{
		Recipe:                   recommend.RecipeSummary{Id: id, Name: id, MealCategory: category},
		MatchLevel:               level,
		MissingIngredients:       names,
		UsingExpiringIngredients: expiring,
	}
}

func ids(list []recommend.Recommendation) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.Recipe.Id
	}
	return out
}

func fixture() []recommend.Recommendation {
	return []recommend.Recommendation{
		rec("owsianka", recommend.Breakfast, recommend.Ideal, 0),
		rec("schabowy", recommend.Lunch, recommend.NeedsShopping, 3, "Ziemniaki"),
		rec("jajecznica", recommend.Breakfast, recommend.NearIdeal, 1, "Jajka"),
		rec("zupa", recommend.Lunch, recommend.NeedsShopping, 5),
		rec("kanapki", recommend.Dinner, recommend.Ideal, 0, "Ser"),
	}
}

func TestFilterByMatchLevel(t *testing.T) {
	list := fixture()

	all := recommend.FilterByMatchLevel(list, recommend.TabAll)
	require.Len(t, all, len(list))
	assert.Same(t, &list[0], &all[0], "the all tab returns the list itself")

	ideal := recommend.FilterByMatchLevel(list, recommend.Tab(recommend.Ideal))
	assert.Equal(t, []string{"owsianka", "kanapki"}, ids(ideal))

	shopping := recommend.FilterByMatchLevel(list, recommend.Tab(recommend.NeedsShopping))
	assert.Equal(t, []string{"schabowy", "zupa"}, ids(shopping))

	assert.Equal(t, ids(fixture()), ids(list), "source list untouched")
}

func TestFilterByFilterState(t *testing.T) {
	list := fixture()
	lunch := recommend.Lunch

	t.Run("Defaults", func(t *testing.T) {
		filtered := recommend.FilterByFilterState(list, recommend.DefaultFilterState())
		assert.Equal(t, ids(list), ids(filtered))
	})

	t.Run("Category", func(t *testing.T) {
		state := recommend.DefaultFilterState().WithMealCategory(&lunch)
		assert.Equal(t, []string{"schabowy", "zupa"}, ids(recommend.FilterByFilterState(list, state)))
	})

	t.Run("MaxMissing", func(t *testing.T) {
		state := recommend.DefaultFilterState().WithMaxMissingIngredients(1)
		assert.Equal(t, []string{"owsianka", "jajecznica", "kanapki"}, ids(recommend.FilterByFilterState(list, state)))

		none := recommend.DefaultFilterState().WithMaxMissingIngredients(0)
		assert.Equal(t, []string{"owsianka", "kanapki"}, ids(recommend.FilterByFilterState(list, none)))
	})

	t.Run("PrioritizeExpiring", func(t *testing.T) {
		state := recommend.DefaultFilterState().WithPrioritizeExpiring(true)
		filtered := recommend.FilterByFilterState(list, state)
		assert.Equal(t, []string{"schabowy", "jajecznica", "kanapki", "owsianka", "zupa"}, ids(filtered))
		assert.Len(t, filtered, len(list), "reorders without dropping")
	})

	t.Run("Combined", func(t *testing.T) {
		state := recommend.DefaultFilterState().
			WithMealCategory(&lunch).
			WithMaxMissingIngredients(4).
			WithPrioritizeExpiring(true)
		assert.Equal(t, []string{"schabowy"}, ids(recommend.FilterByFilterState(list, state)))
	})

	t.Run("Idempotent", func(t *testing.T) {
		state := recommend.DefaultFilterState().WithPrioritizeExpiring(true).WithMaxMissingIngredients(3)
		assert.Equal(t, recommend.FilterByFilterState(list, state), recommend.FilterByFilterState(list, state))
		assert.Equal(t, ids(fixture()), ids(list))
	})

	t.Run("Empty", func(t *testing.T) {
		state := recommend.DefaultFilterState().WithMaxMissingIngredients(0).WithMealCategory(&lunch)
		filtered := recommend.FilterByFilterState(list, state)
		assert.NotNil(t, filtered)
		assert.Empty(t, filtered)
	})
}

func TestCountByLevel(t *testing.T) {
	counts := recommend.CountByLevel(fixture())
	assert.Equal(t, recommend.MatchLevelCounts{All: 5, Ideal: 2, NearIdeal: 1, NeedsShopping: 2}, counts)
	assert.Equal(t, counts.All, counts.Ideal+counts.NearIdeal+counts.NeedsShopping)
	assert.Equal(t, 2, counts.ForTab(recommend.Tab(recommend.Ideal)))
	assert.Equal(t, 5, counts.ForTab(recommend.TabAll))

	assert.Equal(t, recommend.MatchLevelCounts{}, recommend.CountByLevel(nil))

	body, err := json.Marshal(counts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"all":5,"idealny":2,"prawie idealny":1,"wymaga dokupienia":2}`, string(body))
}

func TestActiveFiltersCount(t *testing.T) {
	breakfast := recommend.Breakfast
	state := recommend.DefaultFilterState()
	assert.Zero(t, recommend.ActiveFiltersCount(state))

	state = state.WithMealCategory(&breakfast)
	assert.Equal(t, 1, recommend.ActiveFiltersCount(state))

	state = state.WithMaxMissingIngredients(2)
	assert.Equal(t, 2, recommend.ActiveFiltersCount(state))

	state = state.WithPrioritizeExpiring(true)
	assert.Equal(t, 3, recommend.ActiveFiltersCount(state))

	state = state.WithMaxMissingIngredients(recommend.MaxMissingIngredients)
	assert.Equal(t, 2, recommend.ActiveFiltersCount(state))

	state = state.WithMealCategory(nil)
	assert.Equal(t, 1, recommend.ActiveFiltersCount(state))

	assert.Zero(t, recommend.ActiveFiltersCount(state.Reset()))
}

func TestFilterStateSetters(t *testing.T) {
	breakfast := recommend.Breakfast
	original := recommend.DefaultFilterState()
	changed := original.WithMealCategory(&breakfast)
	breakfast = recommend.Dinner

	assert.Nil(t, original.MealCategory, "setters return new values")
	require.NotNil(t, changed.MealCategory)
	assert.Equal(t, recommend.Breakfast, *changed.MealCategory)

	assert.Equal(t, 0, original.WithMaxMissingIngredients(-3).MaxMissingIngredients)
	assert.Equal(t, 5, original.WithMaxMissingIngredients(12).MaxMissingIngredients)
}

func TestView(t *testing.T) {
	state := recommend.DefaultFilterState().WithMaxMissingIngredients(3)
	view := recommend.View(fixture(), state, recommend.Tab(recommend.NeedsShopping))
	assert.Equal(t, []string{"schabowy"}, ids(view.Items))
	assert.Equal(t, recommend.MatchLevelCounts{All: 4, Ideal: 2, NearIdeal: 1, NeedsShopping: 1}, view.Counts)
	assert.Equal(t, 1, view.ActiveFiltersCount)
}

func TestParse(t *testing.T) {
	tab, ok := recommend.ParseTab("prawie idealny")
	assert.True(t, ok)
	assert.Equal(t, recommend.Tab(recommend.NearIdeal), tab)

	tab, ok = recommend.ParseTab("")
	assert.True(t, ok)
	assert.Equal(t, recommend.TabAll, tab)

	_, ok = recommend.ParseTab("świetny")
	assert.False(t, ok)

	category, ok := recommend.ParseMealCategory("kolacja")
	assert.True(t, ok)
	assert.Equal(t, recommend.Dinner, category)

	_, ok = recommend.ParseMealCategory("brunch")
	assert.False(t, ok)
}
