package recommend

import "encoding/json"

const (
	MinMissingIngredients = 0
	MaxMissingIngredients = 5
)

type Tab string

const TabAll Tab = "all"

func ParseTab(value string) (Tab, bool) {
	switch value {
	case "", string(TabAll):
		return TabAll, true
	case string(Ideal), string(NearIdeal), string(NeedsShopping):
		return Tab(value), true
	}
	return "", false
}

// FilterState is replaced, never modified: every setter returns a new value.
type FilterState struct {
	MealCategory          *MealCategory `json:"mealCategory"`
	MaxMissingIngredients int           `json:"maxMissingIngredients"`
	PrioritizeExpiring    bool          `json:"prioritizeExpiring"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		MaxMissingIngredients: MaxMissingIngredients,
	}
}

func (fs FilterState) WithMealCategory(category *MealCategory) FilterState {
	if category != nil {
		value := *category
		category = &value
	}
	fs.MealCategory = category
	return fs
}

func (fs FilterState) WithMaxMissingIngredients(max int) FilterState {
	fs.MaxMissingIngredients = clampMissing(max)
	return fs
}

func (fs FilterState) WithPrioritizeExpiring(prioritize bool) FilterState {
	fs.PrioritizeExpiring = prioritize
	return fs
}

func (fs FilterState) Reset() FilterState {
	return DefaultFilterState()
}

func clampMissing(max int) int {
	if max < MinMissingIngredients {
		return MinMissingIngredients
	}
	if max > MaxMissingIngredients {
		return MaxMissingIngredients
	}
	return max
}

// FilterByMatchLevel keeps the recommendations on the given tab. The "all"
// tab returns the list itself.
func FilterByMatchLevel(list []Recommendation, tab Tab) []Recommendation {
	if tab == TabAll {
		return list
	}
	filtered := make([]Recommendation, 0, len(list))
	for _, rec := range list {
		if Tab(rec.MatchLevel) == tab {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// FilterByFilterState drops recommendations outside the category or above
// the missing ingredient limit, then, when expiring products are
// prioritized, moves recipes using them to the front without reordering
// either group.
func FilterByFilterState(list []Recommendation, state FilterState) []Recommendation {
	maxMissing := clampMissing(state.MaxMissingIngredients)
	kept := make([]Recommendation, 0, len(list))
	for _, rec := range list {
		if state.MealCategory != nil && rec.Recipe.MealCategory != *state.MealCategory {
			continue
		}
		if len(rec.MissingIngredients) > maxMissing {
			continue
		}
		kept = append(kept, rec)
	}
	if !state.PrioritizeExpiring {
		return kept
	}
	ordered := make([]Recommendation, 0, len(kept))
	for _, rec := range kept {
		if len(rec.UsingExpiringIngredients) > 0 {
			ordered = append(ordered, rec)
		}
	}
	for _, rec := range kept {
		if len(rec.UsingExpiringIngredients) == 0 {
			ordered = append(ordered, rec)
		}
	}
	return ordered
}

type MatchLevelCounts struct {
	All           int
	Ideal         int
	NearIdeal     int
	NeedsShopping int
}

func (c MatchLevelCounts) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]int{
		string(TabAll):        c.All,
		string(Ideal):         c.Ideal,
		string(NearIdeal):     c.NearIdeal,
		string(NeedsShopping): c.NeedsShopping,
	})
}

func (c *MatchLevelCounts) UnmarshalJSON(body []byte) error {
	var counts map[string]int
	if err := json.Unmarshal(body, &counts); err != nil {
		return err
	}
	c.All = counts[string(TabAll)]
	c.Ideal = counts[string(Ideal)]
	c.NearIdeal = counts[string(NearIdeal)]
	c.NeedsShopping = counts[string(NeedsShopping)]
	return nil
}

func (c MatchLevelCounts) ForTab(tab Tab) int {
	switch tab {
	case Tab(Ideal):
		return c.Ideal
	case Tab(NearIdeal):
		return c.NearIdeal
	case Tab(NeedsShopping):
		return c.NeedsShopping
	}
	return c.All
}

func CountByLevel(list []Recommendation) MatchLevelCounts {
	counts := MatchLevelCounts{All: len(list)}
	for _, rec := range list {
		switch rec.MatchLevel {
		case Ideal:
			counts.Ideal++
		case NearIdeal:
			counts.NearIdeal++
		case NeedsShopping:
			counts.NeedsShopping++
		}
	}
	return counts
}

func ActiveFiltersCount(state FilterState) int {
	defaults := DefaultFilterState()
	active := 0
	if state.MealCategory != nil {
		active++
	}
	if clampMissing(state.MaxMissingIngredients) != defaults.MaxMissingIngredients {
		active++
	}
	if state.PrioritizeExpiring != defaults.PrioritizeExpiring {
		active++
	}
	return active
}

type RecommendationsView struct {
	Items              []Recommendation `json:"items"`
	Counts             MatchLevelCounts `json:"counts"`
	ActiveFiltersCount int              `json:"activeFiltersCount"`
	Filters            FilterState      `json:"filters"`
	Tab                Tab              `json:"tab"`
}

// View applies the filter state, counts the result per level and then
// narrows it to the active tab.
func View(list []Recommendation, state FilterState, tab Tab) RecommendationsView {
	filtered := FilterByFilterState(list, state)
	return RecommendationsView{
		Items:              FilterByMatchLevel(filtered, tab),
		Counts:             CountByLevel(filtered),
		ActiveFiltersCount: ActiveFiltersCount(state),
		Filters:            state,
		Tab:                tab,
	}
}
