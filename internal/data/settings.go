package data

import (
	"time"

	"fridgepick.pl/api/internal/recommend"
)

// SETTINGS_ID is the sort key of the single settings item per account.
const SETTINGS_ID = "Global"

type SettingsDTO struct {
	PK                    string    `dynamodbav:"PK"`
	SK                    string    `dynamodbav:"SK"`
	MealCategory          *string   `dynamodbav:"mealCategory"`
	MaxMissingIngredients int       `dynamodbav:"maxMissingIngredients"`
	PrioritizeExpiring    bool      `dynamodbav:"prioritizeExpiring"`
	CreateTime            time.Time `dynamodbav:"createTime"`
	UpdateTime            time.Time `dynamodbav:"updateTime"`
}

func DefaultSettings() SettingsDTO {
	defaults := recommend.DefaultFilterState()
	now := time.Now()
	return SettingsDTO{
		SK:                    SETTINGS_ID,
		MaxMissingIngredients: defaults.MaxMissingIngredients,
		PrioritizeExpiring:    defaults.PrioritizeExpiring,
		CreateTime:            now,
		UpdateTime:            now,
	}
}

func (s SettingsDTO) FilterState() recommend.FilterState {
	state := recommend.DefaultFilterState().
		WithMaxMissingIngredients(s.MaxMissingIngredients).
		WithPrioritizeExpiring(s.PrioritizeExpiring)
	if s.MealCategory != nil {
		if category, ok := recommend.ParseMealCategory(*s.MealCategory); ok {
			state = state.WithMealCategory(&category)
		}
	}
	return state
}

// SettingsInputDTO updates only the fields that are set. An empty meal
// category clears the stored one.
type SettingsInputDTO struct {
	MealCategory          *string `dynamodbav:"mealCategory"`
	MaxMissingIngredients *int    `dynamodbav:"maxMissingIngredients"`
	PrioritizeExpiring    *bool   `dynamodbav:"prioritizeExpiring"`
}

type SettingsRepository interface {
	Repository[SettingsDTO, SettingsInputDTO]
}
