package settings

import (
	"time"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/recommend"
)

type Settings struct {
	recommend.FilterState
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
}

// SettingsInput changes only the fields present. An empty mealCategory
// clears the stored category.
type SettingsInput struct {
	MealCategory          *string `json:"mealCategory" validate:"omitempty,oneof=śniadanie obiad kolacja przekąska deser"`
	MaxMissingIngredients *int    `json:"maxMissingIngredients" validate:"omitempty,gte=0,lte=5"`
	PrioritizeExpiring    *bool   `json:"prioritizeExpiring"`
}

func (s *SettingsInput) ToData() data.SettingsInputDTO {
	return data.SettingsInputDTO{
		MealCategory:          s.MealCategory,
		MaxMissingIngredients: s.MaxMissingIngredients,
		PrioritizeExpiring:    s.PrioritizeExpiring,
	}
}

func NewSettings(settings data.SettingsDTO) Settings {
	return Settings{
		FilterState: settings.FilterState(),
		CreateTime:  settings.CreateTime,
		UpdateTime:  settings.UpdateTime,
	}
}
