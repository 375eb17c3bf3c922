package recommendations

import (
	"time"

	"fridgepick.pl/api/internal/quota"
	"fridgepick.pl/api/internal/recommend"
)

// Refreshes tells how many manual refreshes are left. ResetTime, in epoch
// milliseconds, is only set once none are left.
type Refreshes struct {
	Remaining int    `json:"remaining"`
	ResetTime *int64 `json:"resetTime,omitempty"`
}

func NewRefreshes(decision quota.Decision) Refreshes {
	refreshes := Refreshes{Remaining: decision.Remaining}
	if !decision.Allowed {
		resetTime := decision.ResetAt.UnixMilli()
		refreshes.ResetTime = &resetTime
	}
	return refreshes
}

type Recommendations struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Refreshes   Refreshes `json:"refreshes"`
	recommend.RecommendationsView
}

type RefreshResult struct {
	GeneratedAt     time.Time                  `json:"generatedAt"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	recommend.RateLimit
}
