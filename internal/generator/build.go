package generator

import (
	"time"

	"fridgepick.pl/api/internal/ai"
	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/recommend"
)

// Candidates scores every recipe against the products and keeps those
// missing at most maxMissing ingredients, in catalog order.
func Candidates(products []recommend.Product, recipes []data.RecipeDTO, now time.Time, expiringWithin time.Duration, maxMissing int) []recommend.Recommendation {
	inventory := recommend.NewInventory(products)
	candidates := make([]recommend.Recommendation, 0, len(recipes))
	for _, recipe := range recipes {
		ingredients := recipe.RecipeIngredients()
		match := recommend.Score(ingredients, inventory)
		if len(match.MissingIngredients) > maxMissing {
			continue
		}
		candidates = append(candidates, recommend.Recommendation{
			Recipe:                   recipe.Summary(),
			MatchScore:               match.MatchScore,
			MatchLevel:               match.MatchLevel,
			MissingIngredients:       match.MissingIngredients,
			UsingExpiringIngredients: recommend.ExpiringIngredients(ingredients, products, now, expiringWithin),
		})
	}
	return candidates
}

// Order arranges candidates the way the ranker chose. Ids the ranker made
// up are skipped, and the scores stay the locally computed ones.
func Order(candidates []recommend.Recommendation, ranked []ai.Ranked, limit int) []recommend.Recommendation {
	byId := make(map[string]recommend.Recommendation, len(candidates))
	for _, candidate := range candidates {
		byId[candidate.Recipe.Id] = candidate
	}
	items := make([]recommend.Recommendation, 0, len(ranked))
	for _, r := range ranked {
		candidate, ok := byId[r.RecipeId]
		if !ok {
			continue
		}
		delete(byId, r.RecipeId)
		candidate.Reason = r.Reason
		items = append(items, candidate)
		if len(items) == limit {
			break
		}
	}
	return items
}
