package ai

import (
	"context"
	"fmt"
	"sort"

	"fridgepick.pl/api/internal/recommend"
)

// LocalRanker orders by match score, then expiring ingredient usage, then
// fewest missing ingredients, then name.
type LocalRanker struct{}

func (LocalRanker) Rank(ctx context.Context, products []recommend.Product, candidates []recommend.Recommendation, limit int) ([]Ranked, error) {
	sorted := make([]recommend.Recommendation, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if len(a.UsingExpiringIngredients) != len(b.UsingExpiringIngredients) {
			return len(a.UsingExpiringIngredients) > len(b.UsingExpiringIngredients)
		}
		if len(a.MissingIngredients) != len(b.MissingIngredients) {
			return len(a.MissingIngredients) < len(b.MissingIngredients)
		}
		return a.Recipe.Name < b.Recipe.Name
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	ranked := make([]Ranked, len(sorted))
	for i, candidate := range sorted {
		ranked[i] = Ranked{
			RecipeId: candidate.Recipe.Id,
			Reason:   localReason(candidate),
		}
	}
	return ranked, nil
}

func localReason(r recommend.Recommendation) string {
	switch {
	case len(r.UsingExpiringIngredients) > 0:
		return fmt.Sprintf("Wykorzystuje produkty, którym kończy się termin: %d", len(r.UsingExpiringIngredients))
	case r.MatchLevel == recommend.Ideal:
		return "Masz wszystkie potrzebne składniki"
	case len(r.MissingIngredients) > 0:
		return fmt.Sprintf("Brakuje składników: %d", len(r.MissingIngredients))
	}
	return fmt.Sprintf("Dopasowanie %.0f%%", r.MatchScore*100)
}
