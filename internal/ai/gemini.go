package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fridgepick.pl/api/internal/recommend"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const defaultRetryAfter = time.Minute

var rankingSchema = &genai.Schema{
	Type:        genai.TypeArray,
	Description: "Recipes chosen for the user, best first.",
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recipeId": {
				Type:        genai.TypeString,
				Description: "The id of one of the candidate recipes.",
			},
			"reason": {
				Type:        genai.TypeString,
				Description: "One sentence in Polish explaining the choice.",
			},
		},
		Required: []string{"recipeId", "reason"},
	},
}

// GeminiRanker asks a Gemini model to choose and explain recommendations.
// Calls are throttled process wide; a throttled or quota rejected call
// returns a *QuotaError.
type GeminiRanker struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewGeminiRanker(ctx context.Context, apiKey string, model string, perMinute int, logger *zap.Logger) (*GeminiRanker, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiRanker{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		logger:  logger.Named("gemini"),
	}, nil
}

type candidatePrompt struct {
	RecipeId           string   `json:"recipeId"`
	Name               string   `json:"name"`
	MealCategory       string   `json:"mealCategory"`
	MatchScore         float64  `json:"matchScore"`
	MissingIngredients []string `json:"missingIngredients"`
	Expiring           []string `json:"usingExpiringIngredients"`
}

func buildPrompt(products []recommend.Product, candidates []recommend.Recommendation, limit int) (string, error) {
	inventory := make([]string, len(products))
	for i, product := range products {
		line := fmt.Sprintf("%s %g %s", product.Name, product.Quantity, product.Unit)
		if product.ExpiresAt != nil {
			line += " (ważny do " + product.ExpiresAt.Format("2006-01-02") + ")"
		}
		inventory[i] = line
	}
	prompts := make([]candidatePrompt, len(candidates))
	for i, c := range candidates {
		prompts[i] = candidatePrompt{
			RecipeId:           c.Recipe.Id,
			Name:               c.Recipe.Name,
			MealCategory:       string(c.Recipe.MealCategory),
			MatchScore:         c.MatchScore,
			MissingIngredients: c.MissingIngredients,
			Expiring:           c.UsingExpiringIngredients,
		}
	}
	body, err := json.Marshal(prompts)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Wybierz maksymalnie %d przepisów dla użytkownika i uszereguj je od najlepszego.\n", limit)
	sb.WriteString("Preferuj przepisy z wysokim dopasowaniem, które zużywają produkty z kończącym się terminem.\n")
	sb.WriteString("Używaj wyłącznie recipeId z listy kandydatów.\n\nLodówka:\n")
	for _, line := range inventory {
		sb.WriteString("- " + line + "\n")
	}
	sb.WriteString("\nKandydaci:\n")
	sb.Write(body)
	return sb.String(), nil
}

// parseRanking decodes the model output, dropping unknown or repeated ids.
func parseRanking(text string, candidates []recommend.Recommendation, limit int) ([]Ranked, error) {
	var ranked []Ranked
	if err := json.Unmarshal([]byte(text), &ranked); err != nil {
		return nil, fmt.Errorf("decoding ranking: %w", err)
	}
	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c.Recipe.Id] = true
	}
	result := make([]Ranked, 0, len(ranked))
	for _, r := range ranked {
		if !known[r.RecipeId] {
			continue
		}
		known[r.RecipeId] = false
		result = append(result, r)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func quotaExhausted(err error) bool {
	message := err.Error()
	return strings.Contains(message, "RESOURCE_EXHAUSTED") || strings.Contains(message, "429")
}

func (gr *GeminiRanker) Rank(ctx context.Context, products []recommend.Product, candidates []recommend.Recommendation, limit int) ([]Ranked, error) {
	if len(candidates) == 0 || limit == 0 {
		return []Ranked{}, nil
	}
	reservation := gr.limiter.Reserve()
	if delay := reservation.Delay(); delay > 0 {
		reservation.Cancel()
		return nil, &QuotaError{RetryAfter: delay}
	}
	prompt, err := buildPrompt(products, candidates, limit)
	if err != nil {
		return nil, err
	}
	resp, err := gr.client.Models.GenerateContent(ctx, gr.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   rankingSchema,
		Temperature:      genai.Ptr[float32](0.2),
	})
	if err != nil {
		if quotaExhausted(err) {
			return nil, &QuotaError{RetryAfter: defaultRetryAfter, Cause: err}
		}
		return nil, fmt.Errorf("generating ranking: %w", err)
	}
	ranked, err := parseRanking(resp.Text(), candidates, limit)
	if err != nil {
		return nil, err
	}
	gr.logger.Debug("ranked candidates",
		zap.Int("candidates", len(candidates)),
		zap.Int("ranked", len(ranked)))
	return ranked, nil
}
