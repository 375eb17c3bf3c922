// Package client talks to the FridgePick HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fridgepick.pl/api/internal/recommend"
	"fridgepick.pl/api/internal/routes/recipes"
	"fridgepick.pl/api/internal/routes/recommendations"
	"go.uber.org/zap"
)

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api responded %d: %s", e.StatusCode, e.Message)
}

type API struct {
	BaseURL string
	Token   string
	Client  *http.Client
	Logger  *zap.Logger
}

func NewAPI(baseURL string, token string, logger *zap.Logger) *API {
	return &API{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		Client:  &http.Client{},
		Logger:  logger,
	}
}

func (api *API) request(ctx context.Context, method string, resource string, params url.Values, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}
	target := api.BaseURL + resource
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if api.Token != "" {
		req.Header.Set("Authorization", "Bearer "+api.Token)
	}
	api.Logger.Debug("calling api", zap.String("method", method), zap.String("url", target))
	return api.Client.Do(req)
}

func decode[T any](resp *http.Response) (T, error) {
	var value T
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return value, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var message struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &message) != nil || message.Message == "" {
			message.Message = strings.TrimSpace(string(body))
		}
		return value, &APIError{StatusCode: resp.StatusCode, Message: message.Message}
	}
	if err := json.Unmarshal(body, &value); err != nil {
		return value, fmt.Errorf("decoding %s response: %w", resp.Request.URL.Path, err)
	}
	return value, nil
}

type RecommendationsInput struct {
	Tab                recommend.Tab
	Category           *string
	MaxMissing         *int
	PrioritizeExpiring *bool
}

func (in RecommendationsInput) values() url.Values {
	params := url.Values{}
	if in.Tab != "" {
		params.Set("tab", string(in.Tab))
	}
	if in.Category != nil {
		params.Set("category", *in.Category)
	}
	if in.MaxMissing != nil {
		params.Set("maxMissing", strconv.Itoa(*in.MaxMissing))
	}
	if in.PrioritizeExpiring != nil {
		params.Set("prioritizeExpiring", strconv.FormatBool(*in.PrioritizeExpiring))
	}
	return params
}

func (api *API) Recommendations(ctx context.Context, input RecommendationsInput) (recommendations.Recommendations, error) {
	resp, err := api.request(ctx, http.MethodGet, "/recommendations", input.values(), nil)
	if err != nil {
		return recommendations.Recommendations{}, err
	}
	return decode[recommendations.Recommendations](resp)
}

// Refresh regenerates the recommendations. An exhausted quota comes back as
// a RateLimit rather than an error.
func (api *API) Refresh(ctx context.Context) ([]recommend.Recommendation, recommend.RateLimit, error) {
	resp, err := api.request(ctx, http.MethodPost, "/recommendations/refresh", nil, nil)
	if err != nil {
		return nil, recommend.RateLimit{}, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		defer resp.Body.Close()
		var limit recommend.RateLimit
		if err := json.NewDecoder(resp.Body).Decode(&limit); err != nil {
			return nil, recommend.RateLimit{}, fmt.Errorf("decoding rate limit: %w", err)
		}
		limit.IsRateLimited = true
		return nil, limit, nil
	}
	result, err := decode[recommendations.RefreshResult](resp)
	if err != nil {
		return nil, recommend.RateLimit{}, err
	}
	return result.Recommendations, result.RateLimit, nil
}

func (api *API) Recipe(ctx context.Context, recipeId string) (recipes.Recipe, error) {
	resp, err := api.request(ctx, http.MethodGet, "/recipes/"+url.PathEscape(recipeId), nil, nil)
	if err != nil {
		return recipes.Recipe{}, err
	}
	return decode[recipes.Recipe](resp)
}
