package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fridgepick.pl/api/internal/config"
	"fridgepick.pl/api/internal/logger"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

type userInfo struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}

type Authorizer struct {
	AuthURL string
	APIKey  string
	Client  *http.Client
	Logger  *zap.Logger
}

func (a *Authorizer) userInfo(ctx context.Context, apiToken string) (*userInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/auth/v1/user", strings.TrimSuffix(a.AuthURL, "/")), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Authorization", apiToken)
	req.Header.Add("apikey", a.APIKey)
	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth provider responded %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var user userInfo
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	if user.Id == "" {
		return nil, fmt.Errorf("auth provider returned no user id")
	}
	return &user, nil
}

func (a *Authorizer) HandleRequest(ctx context.Context, event events.APIGatewayV2CustomAuthorizerV2Request) (events.APIGatewayV2CustomAuthorizerSimpleResponse, error) {
	response := events.APIGatewayV2CustomAuthorizerSimpleResponse{
		IsAuthorized: false,
	}
	apiToken, ok := event.Headers["authorization"]
	if !ok || apiToken == "" {
		return response, nil
	}
	user, err := a.userInfo(ctx, apiToken)
	if err != nil {
		a.Logger.Info("denying request", zap.String("routeKey", event.RouteKey), zap.Error(err))
		return response, nil
	}
	return events.APIGatewayV2CustomAuthorizerSimpleResponse{
		IsAuthorized: true,
		Context: map[string]interface{}{
			"claims": map[string]string{
				"username": user.Id,
				"email":    user.Email,
			},
		},
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync()
	authorizer := &Authorizer{
		AuthURL: cfg.AuthURL,
		APIKey:  cfg.AuthAPIKey,
		Client:  &http.Client{},
		Logger:  log.Named("auth"),
	}
	lambda.Start(authorizer.HandleRequest)
}
