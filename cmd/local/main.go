// Command local serves the API over plain HTTP for development, translating
// each request into the event the Lambda runtime would deliver.
package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"fridgepick.pl/api/internal/app"
	"fridgepick.pl/api/internal/config"
	"fridgepick.pl/api/internal/logger"
	"fridgepick.pl/api/internal/routes"
	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// USER_HEADER names the local account; there is no authorizer in front of
// this server.
const USER_HEADER = "X-Fridgepick-User"

const DEFAULT_USER = "local"

func ToEvent(r *http.Request) (events.APIGatewayV2HTTPRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayV2HTTPRequest{}, err
	}
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		headers[strings.ToLower(name)] = strings.Join(values, ",")
	}
	query := make(map[string]string, len(r.URL.Query()))
	for name, values := range r.URL.Query() {
		query[name] = strings.Join(values, ",")
	}
	username := r.Header.Get(USER_HEADER)
	if username == "" {
		username = DEFAULT_USER
	}
	event := events.APIGatewayV2HTTPRequest{
		RawPath:               r.URL.Path,
		RawQueryString:        r.URL.RawQuery,
		Headers:               headers,
		QueryStringParameters: query,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    r.Method,
				Path:      r.URL.Path,
				SourceIP:  r.RemoteAddr,
				UserAgent: r.UserAgent(),
			},
			Authorizer: &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
				Lambda: map[string]interface{}{
					"claims": map[string]interface{}{
						"username": username,
					},
				},
			},
		},
	}
	if utf8.Valid(body) {
		event.Body = string(body)
	} else {
		event.Body = base64.StdEncoding.EncodeToString(body)
		event.IsBase64Encoded = true
	}
	return event, nil
}

func WriteResponse(w http.ResponseWriter, response events.APIGatewayV2HTTPResponse) {
	for name, value := range response.Headers {
		w.Header().Set(name, value)
	}
	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	body := []byte(response.Body)
	if response.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(response.Body); err == nil {
			body = decoded
		}
	}
	w.WriteHeader(statusCode)
	w.Write(body)
}

func NewHandler(router *routes.Router, log *zap.Logger) http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
			next.ServeHTTP(w, r)
		})
	})
	mux.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		event, err := ToEvent(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		WriteResponse(w, router.Invoke(event, r.Context()))
	})
	return mux
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system env vars")
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync()
	wired, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("failed to wire the api", zap.Error(err))
	}
	address := fmt.Sprintf(":%d", cfg.Port)
	log.Info("server starting", zap.String("address", address))
	if err := http.ListenAndServe(address, NewHandler(wired.Router(), log)); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
