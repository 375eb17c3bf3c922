package filters

import "context"

type contextKey string

const (
	paramsKey   contextKey = "Params"
	usernameKey contextKey = "Username"
)

func WithParams(ctx context.Context, params map[string]string) context.Context {
	return context.WithValue(ctx, paramsKey, params)
}

func Params(ctx context.Context) map[string]string {
	params, _ := ctx.Value(paramsKey).(map[string]string)
	return params
}

func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

func Username(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok && username != ""
}
