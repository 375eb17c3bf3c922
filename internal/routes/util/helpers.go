package util

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/exceptions"
	"fridgepick.pl/api/internal/recommend"
	"fridgepick.pl/api/internal/routes"
	"fridgepick.pl/api/internal/routes/filters"
	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator adds the "unit" tag, accepting the units products can be
// measured in.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("unit", func(fl validator.FieldLevel) bool {
		return recommend.Unit(fl.Field().String()).Valid()
	})
	return v
}

func describeFieldError(fe validator.FieldError) string {
	if fe.Tag() == "unit" {
		units := make([]string, len(recommend.Units))
		for i, unit := range recommend.Units {
			units[i] = string(unit)
		}
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(units, ", "))
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

func AuthorizationClaims(event events.APIGatewayV2HTTPRequest) map[string]string {
	return filters.Claims(event)
}

// AuthorizedRoute puts the caller's username on the context.
func AuthorizedRoute(route routes.Route) routes.Route {
	return func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
		if username, ok := AuthorizationClaims(event)["username"]; ok && username != "" {
			return route(event, filters.WithUsername(ctx, username))
		}
		return events.APIGatewayV2HTTPResponse{}, exceptions.Unauthorized()
	}
}

func Username(ctx context.Context) string {
	username, _ := filters.Username(ctx)
	return username
}

func RequestParam(ctx context.Context, name string) string {
	return filters.Params(ctx)[name]
}

func QueryParam(event events.APIGatewayV2HTTPRequest, name string) (string, bool) {
	value, ok := event.QueryStringParameters[name]
	return value, ok && value != ""
}

func QueryInt(event events.APIGatewayV2HTTPRequest, name string) (*int, error) {
	value, ok := QueryParam(event, name)
	if !ok {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, exceptions.InvalidInput(fmt.Sprintf("%s must be a number", name))
	}
	return &parsed, nil
}

func QueryBool(event events.APIGatewayV2HTTPRequest, name string) (*bool, error) {
	value, ok := QueryParam(event, name)
	if !ok {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, exceptions.InvalidInput(fmt.Sprintf("%s must be true or false", name))
	}
	return &parsed, nil
}

func ListParams(event events.APIGatewayV2HTTPRequest) (data.QueryParams, error) {
	params := data.QueryParams{}
	limit, err := QueryInt(event, "limit")
	if err != nil {
		return params, err
	}
	if limit != nil {
		params.Limit = *limit
	}
	if nextToken, ok := QueryParam(event, "nextToken"); ok {
		decoded, err := base64.StdEncoding.DecodeString(nextToken)
		if err != nil {
			return params, exceptions.InvalidInput("nextToken is not valid")
		}
		params.NextToken = decoded
	}
	return params, nil
}

// DecodeInput reads the JSON body into T and checks its validate tags.
func DecodeInput[T interface{}](event events.APIGatewayV2HTTPRequest) (T, error) {
	var input T
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return input, exceptions.InvalidInput(err.Error())
	}
	if err := validate.Struct(input); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			fields := make([]string, len(invalid))
			for i, fe := range invalid {
				fields[i] = describeFieldError(fe)
			}
			return input, exceptions.InvalidInput("invalid input: " + strings.Join(fields, ", "))
		}
		return input, exceptions.InvalidInput(err.Error())
	}
	return input, nil
}

func SerializeResponse[T interface{}, R interface{}](delayed func(T) R, thing T, err error, statusCode int) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	body, err := json.Marshal(delayed(thing))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

func SerializeResponseOK[T interface{}, R interface{}](delayed func(T) R, thing T, err error) (events.APIGatewayV2HTTPResponse, error) {
	return SerializeResponse(delayed, thing, err, 200)
}

func SerializeResponseNoContent(err error) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 204,
	}, nil
}

func Identity[T interface{}](thing T) T {
	return thing
}

func SerializeList[T interface{}, I interface{}, R interface{}](repo data.Repository[T, I], convert func(T) R, event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := ListParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	results, err := repo.List(ctx, Username(ctx), params)
	return SerializeResponseOK(ConvertQueryResultsPartial(convert), results, err)
}

func MapOnList[T interface{}, R interface{}](items *[]T, thunk func(T) R) *[]R {
	if items == nil {
		return nil
	}
	mapped := make([]R, len(*items))
	for i, item := range *items {
		mapped[i] = thunk(item)
	}
	return &mapped
}

func ConvertQueryResults[D interface{}, R interface{}](items data.QueryResults[D], thunk func(D) R) data.QueryResults[R] {
	if items.Items != nil {
		newItems := make([]R, len(items.Items))
		for i, rd := range items.Items {
			newItems[i] = thunk(rd)
		}
		return data.QueryResults[R]{
			Items:     newItems,
			NextToken: items.NextToken,
		}
	}
	return data.QueryResults[R]{
		Items: make([]R, 0),
	}
}

func ConvertQueryResultsPartial[D interface{}, R interface{}](thunk func(D) R) func(data.QueryResults[D]) data.QueryResults[R] {
	return func(d data.QueryResults[D]) data.QueryResults[R] {
		return ConvertQueryResults(d, thunk)
	}
}
