package routes

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"fridgepick.pl/api/internal/exceptions"
	"fridgepick.pl/api/internal/routes/filters"
	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

type Route func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error)

type Service interface {
	GetRoutes() map[string]Route
}

type CachedMatcher struct {
	Matcher    *regexp.Regexp
	ParamNames []string
	Mutex      *sync.Mutex
}

type CachedRoute struct {
	Method  string
	Path    string
	Route   Route
	Matcher *CachedMatcher
}

func (cr *CachedMatcher) Refresh(path string) *regexp.Regexp {
	cr.Mutex.Lock()
	defer cr.Mutex.Unlock()
	if cr.Matcher == nil {
		namex := regexp.MustCompile(":[^/]+")
		regexPath := namex.ReplaceAllStringFunc(path, func(found string) string {
			cr.ParamNames = append(cr.ParamNames, found[1:])
			return "([^/]+)"
		})
		cr.Matcher = regexp.MustCompile("^" + regexPath + "$")
	}
	return cr.Matcher
}

func (cr *CachedRoute) MatchEvent(event events.APIGatewayV2HTTPRequest) (map[string]string, bool) {
	if event.RequestContext.HTTP.Method != cr.Method {
		return nil, false
	}
	if event.RawPath == cr.Path {
		return make(map[string]string), true
	}
	matcher := cr.Matcher.Refresh(cr.Path)
	values := matcher.FindStringSubmatch(event.RawPath)
	if values == nil {
		return nil, false
	}
	params := make(map[string]string, len(cr.Matcher.ParamNames))
	for i, p := range cr.Matcher.ParamNames {
		params[p] = values[i+1]
	}
	return params, true
}

type Router struct {
	Filters []filters.RequestFilter
	Routes  []CachedRoute
	Logger  *zap.Logger
}

// NewRouter collects the routes of every service. Paths with fewer
// parameters are tried first.
func NewRouter(services ...Service) *Router {
	var routes []CachedRoute
	var fltrs []filters.RequestFilter
	for _, service := range services {
		for composite, route := range service.GetRoutes() {
			parts := strings.SplitN(composite, ":", 2)
			cachedRoute := CachedRoute{
				Method: parts[0],
				Path:   parts[1],
				Route:  route,
				Matcher: &CachedMatcher{
					Mutex: &sync.Mutex{},
				},
			}
			routes = append(routes, cachedRoute)
		}
	}
	sortRoutes(routes)
	fltrs = append(fltrs, filters.DefaultCorsFilter())
	fltrs = append(fltrs, filters.DefaultIdentityFilter())
	return &Router{
		Routes:  routes,
		Filters: fltrs,
		Logger:  zap.NewNop(),
	}
}

func sortRoutes(routes []CachedRoute) {
	sort.SliceStable(routes, func(i, j int) bool {
		return strings.Count(routes[i].Path, ":") < strings.Count(routes[j].Path, ":")
	})
}

func jsonResponse(statusCode int, body []byte) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type":   "application/json",
			"Content-Length": strconv.Itoa(len(body)),
		},
	}
}

func (r *Router) translateError(err error) events.APIGatewayV2HTTPResponse {
	statusCode := 500
	var re exceptions.RequestError
	if errors.As(err, &re) {
		statusCode = re.ToServiceError().StatusCode
	}
	var se *exceptions.ServiceError
	if errors.As(err, &se) {
		statusCode = se.StatusCode
	}
	var payload any = map[string]string{"message": err.Error()}
	if statusCode >= 500 {
		r.Logger.Error("request failed", zap.Error(err))
		if re == nil && se == nil {
			payload = map[string]string{"message": "Internal server error"}
		}
	}
	var pe exceptions.PayloadError
	if errors.As(err, &pe) {
		payload = pe.Payload()
	}
	body, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		body = []byte("{\"message\": \"Internal server error\"}")
		statusCode = 500
	}
	return jsonResponse(statusCode, body)
}

func (r *Router) Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse {
	filterContext := filters.DefaultFilterContext(event, ctx)
	for _, filter := range r.Filters {
		updatedContext, broken := filter.Filter(filterContext)
		if broken {
			return *updatedContext.Response
		}
		filterContext = updatedContext
	}
	for _, route := range r.Routes {
		if params, ok := route.MatchEvent(*filterContext.Request); ok {
			resp, err := route.Route(event, filters.WithParams(*filterContext.Context, params))
			if err != nil {
				return r.translateError(err)
			}
			return resp
		}
	}
	return r.translateError(exceptions.NotFound("route", event.RawPath))
}
