package data

import "context"

// GLOBAL_ACCOUNT owns data shared by every user, like the recipe catalog.
const GLOBAL_ACCOUNT = "Global"

const (
	DEFAULT_LIMIT = 100
	MAX_LIMIT     = 100
)

type QueryParams struct {
	Limit     int    `json:"limit"`
	NextToken []byte `json:"nextToken"`
}

func (q *QueryParams) GetLimit() *int32 {
	limit := int32(q.Limit)
	if limit <= 0 || limit > MAX_LIMIT {
		limit = DEFAULT_LIMIT
	}
	return &limit
}

type QueryResults[T interface{}] struct {
	Items     []T    `json:"items"`
	NextToken []byte `json:"nextToken"`
}

type NextToken map[string]map[string]string

type Repository[T interface{}, I interface{}] interface {
	List(ctx context.Context, accountId string, params QueryParams) (QueryResults[T], error)
	ListAll(ctx context.Context, accountId string) ([]T, error)
	Get(ctx context.Context, accountId string, itemId string) (T, error)
	Create(ctx context.Context, accountId string, input I) (T, error)
	CreateWithItemId(ctx context.Context, accountId string, input I, itemId string) (T, error)
	Update(ctx context.Context, accountId string, itemId string, input I) (T, error)
	Delete(ctx context.Context, accountId string, itemId string) error
}
