package events

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

type Invalidator interface {
	Invalidate(ctx context.Context, account string) error
}

// InvalidateRecommendationsHandler drops an account's cached
// recommendations whenever one of its products changes.
type InvalidateRecommendationsHandler struct {
	Recommendations Invalidator
}

func (ih *InvalidateRecommendationsHandler) Filter(record events.DynamoDBEventRecord) bool {
	_, entity, ok := partition(record)
	return ok && entity == "Product"
}

func (ih *InvalidateRecommendationsHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	account, _, _ := partition(record)
	return ih.Recommendations.Invalidate(ctx, account)
}
