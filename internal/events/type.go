// Package events reacts to changes on the table stream.
package events

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

type EventFilter interface {
	Filter(record events.DynamoDBEventRecord) bool
	Apply(ctx context.Context, record events.DynamoDBEventRecord) error
}

// Dispatch hands every record to each handler that accepts it. A failing
// handler is logged and does not stop the rest of the batch.
func Dispatch(ctx context.Context, logger *zap.Logger, handlers []EventFilter, records []events.DynamoDBEventRecord) int {
	failures := 0
	for _, record := range records {
		for _, handler := range handlers {
			if !handler.Filter(record) {
				continue
			}
			if err := handler.Apply(ctx, record); err != nil {
				failures++
				logger.Error("failed to handle record",
					zap.String("eventId", record.EventID),
					zap.String("eventName", record.EventName),
					zap.Error(err))
			}
		}
	}
	return failures
}

func recordImage(record events.DynamoDBEventRecord) map[string]events.DynamoDBAttributeValue {
	if record.Change.NewImage != nil {
		return record.Change.NewImage
	}
	return record.Change.OldImage
}

func stringAttribute(image map[string]events.DynamoDBAttributeValue, name string) (string, bool) {
	value, ok := image[name]
	if !ok || value.DataType() != events.DataTypeString {
		return "", false
	}
	return value.String(), true
}

func numberAttribute(image map[string]events.DynamoDBAttributeValue, name string) (float64, bool) {
	value, ok := image[name]
	if !ok || value.DataType() != events.DataTypeNumber {
		return 0, false
	}
	number, err := value.Float()
	return number, err == nil
}

func timeAttribute(image map[string]events.DynamoDBAttributeValue, name string) (*time.Time, bool) {
	value, ok := stringAttribute(image, name)
	if !ok {
		return nil, false
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

// partition splits "<account>:<Entity>" keys. Items outside an account
// partition, like cache entries, are skipped.
func partition(record events.DynamoDBEventRecord) (string, string, bool) {
	pk, ok := stringAttribute(recordImage(record), "PK")
	if !ok {
		return "", "", false
	}
	parts := strings.SplitN(pk, ":", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
