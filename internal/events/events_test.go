package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"fridgepick.pl/api/internal/notifications"
	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingInvalidator struct {
	accounts []string
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, account string) error {
	r.accounts = append(r.accounts, account)
	return nil
}

type recordingNotifications struct {
	published []notifications.PublishInput
	err       error
}

func (r *recordingNotifications) Subscribe(ctx context.Context, input notifications.SubscribeInput) (*notifications.SubscribeOutput, error) {
	return &notifications.SubscribeOutput{}, nil
}

func (r *recordingNotifications) Unsubscribe(ctx context.Context, subscriberId string) error {
	return nil
}

func (r *recordingNotifications) Publish(ctx context.Context, input notifications.PublishInput) error {
	if r.err != nil {
		return r.err
	}
	r.published = append(r.published, input)
	return nil
}

func productImage(account string, quantity string, expiresAt *time.Time) map[string]events.DynamoDBAttributeValue {
	image := map[string]events.DynamoDBAttributeValue{
		"PK":       events.NewStringAttribute(account + ":Product"),
		"SK":       events.NewStringAttribute("milk"),
		"name":     events.NewStringAttribute("Mleko"),
		"quantity": events.NewNumberAttribute(quantity),
	}
	if expiresAt != nil {
		image["expiresAt"] = events.NewStringAttribute(expiresAt.Format(time.RFC3339Nano))
	}
	return image
}

func TestInvalidateRecommendations(t *testing.T) {
	invalidator := &recordingInvalidator{}
	handler := &InvalidateRecommendationsHandler{Recommendations: invalidator}
	product := events.DynamoDBEventRecord{
		EventName: "REMOVE",
		Change:    events.DynamoDBStreamRecord{OldImage: productImage("acct", "1", nil)},
	}
	list := events.DynamoDBEventRecord{
		EventName: "INSERT",
		Change: events.DynamoDBStreamRecord{NewImage: map[string]events.DynamoDBAttributeValue{
			"PK": events.NewStringAttribute("acct:ShoppingList"),
			"SK": events.NewStringAttribute("list"),
		}},
	}

	failures := Dispatch(context.Background(), zap.NewNop(), []EventFilter{handler}, []events.DynamoDBEventRecord{product, list})
	assert.Zero(t, failures)
	assert.Equal(t, []string{"acct"}, invalidator.accounts)
}

func TestExpiringProduct(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)
	nextMonth := now.Add(30 * 24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	newHandler := func(service notifications.NotificationService) *ExpiringProductHandler {
		handler := NewExpiringProductHandler(service, 72*time.Hour)
		handler.now = func() time.Time { return now }
		return handler
	}

	t.Run("EntersWindow", func(t *testing.T) {
		service := &recordingNotifications{}
		handler := newHandler(service)
		record := events.DynamoDBEventRecord{
			EventName: "MODIFY",
			Change: events.DynamoDBStreamRecord{
				OldImage: productImage("acct", "1", &nextMonth),
				NewImage: productImage("acct", "1", &tomorrow),
			},
		}
		require.True(t, handler.Filter(record))
		require.NoError(t, handler.Apply(context.Background(), record))
		require.Len(t, service.published, 1)
		assert.Equal(t, "acct", service.published[0].Attributes[notifications.ACCOUNT_ATTRIBUTE])
		assert.Contains(t, service.published[0].Message, "Mleko")
		assert.Contains(t, service.published[0].Message, "2026-03-02")
	})

	t.Run("AlreadyAnnounced", func(t *testing.T) {
		handler := newHandler(&recordingNotifications{})
		record := events.DynamoDBEventRecord{
			EventName: "MODIFY",
			Change: events.DynamoDBStreamRecord{
				OldImage: productImage("acct", "2", &tomorrow),
				NewImage: productImage("acct", "1", &tomorrow),
			},
		}
		assert.False(t, handler.Filter(record))
	})

	t.Run("Skipped", func(t *testing.T) {
		handler := newHandler(&recordingNotifications{})
		records := []events.DynamoDBEventRecord{
			{EventName: "INSERT", Change: events.DynamoDBStreamRecord{NewImage: productImage("acct", "1", &nextMonth)}},
			{EventName: "INSERT", Change: events.DynamoDBStreamRecord{NewImage: productImage("acct", "0", &tomorrow)}},
			{EventName: "INSERT", Change: events.DynamoDBStreamRecord{NewImage: productImage("acct", "1", nil)}},
			{EventName: "REMOVE", Change: events.DynamoDBStreamRecord{OldImage: productImage("acct", "1", &tomorrow)}},
		}
		for _, record := range records {
			assert.False(t, handler.Filter(record))
		}
	})

	t.Run("Expired", func(t *testing.T) {
		service := &recordingNotifications{}
		handler := newHandler(service)
		record := events.DynamoDBEventRecord{
			EventName: "INSERT",
			Change:    events.DynamoDBStreamRecord{NewImage: productImage("acct", "1", &yesterday)},
		}
		require.True(t, handler.Filter(record))
		require.NoError(t, handler.Apply(context.Background(), record))
		assert.Contains(t, service.published[0].Message, "stracił ważność")
	})

	t.Run("DispatchCountsFailures", func(t *testing.T) {
		handler := newHandler(&recordingNotifications{err: errors.New("boom")})
		record := events.DynamoDBEventRecord{
			EventName: "INSERT",
			Change:    events.DynamoDBStreamRecord{NewImage: productImage("acct", "1", &tomorrow)},
		}
		failures := Dispatch(context.Background(), zap.NewNop(), []EventFilter{handler}, []events.DynamoDBEventRecord{record})
		assert.Equal(t, 1, failures)
	})
}
