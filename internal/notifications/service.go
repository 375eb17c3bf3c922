package notifications

import (
	"context"
	"encoding/json"
)

// ACCOUNT_ATTRIBUTE is the message attribute every alert carries; each
// subscription filters on it so users only hear about their own products.
const ACCOUNT_ATTRIBUTE = "accountId"

type SubscribeInput struct {
	Endpoint     *string
	Protocol     *string
	FilterPolicy *string
}

type SubscribeOutput struct {
	SubscriberId string
}

type PublishInput struct {
	Subject    string
	Message    string
	Attributes map[string]string
}

type NotificationService interface {
	Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error)
	Unsubscribe(ctx context.Context, subscriberId string) error
	Publish(ctx context.Context, input PublishInput) error
}

func AccountFilterPolicy(accountId string) (string, error) {
	policy, err := json.Marshal(map[string][]string{
		ACCOUNT_ATTRIBUTE: {accountId},
	})
	return string(policy), err
}
