package services

import (
	"context"
	"fmt"

	"fridgepick.pl/api/internal/notifications"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type NotificationSNSService struct {
	Sns      *sns.Client
	TopicArn string
}

func (n *NotificationSNSService) Subscribe(ctx context.Context, input notifications.SubscribeInput) (*notifications.SubscribeOutput, error) {
	attributes := map[string]string{}
	if input.FilterPolicy != nil {
		attributes["FilterPolicy"] = *input.FilterPolicy
	}
	output, err := n.Sns.Subscribe(ctx, &sns.SubscribeInput{
		Endpoint:              input.Endpoint,
		Protocol:              input.Protocol,
		TopicArn:              aws.String(n.TopicArn),
		Attributes:            attributes,
		ReturnSubscriptionArn: true,
	})

	if err != nil {
		return nil, fmt.Errorf("subscribing: %w", err)
	}

	return &notifications.SubscribeOutput{
		SubscriberId: *output.SubscriptionArn,
	}, nil
}

func (n *NotificationSNSService) Unsubscribe(ctx context.Context, subscriberId string) error {
	_, err := n.Sns.Unsubscribe(ctx, &sns.UnsubscribeInput{
		SubscriptionArn: aws.String(subscriberId),
	})

	return err
}

func (n *NotificationSNSService) Publish(ctx context.Context, input notifications.PublishInput) error {
	attributes := make(map[string]types.MessageAttributeValue, len(input.Attributes))
	for name, value := range input.Attributes {
		attributes[name] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(value),
		}
	}
	_, err := n.Sns.Publish(ctx, &sns.PublishInput{
		TopicArn:          aws.String(n.TopicArn),
		Subject:           aws.String(input.Subject),
		Message:           aws.String(input.Message),
		MessageAttributes: attributes,
	})
	if err != nil {
		return fmt.Errorf("publishing: %w", err)
	}
	return nil
}
