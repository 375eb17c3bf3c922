package subscriptions

import (
	"time"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/dynamodb/services"
	"fridgepick.pl/api/internal/dynamodb/token"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const NAME = "Subscription"

// Subscriptions are immutable: changing the endpoint means a new SNS
// subscription, so there is no update binding.
func NewSubscriptionService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.SubscriptionDataService {
	return &services.RepositoryDynamoDBService[data.SubscriptionDTO, data.SubscriptionInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           NAME,
		Shim: func(pk, sk string) data.SubscriptionDTO {
			return data.SubscriptionDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.SubscriptionInputDTO, createTime time.Time, pk, sk string) data.SubscriptionDTO {
			subscription := data.SubscriptionDTO{
				PK:            pk,
				SK:            sk,
				Endpoint:      *input.Endpoint,
				Protocol:      *input.Protocol,
				SubscriberArn: *input.SubscriberArn,
				CreateTime:    createTime,
				UpdateTime:    createTime,
			}
			if input.FilterPolicy != nil {
				subscription.FilterPolicy = *input.FilterPolicy
			}
			return subscription
		},
	}
}
