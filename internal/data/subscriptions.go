package data

import "time"

// SubscriptionDTO is an SNS subscription that receives expiry alerts for a
// single account. FilterPolicy is the policy attached on subscribe.
type SubscriptionDTO struct {
	PK            string    `dynamodbav:"PK"`
	SK            string    `dynamodbav:"SK"`
	Endpoint      string    `dynamodbav:"endpoint"`
	Protocol      string    `dynamodbav:"protocol"`
	SubscriberArn string    `dynamodbav:"subscriberArn"`
	FilterPolicy  string    `dynamodbav:"filterPolicy"`
	CreateTime    time.Time `dynamodbav:"createTime"`
	UpdateTime    time.Time `dynamodbav:"updateTime"`
}

type SubscriptionInputDTO struct {
	Endpoint      *string `dynamodbav:"endpoint"`
	Protocol      *string `dynamodbav:"protocol"`
	SubscriberArn *string `dynamodbav:"subscriberArn"`
	FilterPolicy  *string `dynamodbav:"filterPolicy"`
}

type SubscriptionDataService interface {
	Repository[SubscriptionDTO, SubscriptionInputDTO]
}
