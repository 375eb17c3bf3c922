package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const PARTITION = "Cache"

type cacheItem struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	Value     []byte `dynamodbav:"value"`
	ExpiresIn *int64 `dynamodbav:"expiresIn,omitempty"`
}

// DynamoDBStore keeps entries in the single table under PK "Cache". The
// table's TTL attribute is expiresIn; TTL deletion lags, so expired items
// are filtered on read.
type DynamoDBStore struct {
	DynamoDB  *dynamodb.Client
	TableName string
	now       func() time.Time
}

func NewDynamoDBStore(tableName string, client *dynamodb.Client) *DynamoDBStore {
	return &DynamoDBStore{
		DynamoDB:  client,
		TableName: tableName,
		now:       time.Now,
	}
}

func itemKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: PARTITION},
		"SK": &types.AttributeValueMemberS{Value: key},
	}
}

func (ds *DynamoDBStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	response, err := ds.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(ds.TableName),
		Key:            itemKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("reading cache %s: %w", key, err)
	}
	if response.Item == nil {
		return nil, false, nil
	}
	var item cacheItem
	if err := attributevalue.UnmarshalMap(response.Item, &item); err != nil {
		return nil, false, err
	}
	if item.ExpiresIn != nil && *item.ExpiresIn <= ds.now().Unix() {
		return nil, false, nil
	}
	return item.Value, true, nil
}

func (ds *DynamoDBStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	item := cacheItem{
		PK:    PARTITION,
		SK:    key,
		Value: value,
	}
	if ttl > 0 {
		item.ExpiresIn = aws.Int64(ds.now().Add(ttl).Unix())
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = ds.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(ds.TableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("writing cache %s: %w", key, err)
	}
	return nil
}

func (ds *DynamoDBStore) Delete(ctx context.Context, key string) error {
	_, err := ds.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(ds.TableName),
		Key:       itemKey(key),
	})
	if err != nil {
		return fmt.Errorf("deleting cache %s: %w", key, err)
	}
	return nil
}
