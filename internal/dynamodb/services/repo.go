package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/dynamodb/token"
	"fridgepick.pl/api/internal/exceptions"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// RepositoryDynamoDBService stores one entity type in the single table under
// PK "<account>:<Name>" and a generated SK.
type RepositoryDynamoDBService[T interface{}, I interface{}] struct {
	DynamoDB       *dynamodb.Client
	TableName      string
	TokenMarshaler token.TokenMarshaler
	Name           string
	Shim           func(pk string, sk string) T
	OnCreate       func(I, time.Time, string, string) T
	OnUpdate       func(I, expression.UpdateBuilder) expression.UpdateBuilder
	NewItemId      func() string
	Descending     bool
}

func PrimaryKey(accountId string, name string) string {
	return fmt.Sprintf("%s:%s", accountId, name)
}

func getKey(pks string, sks string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(pks)
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(sks)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

func conditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func (rs *RepositoryDynamoDBService[T, I]) resource() string {
	return strings.ToLower(rs.Name)
}

func (rs *RepositoryDynamoDBService[T, I]) List(ctx context.Context, accountId string, params data.QueryParams) (data.QueryResults[T], error) {
	pk := PrimaryKey(accountId, rs.Name)
	keyEx := expression.Key("PK").Equal(expression.Value(pk))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	startKey, err := rs.TokenMarshaler.Unmarshal(pk, params.NextToken)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	output, err := rs.DynamoDB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(rs.TableName),
		Limit:                     params.GetLimit(),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         startKey,
		ScanIndexForward:          aws.Bool(!rs.Descending),
	})
	if err != nil {
		return data.QueryResults[T]{}, fmt.Errorf("querying %s: %w", rs.resource(), err)
	}
	items := make([]T, 0, len(output.Items))
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
		return data.QueryResults[T]{}, err
	}
	nextToken, err := rs.TokenMarshaler.Marshal(pk, output.LastEvaluatedKey)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	return data.QueryResults[T]{
		Items:     items,
		NextToken: nextToken,
	}, nil
}

// ListAll follows the query pages until the partition is exhausted.
func (rs *RepositoryDynamoDBService[T, I]) ListAll(ctx context.Context, accountId string) ([]T, error) {
	pk := PrimaryKey(accountId, rs.Name)
	keyEx := expression.Key("PK").Equal(expression.Value(pk))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, err
	}
	paginator := dynamodb.NewQueryPaginator(rs.DynamoDB, &dynamodb.QueryInput{
		TableName:                 aws.String(rs.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(!rs.Descending),
	})
	items := make([]T, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("querying %s: %w", rs.resource(), err)
		}
		var pageItems []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
			return nil, err
		}
		items = append(items, pageItems...)
	}
	return items, nil
}

func (rs *RepositoryDynamoDBService[T, I]) Create(ctx context.Context, accountId string, input I) (T, error) {
	itemId := uuid.NewString()
	if rs.NewItemId != nil {
		itemId = rs.NewItemId()
	}
	return rs.CreateWithItemId(ctx, accountId, input, itemId)
}

func (rs *RepositoryDynamoDBService[T, I]) CreateWithItemId(ctx context.Context, accountId string, input I, itemId string) (T, error) {
	shim := rs.OnCreate(input, time.Now(), PrimaryKey(accountId, rs.Name), itemId)
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	condition := expression.Name("PK").AttributeNotExists().And(expression.Name("SK").AttributeNotExists())
	expr, err := expression.NewBuilder().WithCondition(condition).Build()
	if err != nil {
		return shim, err
	}
	_, err = rs.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(rs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		if conditionFailed(err) {
			return shim, exceptions.Conflict(rs.resource(), itemId)
		}
		return shim, fmt.Errorf("creating %s: %w", rs.resource(), err)
	}
	return shim, nil
}

func (rs *RepositoryDynamoDBService[T, I]) Update(ctx context.Context, accountId string, itemId string, input I) (T, error) {
	pk := PrimaryKey(accountId, rs.Name)
	shim := rs.Shim(pk, itemId)
	key, err := getKey(pk, itemId)
	if err != nil {
		return shim, err
	}
	update := expression.Set(expression.Name("updateTime"), expression.Value(time.Now()))
	if rs.OnUpdate != nil {
		update = rs.OnUpdate(input, update)
	}
	condition := expression.Name("PK").AttributeExists().And(expression.Name("SK").AttributeExists())
	expr, err := expression.NewBuilder().WithCondition(condition).WithUpdate(update).Build()
	if err != nil {
		return shim, err
	}
	response, err := rs.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(rs.TableName),
		Key:                       key,
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if conditionFailed(err) {
			return shim, exceptions.NotFound(rs.resource(), itemId)
		}
		return shim, fmt.Errorf("updating %s: %w", rs.resource(), err)
	}
	err = attributevalue.UnmarshalMap(response.Attributes, &shim)
	return shim, err
}

func (rs *RepositoryDynamoDBService[T, I]) Get(ctx context.Context, accountId string, itemId string) (T, error) {
	pk := PrimaryKey(accountId, rs.Name)
	shim := rs.Shim(pk, itemId)
	key, err := getKey(pk, itemId)
	if err != nil {
		return shim, err
	}
	response, err := rs.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(rs.TableName),
		Key:       key,
	})
	if err != nil {
		return shim, fmt.Errorf("getting %s: %w", rs.resource(), err)
	}
	if response.Item == nil {
		return shim, exceptions.NotFound(rs.resource(), itemId)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (rs *RepositoryDynamoDBService[T, I]) Delete(ctx context.Context, accountId string, itemId string) error {
	key, err := getKey(PrimaryKey(accountId, rs.Name), itemId)
	if err != nil {
		return err
	}
	_, err = rs.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		Key:       key,
		TableName: aws.String(rs.TableName),
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", rs.resource(), err)
	}
	return nil
}
