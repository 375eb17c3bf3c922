package shopping

import (
	"time"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/dynamodb/services"
	"fridgepick.pl/api/internal/dynamodb/token"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const NAME = "ShoppingList"

func NewShoppingListService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.ShoppingListDataService {
	return &services.RepositoryDynamoDBService[data.ShoppingListDTO, data.ShoppingListInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           NAME,
		Shim: func(pk, sk string) data.ShoppingListDTO {
			return data.ShoppingListDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.ShoppingListInputDTO, createTime time.Time, pk string, sk string) data.ShoppingListDTO {
			list := data.ShoppingListDTO{
				PK:         pk,
				SK:         sk,
				Name:       *input.Name,
				RecipeId:   input.RecipeId,
				Items:      []data.ShoppingListItemDTO{},
				ExpiresIn:  input.ExpiresIn,
				CreateTime: createTime,
				UpdateTime: createTime,
			}
			if input.Items != nil {
				list.Items = *input.Items
			}
			return list
		},
		OnUpdate: func(input data.ShoppingListInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
			if input.Name != nil {
				update = update.Set(expression.Name("name"), expression.Value(input.Name))
			}
			if input.ExpiresIn != nil {
				update = update.Set(expression.Name("expiresIn"), expression.Value(input.ExpiresIn))
			}
			if input.Items != nil {
				update = update.Set(expression.Name("items"), expression.Value(input.Items))
			}
			return update
		},
	}
}
