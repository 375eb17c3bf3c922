package products

import (
	"time"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/dynamodb/services"
	"fridgepick.pl/api/internal/dynamodb/token"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const NAME = "Product"

func NewProductService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.ProductRepository {
	return &services.RepositoryDynamoDBService[data.ProductDTO, data.ProductInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           NAME,
		Shim: func(pk, sk string) data.ProductDTO {
			return data.ProductDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.ProductInputDTO, now time.Time, pk, sk string) data.ProductDTO {
			product := data.ProductDTO{
				PK:         pk,
				SK:         sk,
				Name:       *input.Name,
				Unit:       *input.Unit,
				ExpiresAt:  input.ExpiresAt,
				CreateTime: now,
				UpdateTime: now,
			}
			if input.Quantity != nil {
				product.Quantity = *input.Quantity
			}
			return product
		},
		OnUpdate: func(input data.ProductInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
			if input.Name != nil {
				update = update.Set(expression.Name("name"), expression.Value(input.Name))
			}
			if input.Quantity != nil {
				update = update.Set(expression.Name("quantity"), expression.Value(input.Quantity))
			}
			if input.Unit != nil {
				update = update.Set(expression.Name("unit"), expression.Value(input.Unit))
			}
			if input.ExpiresAt != nil {
				update = update.Set(expression.Name("expiresAt"), expression.Value(input.ExpiresAt))
			}
			return update
		},
	}
}
