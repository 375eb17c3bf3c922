package audits

import (
	"time"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/dynamodb/services"
	"fridgepick.pl/api/internal/dynamodb/token"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

const NAME = "Audit"

// Audit entries get time ordered ids and list newest first.
func NewAuditService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.AuditRepository {
	return &services.RepositoryDynamoDBService[data.AuditDTO, data.AuditInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           NAME,
		Descending:     true,
		NewItemId: func() string {
			return uuid.Must(uuid.NewV7()).String()
		},
		Shim: func(pk, sk string) data.AuditDTO {
			return data.AuditDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.AuditInputDTO, t time.Time, pk, sk string) data.AuditDTO {
			entry := data.AuditDTO{
				PK:           pk,
				SK:           sk,
				ResourceId:   *input.ResourceId,
				ResourceType: *input.ResourceType,
				Action:       *input.Action,
				NewValues:    input.NewValues,
				OldValues:    input.OldValues,
				ExpiresIn:    input.ExpiresIn,
				CreateTime:   t,
				UpdateTime:   t,
			}
			if input.Message != nil {
				entry.Message = *input.Message
			}
			return entry
		},
	}
}
