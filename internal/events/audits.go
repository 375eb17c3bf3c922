package events

import (
	"context"
	"fmt"
	"time"

	"fridgepick.pl/api/internal/data"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
)

// Audit entries expire after ninety days.
const AUDIT_RETENTION = 90 * 24 * time.Hour

type AuditMessageFormat func(record events.DynamoDBEventRecord) *string

func action(record events.DynamoDBEventRecord) string {
	switch record.EventName {
	case "INSERT":
		return "CREATED"
	case "MODIFY":
		return "UPDATED"
	case "REMOVE":
		return "DELETED"
	}
	return record.EventName
}

func pastTense(record events.DynamoDBEventRecord) string {
	switch record.EventName {
	case "INSERT":
		return "created"
	case "REMOVE":
		return "deleted"
	}
	return "updated"
}

func formatProduct(record events.DynamoDBEventRecord) *string {
	image := recordImage(record)
	name, _ := stringAttribute(image, "name")
	id, _ := stringAttribute(image, "SK")
	return aws.String(fmt.Sprintf("Product %s (%s) was %s", id, name, pastTense(record)))
}

func formatSettings(record events.DynamoDBEventRecord) *string {
	state := "updated"
	if record.EventName == "INSERT" {
		state = "applied"
	}
	return aws.String(fmt.Sprintf("New settings were %s", state))
}

func formatList(record events.DynamoDBEventRecord) *string {
	image := recordImage(record)
	state := "was " + pastTense(record)
	if record.EventName == "REMOVE" {
		if expiresIn, ok := numberAttribute(image, "expiresIn"); ok && int64(expiresIn) <= time.Now().Unix() {
			state = "has expired"
		}
	}
	name, _ := stringAttribute(image, "name")
	id, _ := stringAttribute(image, "SK")
	return aws.String(fmt.Sprintf("Shopping list %s (%s) %s", id, name, state))
}

func imageValues(image map[string]events.DynamoDBAttributeValue) *map[string]interface{} {
	if image == nil {
		return nil
	}
	values := make(map[string]interface{}, len(image))
	for name, value := range image {
		if name == "PK" || name == "SK" {
			continue
		}
		switch value.DataType() {
		case events.DataTypeString:
			values[name] = value.String()
		case events.DataTypeNumber:
			values[name] = value.Number()
		case events.DataTypeBoolean:
			values[name] = value.Boolean()
		}
	}
	return &values
}

type CreateAuditEntryHandler struct {
	Audit   data.AuditRepository
	Formats map[string]AuditMessageFormat
}

func (ch *CreateAuditEntryHandler) Filter(record events.DynamoDBEventRecord) bool {
	_, entity, ok := partition(record)
	if !ok {
		return false
	}
	_, ok = ch.Formats[entity]
	return ok
}

func (ch *CreateAuditEntryHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	account, entity, _ := partition(record)
	message := ch.Formats[entity](record)
	if message == nil {
		return nil
	}
	id, _ := stringAttribute(recordImage(record), "SK")
	_, err := ch.Audit.Create(ctx, account, data.AuditInputDTO{
		ResourceId:   aws.String(id),
		ResourceType: aws.String(entity),
		Action:       aws.String(action(record)),
		Message:      message,
		NewValues:    imageValues(record.Change.NewImage),
		OldValues:    imageValues(record.Change.OldImage),
		ExpiresIn:    aws.Int(int(time.Now().Add(AUDIT_RETENTION).Unix())),
	})
	return err
}

func DefaultAuditHandler(db data.AuditRepository) *CreateAuditEntryHandler {
	return &CreateAuditEntryHandler{
		Audit: db,
		Formats: map[string]AuditMessageFormat{
			"Product":      formatProduct,
			"Settings":     formatSettings,
			"ShoppingList": formatList,
		},
	}
}
