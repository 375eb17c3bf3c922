package events

import (
	"context"
	"fmt"
	"time"

	"fridgepick.pl/api/internal/notifications"
	"github.com/aws/aws-lambda-go/events"
)

// ExpiringProductHandler alerts an account's subscribers when a product
// they hold enters the expiry window. A product already inside the window
// is announced once, not on every later change.
type ExpiringProductHandler struct {
	Notifications notifications.NotificationService
	Within        time.Duration
	now           func() time.Time
}

func NewExpiringProductHandler(service notifications.NotificationService, within time.Duration) *ExpiringProductHandler {
	return &ExpiringProductHandler{
		Notifications: service,
		Within:        within,
		now:           time.Now,
	}
}

func (eh *ExpiringProductHandler) expiring(image map[string]events.DynamoDBAttributeValue, now time.Time) (*time.Time, bool) {
	if image == nil {
		return nil, false
	}
	if quantity, ok := numberAttribute(image, "quantity"); !ok || quantity <= 0 {
		return nil, false
	}
	expiresAt, ok := timeAttribute(image, "expiresAt")
	if !ok {
		return nil, false
	}
	return expiresAt, expiresAt.Before(now.Add(eh.Within))
}

func (eh *ExpiringProductHandler) Filter(record events.DynamoDBEventRecord) bool {
	if record.EventName != "INSERT" && record.EventName != "MODIFY" {
		return false
	}
	_, entity, ok := partition(record)
	if !ok || entity != "Product" {
		return false
	}
	now := eh.now()
	expiresAt, soon := eh.expiring(record.Change.NewImage, now)
	if !soon {
		return false
	}
	previous, wasSoon := eh.expiring(record.Change.OldImage, now)
	return !wasSoon || !previous.Equal(*expiresAt)
}

func (eh *ExpiringProductHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	account, _, _ := partition(record)
	name, _ := stringAttribute(record.Change.NewImage, "name")
	expiresAt, _ := timeAttribute(record.Change.NewImage, "expiresAt")
	message := fmt.Sprintf("%s traci ważność %s. Sprawdź przepisy, które go wykorzystują.", name, expiresAt.Format("2006-01-02"))
	if !expiresAt.After(eh.now()) {
		message = fmt.Sprintf("%s stracił ważność %s.", name, expiresAt.Format("2006-01-02"))
	}
	return eh.Notifications.Publish(ctx, notifications.PublishInput{
		Subject: "FridgePick: kończy się termin ważności",
		Message: message,
		Attributes: map[string]string{
			notifications.ACCOUNT_ATTRIBUTE: account,
		},
	})
}
