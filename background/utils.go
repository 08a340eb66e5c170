package background

import "fmt"

var (
	ErrEmptyActor  = fmt.Errorf("empty actor id")
	ErrEmptyHandle = fmt.Errorf("empty contact handle")
)

const (
	NotificationContactShared = "CONTACT_SHARED"
	NotificationHelpExpired   = "HELP_EXPIRED"
)

// notificationData builds the payload attached to a push notification
func notificationData(notificationType string, fields map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"notification_type": notificationType,
	}
	for k, v := range fields {
		data[k] = v
	}
	return data
}
