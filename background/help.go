package background

import (
	"context"

	"github.com/bitmark-inc/autonomy-nearby/utils"
)

const (
	messageContactShared = "notification.contact_shared"
	messageHelpExpired   = "notification.help_expired"
)

// DeliverContact is a background job to send the contact handle of an
// accepted helper to the author of the request
func (m *BackgroundManager) DeliverContact(actorID, handle string) error {
	if handle == "" {
		return ErrEmptyHandle
	}

	err := m.NotifyActorByTemplate(context.Background(), actorID, messageContactShared,
		map[string]interface{}{"Handle": handle},
		notificationData(NotificationContactShared, map[string]interface{}{"handle": handle}),
	)
	if err != nil {
		log.WithField("actor_id", actorID).WithError(err).Error("deliver contact")
		return err
	}

	return nil
}

// ExpireHelpRequests is a background job to rewrite help requests which are
// past their expiry
func (m *BackgroundManager) ExpireHelpRequests() error {
	count, err := m.registry.Sweep(context.Background())
	if err != nil {
		log.WithError(err).Error("expire help requests")
		return err
	}

	if count > 0 {
		log.WithField("count", count).Info("help requests expired")
	}
	return nil
}

// NotifyHelpExpired tells the author that a request expired without a match
func (b *Background) NotifyHelpExpired(ctx context.Context, authorID, helpID string) error {
	return b.NotifyActorByTemplate(ctx, authorID, messageHelpExpired, nil,
		notificationData(NotificationHelpExpired, map[string]interface{}{"help_id": helpID}),
	)
}

// ensure the message catalogue carries every message used by the workers
func checkMessages() error {
	for _, id := range []string{messageContactShared, messageHelpExpired} {
		if _, err := utils.LocalizeAll(id+".heading", nil); err != nil {
			return err
		}
	}
	return nil
}
