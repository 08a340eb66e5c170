package background

import (
	"context"

	"github.com/bitmark-inc/autonomy-nearby/external/notification"
	"github.com/bitmark-inc/autonomy-nearby/utils"
)

// NotifyActorByTemplate renders the heading and content of a message in every
// loaded language and sends them to an actor
func (b *Background) NotifyActorByTemplate(ctx context.Context, actorID, messageID string, templateData, data map[string]interface{}) error {
	headings, err := utils.LocalizeAll(messageID+".heading", templateData)
	if err != nil {
		return err
	}

	contents, err := utils.LocalizeAll(messageID+".content", templateData)
	if err != nil {
		return err
	}

	return b.NotifyActorByText(ctx, actorID, headings, contents, data)
}

// NotifyActorByText will send message to an actor by raw headings, contents and data
func (b *Background) NotifyActorByText(ctx context.Context, actorID string, headings, contents map[string]string, data map[string]interface{}) error {
	return b.Notifier.Send(ctx, &notification.Request{
		ActorID:  actorID,
		Headings: headings,
		Contents: contents,
		Data:     data,
	})
}
