package background

import (
	"context"

	"github.com/RichardKnop/machinery/v1/backends/result"
	"github.com/RichardKnop/machinery/v1/tasks"

	"github.com/bitmark-inc/autonomy-nearby/consts"
)

// TaskSender publishes tasks to the machinery broker
type TaskSender interface {
	SendTaskWithContext(ctx context.Context, signature *tasks.Signature) (*result.AsyncResult, error)
}

// ContactEnqueuer hands contact handles over to the background worker
type ContactEnqueuer struct {
	sender TaskSender
}

func NewContactEnqueuer(sender TaskSender) *ContactEnqueuer {
	return &ContactEnqueuer{
		sender: sender,
	}
}

// DeliverContact queues a deliver_contact task. It returns once the broker
// accepted the task.
func (e *ContactEnqueuer) DeliverContact(ctx context.Context, actorID, handle string) error {
	if actorID == "" {
		return ErrEmptyActor
	}
	if handle == "" {
		return ErrEmptyHandle
	}

	_, err := e.sender.SendTaskWithContext(ctx, &tasks.Signature{
		Name: consts.TaskDeliverContact,
		Args: []tasks.Arg{
			{Type: "string", Value: actorID},
			{Type: "string", Value: handle},
		},
	})
	return err
}
