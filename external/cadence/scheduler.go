package cadence

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/cadence/client"

	"github.com/bitmark-inc/autonomy-nearby/consts"
	"github.com/bitmark-inc/autonomy-nearby/schema"
)

// expiryGrace keeps the workflow alive a little past the expiry it waits for
const expiryGrace = 10 * time.Minute

// HelpExpiryScheduler starts one expiry workflow per help request
type HelpExpiryScheduler struct {
	starter WorkflowStarter
}

func NewHelpExpiryScheduler(starter WorkflowStarter) *HelpExpiryScheduler {
	return &HelpExpiryScheduler{
		starter: starter,
	}
}

func HelpExpiryWorkflowID(helpID string) string {
	return fmt.Sprintf("help-expiry-%s", helpID)
}

func (s *HelpExpiryScheduler) ScheduleExpiry(ctx context.Context, help schema.HelpRequest) error {
	execution, err := s.starter.StartWorkflow(ctx, client.StartWorkflowOptions{
		ID:                           HelpExpiryWorkflowID(help.ID),
		TaskList:                     consts.HelpExpiryTaskList,
		ExecutionStartToCloseTimeout: time.Until(help.ExpiresAt) + expiryGrace,
		WorkflowIDReusePolicy:        client.WorkflowIDReusePolicyRejectDuplicate,
	}, consts.HelpExpiryWorkflowName, help.ID, help.ExpiresAt)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"prefix":      "cadence",
		"help_id":     help.ID,
		"workflow_id": execution.ID,
		"run_id":      execution.RunID,
	}).Debug("help expiry workflow started")

	return nil
}
