package expiry

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/cadence/workflow"
	"go.uber.org/zap"
)

var activityOptions = workflow.ActivityOptions{
	ScheduleToStartTimeout: time.Minute,
	StartToCloseTimeout:    time.Minute,
	HeartbeatTimeout:       time.Second * 20,
}

// HelpExpiryWorkflow waits until a help request expires, sweeps it, and tells
// the author when nobody resolved it in time
func (h *HelpExpiryWorker) HelpExpiryWorkflow(ctx workflow.Context, helpID string, expiresAt time.Time) error {
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	logger := workflow.GetLogger(ctx)

	if wait := expiresAt.Sub(workflow.Now(ctx)); wait > 0 {
		if err := workflow.Sleep(ctx, wait); err != nil {
			return err
		}
	}

	var result ExpiryResult
	if err := workflow.ExecuteActivity(ctx, h.ExpireHelpActivity, helpID).Get(ctx, &result); err != nil {
		logger.Error("Fail to expire help request", zap.Error(err), zap.String("helpID", helpID))
		sentry.CaptureException(err)
		return err
	}

	if !result.Expired {
		logger.Info("Help request closed before its expiry", zap.String("helpID", helpID))
		return nil
	}

	if err := workflow.ExecuteActivity(ctx, h.NotifyHelpExpiredActivity, result.AuthorID, helpID).Get(ctx, nil); err != nil {
		logger.Error("Fail to notify author", zap.Error(err), zap.String("helpID", helpID))
		sentry.CaptureException(err)
		return err
	}

	return nil
}
