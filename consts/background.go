package consts

import "time"

const (
	// machinery
	BackgroundQueue          = "autonomy_nearby_background"
	TaskDeliverContact       = "deliver_contact"
	TaskExpireHelpRequests   = "expire_help_requests"
	DefaultSweepInterval     = 5 * time.Minute
	BackgroundWorkerName     = "autonomy-nearby-worker"
	BackgroundWorkerParallel = 5

	// cadence
	HelpExpiryTaskList     = "autonomy-help-expiry-tasks"
	HelpExpiryWorkflowName = "HelpExpiryWorkflow"
)
