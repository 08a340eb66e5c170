package expiry

import (
	"github.com/uber-go/tally"
	"go.uber.org/cadence/.gen/go/cadence/workflowserviceclient"
	"go.uber.org/cadence/activity"
	"go.uber.org/cadence/worker"
	"go.uber.org/cadence/workflow"
	"go.uber.org/zap"

	"github.com/bitmark-inc/autonomy-nearby/background"
	"github.com/bitmark-inc/autonomy-nearby/consts"
	"github.com/bitmark-inc/autonomy-nearby/external/cadence"
	"github.com/bitmark-inc/autonomy-nearby/external/notification"
	"github.com/bitmark-inc/autonomy-nearby/nearby"
)

// HelpExpiryWorker sweeps each help request at its own expiry
type HelpExpiryWorker struct {
	background.Background
	domain   string
	registry *nearby.Registry
}

func NewHelpExpiryWorker(domain string, registry *nearby.Registry, notifier notification.Gateway) *HelpExpiryWorker {
	return &HelpExpiryWorker{
		Background: background.Background{Notifier: notifier},
		domain:     domain,
		registry:   registry,
	}
}

func (h *HelpExpiryWorker) Register() {
	workflow.RegisterWithOptions(h.HelpExpiryWorkflow, workflow.RegisterOptions{Name: consts.HelpExpiryWorkflowName})

	activity.RegisterWithOptions(h.ExpireHelpActivity, activity.RegisterOptions{Name: "ExpireHelpActivity"})
	activity.RegisterWithOptions(h.NotifyHelpExpiredActivity, activity.RegisterOptions{Name: "NotifyHelpExpiredActivity"})
}

func (h *HelpExpiryWorker) Start(service workflowserviceclient.Interface, logger *zap.Logger) {
	workerOptions := worker.Options{
		Logger:        logger,
		MetricsScope:  tally.NewTestScope(consts.HelpExpiryTaskList, map[string]string{}),
		DataConverter: cadence.NewMsgPackDataConverter(),
	}

	worker := worker.New(
		service,
		h.domain,
		consts.HelpExpiryTaskList,
		workerOptions)

	if err := worker.Start(); err != nil {
		panic("Failed to start worker")
	}

	logger.Info("Started Worker.", zap.String("worker", consts.HelpExpiryTaskList))

	select {}
}
