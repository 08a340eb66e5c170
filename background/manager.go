package background

import (
	"context"
	"errors"
	"time"

	"github.com/RichardKnop/machinery/v1"
	"github.com/RichardKnop/machinery/v1/tasks"

	"github.com/bitmark-inc/autonomy-nearby/consts"
	"github.com/bitmark-inc/autonomy-nearby/external/notification"
	"github.com/bitmark-inc/autonomy-nearby/nearby"
)

// BackgroundManager is a struct for autonomy background manager
type BackgroundManager struct {
	Background

	registry *nearby.Registry

	taskServer *machinery.Server

	worker *machinery.Worker
}

func New(registry *nearby.Registry, notifier notification.Gateway, taskServer *machinery.Server) *BackgroundManager {
	return &BackgroundManager{
		Background: Background{Notifier: notifier},
		registry:   registry,
		taskServer: taskServer,
	}
}

func (m *BackgroundManager) RegisterTask(name string, taskFunc interface{}) error {
	return m.taskServer.RegisterTask(name, taskFunc)
}

// RegisterTasks registers every task the worker serves
func (m *BackgroundManager) RegisterTasks() error {
	if err := m.RegisterTask(consts.TaskDeliverContact, m.DeliverContact); err != nil {
		return err
	}
	return m.RegisterTask(consts.TaskExpireHelpRequests, m.ExpireHelpRequests)
}

// Run spawn workers to execute background jobs
func (m *BackgroundManager) Run() error {
	if m.worker != nil {
		return errors.New("background worker has started")
	}

	if err := checkMessages(); err != nil {
		return err
	}

	m.worker = m.taskServer.NewWorker(consts.BackgroundWorkerName, consts.BackgroundWorkerParallel)
	return m.worker.Launch()
}

// ScheduleSweeps queues an expire_help_requests task every interval until
// ctx is done
func ScheduleSweeps(ctx context.Context, sender TaskSender, interval time.Duration) {
	if interval <= 0 {
		interval = consts.DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := sender.SendTaskWithContext(ctx, &tasks.Signature{
				Name: consts.TaskExpireHelpRequests,
			}); err != nil {
				log.WithError(err).Warn("queue help request sweep")
			}
		}
	}
}
