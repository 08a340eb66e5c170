package cadence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/cadence/client"
	"go.uber.org/cadence/workflow"

	"github.com/bitmark-inc/autonomy-nearby/consts"
	"github.com/bitmark-inc/autonomy-nearby/schema"
)

type recordingStarter struct {
	options client.StartWorkflowOptions
	wf      interface{}
	args    []interface{}
	err     error
}

func (r *recordingStarter) StartWorkflow(ctx context.Context, options client.StartWorkflowOptions, wf interface{}, args ...interface{}) (*workflow.Execution, error) {
	r.options = options
	r.wf = wf
	r.args = args
	if r.err != nil {
		return nil, r.err
	}
	return &workflow.Execution{ID: options.ID, RunID: "run"}, nil
}

func TestScheduleExpiry(t *testing.T) {
	starter := &recordingStarter{}
	scheduler := NewHelpExpiryScheduler(starter)

	expiresAt := time.Now().Add(consts.HelpRequestTTL)
	err := scheduler.ScheduleExpiry(context.Background(), schema.HelpRequest{
		ID:        "help1",
		ExpiresAt: expiresAt,
	})
	assert.NoError(t, err)

	assert.Equal(t, "help-expiry-help1", starter.options.ID)
	assert.Equal(t, consts.HelpExpiryTaskList, starter.options.TaskList)
	assert.True(t, starter.options.ExecutionStartToCloseTimeout > consts.HelpRequestTTL)
	assert.Equal(t, consts.HelpExpiryWorkflowName, starter.wf)
	assert.Equal(t, []interface{}{"help1", expiresAt}, starter.args)
}

func TestScheduleExpiryError(t *testing.T) {
	starter := &recordingStarter{err: errors.New("no frontend")}
	scheduler := NewHelpExpiryScheduler(starter)

	err := scheduler.ScheduleExpiry(context.Background(), schema.HelpRequest{ID: "help1"})
	assert.Error(t, err)
}

func TestMsgPackDataConverter(t *testing.T) {
	c := NewMsgPackDataConverter()

	at := time.Date(2020, 5, 25, 9, 30, 0, 0, time.UTC)
	data, err := c.ToData("help1", at)
	assert.NoError(t, err)

	var id string
	var decoded time.Time
	assert.NoError(t, c.FromData(data, &id, &decoded))
	assert.Equal(t, "help1", id)
	assert.True(t, at.Equal(decoded))
}
