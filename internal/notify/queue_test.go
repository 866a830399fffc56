package notify

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/montero2/HERFISH-PROJECT/jobs"
)

func TestQueueSenderEnqueues(t *testing.T) {
	mr := miniredis.RunT(t)

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer client.Close()
	sender := NewQueueSender(client)
	ctx := context.Background()

	require.NoError(t, sender.SendEmail(ctx, "buyer@freshmart.com", "Order placed", "Order SO-001 was placed."))
	require.NoError(t, sender.SendSMS(ctx, "+254700000001", "Order SO-001 was placed."))

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks(jobs.QueueNotifications)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, jobs.TaskTypeSendEmail, pending[0].Type)
	require.Equal(t, jobs.TaskTypeSendSMS, pending[1].Type)
}
