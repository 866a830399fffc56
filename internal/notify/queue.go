package notify

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/montero2/HERFISH-PROJECT/jobs"
)

// QueueSender implements Outbound by enqueueing delivery tasks for the
// background worker. Enqueueing is cheap and never blocks on the
// provider, which keeps the fire-and-forget contract.
type QueueSender struct {
	client *asynq.Client
}

// NewQueueSender wraps an asynq client.
func NewQueueSender(client *asynq.Client) *QueueSender {
	return &QueueSender{client: client}
}

// SendEmail enqueues an email delivery task.
func (q *QueueSender) SendEmail(ctx context.Context, to, subject, body string) error {
	task, err := jobs.NewSendEmailTask(jobs.SendEmailPayload{To: to, Subject: subject, Body: body})
	if err != nil {
		return err
	}
	_, err = q.client.EnqueueContext(ctx, task, asynq.Queue(jobs.QueueNotifications))
	return err
}

// SendSMS enqueues an SMS delivery task.
func (q *QueueSender) SendSMS(ctx context.Context, to, message string) error {
	task, err := jobs.NewSendSMSTask(jobs.SendSMSPayload{To: to, Message: message})
	if err != nil {
		return err
	}
	_, err = q.client.EnqueueContext(ctx, task, asynq.Queue(jobs.QueueNotifications))
	return err
}
