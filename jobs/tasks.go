// Package jobs defines the background delivery tasks processed by the
// asynq worker. Notification delivery runs here so business operations
// never wait on an external provider.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueNotifications carries outbound email and SMS deliveries.
	QueueNotifications = "notifications"
	// TaskTypeSendEmail is the task type for transactional emails.
	TaskTypeSendEmail = "notify:email"
	// TaskTypeSendSMS is the task type for SMS deliveries.
	TaskTypeSendSMS = "notify:sms"
)

// SendEmailPayload describes an outbound email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendSMSPayload describes an outbound SMS.
type SendSMSPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// NewSendEmailTask constructs an email delivery task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewSendSMSTask constructs an SMS delivery task.
func NewSendSMSTask(payload SendSMSPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendSMS, data), nil
}

// EmailSender delivers one email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers one SMS.
type SMSSender interface {
	Send(ctx context.Context, to, message string) error
}

// NotificationTasks holds the provider clients used by the delivery
// handlers. A nil provider makes its handler a logged no-op, matching
// the best-effort contract.
type NotificationTasks struct {
	Mailer EmailSender
	SMS    SMSSender
	Logger *slog.Logger
}

// HandleSendEmail processes TaskTypeSendEmail tasks.
func (t *NotificationTasks) HandleSendEmail(ctx context.Context, task *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if t.Mailer == nil {
		t.Logger.Debug("mailer not configured, dropping email", slog.String("to", payload.To))
		return nil
	}
	if err := t.Mailer.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		t.Logger.Warn("email delivery failed", slog.String("to", payload.To), slog.Any("error", err))
		return err
	}
	return nil
}

// HandleSendSMS processes TaskTypeSendSMS tasks.
func (t *NotificationTasks) HandleSendSMS(ctx context.Context, task *asynq.Task) error {
	var payload SendSMSPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if t.SMS == nil {
		t.Logger.Debug("sms provider not configured, dropping message", slog.String("to", payload.To))
		return nil
	}
	if err := t.SMS.Send(ctx, payload.To, payload.Message); err != nil {
		t.Logger.Warn("sms delivery failed", slog.String("to", payload.To), slog.Any("error", err))
		return err
	}
	return nil
}
