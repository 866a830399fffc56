// Package notify records in-app notifications and forwards them,
// best effort, to the external email and SMS providers. Delivery
// failure is logged and swallowed: it must never fail the business
// operation that triggered the notification.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
	"github.com/montero2/HERFISH-PROJECT/internal/observability"
)

// Outbound hands a message to an external delivery channel. The
// production implementation enqueues background tasks; tests plug in
// fakes.
type Outbound interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendSMS(ctx context.Context, to, message string) error
}

// Contacts holds the configured recipients for the fixed operator and
// distributor identities plus the provider enable flags.
type Contacts struct {
	EmailEnabled     bool
	SMSEnabled       bool
	OperatorEmail    string
	OperatorPhone    string
	DistributorEmail string
	DistributorPhone string
}

// Dispatcher is the notification fan-out point.
type Dispatcher struct {
	store    *ledger.Store
	outbound Outbound
	contacts Contacts
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewDispatcher builds a Dispatcher. outbound and metrics may be nil;
// a nil outbound skips external channels with a log line.
func NewDispatcher(store *ledger.Store, outbound Outbound, contacts Contacts, logger *slog.Logger, metrics *observability.Metrics) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{store: store, outbound: outbound, contacts: contacts, logger: logger, metrics: metrics}
}

var defaultChannels = []ledger.Channel{ledger.ChannelInApp, ledger.ChannelEmail, ledger.ChannelSMS}

// Notify records an unread in-app notification for the audience and
// forwards it over the default channel set.
func (d *Dispatcher) Notify(ctx context.Context, audience ledger.Audience, audienceID, title, message string) {
	d.NotifyChannels(ctx, audience, audienceID, title, message, defaultChannels)
}

// NotifyChannels records the in-app item and attempts external
// delivery for each requested channel. Errors never propagate.
func (d *Dispatcher) NotifyChannels(ctx context.Context, audience ledger.Audience, audienceID, title, message string, channels []ledger.Channel) ledger.NotificationItem {
	var item ledger.NotificationItem
	err := d.store.WithLock(func(tx *ledger.Tx) error {
		n := &ledger.NotificationItem{
			ID:         tx.NextID("NTF"),
			Audience:   audience,
			AudienceID: audienceID,
			Title:      title,
			Message:    message,
			Channels:   channels,
			CreatedAt:  time.Now(),
		}
		tx.PrependNotification(n)
		item = n.Clone()
		return nil
	})
	if err != nil {
		d.logger.Error("record notification", slog.Any("error", err))
		return item
	}
	d.metrics.NotificationRecorded(string(audience))

	for _, ch := range channels {
		switch ch {
		case ledger.ChannelEmail:
			d.forwardEmail(ctx, audience, audienceID, title, message)
		case ledger.ChannelSMS:
			d.forwardSMS(ctx, audience, audienceID, message)
		}
	}
	return item
}

func (d *Dispatcher) forwardEmail(ctx context.Context, audience ledger.Audience, audienceID, subject, body string) {
	if !d.contacts.EmailEnabled || d.outbound == nil {
		d.logger.Debug("email channel disabled, skipping", slog.String("audience", string(audience)))
		return
	}
	to := d.emailFor(audience, audienceID)
	if to == "" {
		d.logger.Debug("no email recipient, skipping", slog.String("audience", string(audience)), slog.String("audienceId", audienceID))
		return
	}
	if err := d.outbound.SendEmail(ctx, to, subject, body); err != nil {
		d.logger.Warn("email dispatch failed", slog.String("to", to), slog.Any("error", err))
	}
}

func (d *Dispatcher) forwardSMS(ctx context.Context, audience ledger.Audience, audienceID, message string) {
	if !d.contacts.SMSEnabled || d.outbound == nil {
		d.logger.Debug("sms channel disabled, skipping", slog.String("audience", string(audience)))
		return
	}
	to := d.phoneFor(audience, audienceID)
	if to == "" {
		d.logger.Debug("no sms recipient, skipping", slog.String("audience", string(audience)), slog.String("audienceId", audienceID))
		return
	}
	if err := d.outbound.SendSMS(ctx, to, message); err != nil {
		d.logger.Warn("sms dispatch failed", slog.String("to", to), slog.Any("error", err))
	}
}

func (d *Dispatcher) emailFor(audience ledger.Audience, audienceID string) string {
	switch audience {
	case ledger.AudienceCustomer:
		var email string
		_ = d.store.WithLock(func(tx *ledger.Tx) error {
			if acc, ok := tx.AccountByID(audienceID); ok {
				email = acc.Email
			}
			return nil
		})
		return email
	case ledger.AudienceOperator:
		return d.contacts.OperatorEmail
	case ledger.AudienceDistributor:
		return d.contacts.DistributorEmail
	}
	return ""
}

func (d *Dispatcher) phoneFor(audience ledger.Audience, audienceID string) string {
	switch audience {
	case ledger.AudienceCustomer:
		var phone string
		_ = d.store.WithLock(func(tx *ledger.Tx) error {
			if acc, ok := tx.AccountByID(audienceID); ok {
				phone = acc.Phone
			}
			return nil
		})
		return phone
	case ledger.AudienceOperator:
		return d.contacts.OperatorPhone
	case ledger.AudienceDistributor:
		return d.contacts.DistributorPhone
	}
	return ""
}

// ListForAudience returns notifications for the audience/id pair, most
// recent first.
func (d *Dispatcher) ListForAudience(ctx context.Context, audience ledger.Audience, audienceID string) ([]ledger.NotificationItem, error) {
	var out []ledger.NotificationItem
	err := d.store.WithLock(func(tx *ledger.Tx) error {
		for _, n := range tx.Notifications() {
			if n.Audience == audience && n.AudienceID == audienceID {
				out = append(out, n.Clone())
			}
		}
		return nil
	})
	return out, err
}

// MarkRead flips a notification to read, scoped to the exact owning
// audience/id pair; anything else resolves to not found.
func (d *Dispatcher) MarkRead(ctx context.Context, notificationID string, audience ledger.Audience, audienceID string) (ledger.NotificationItem, error) {
	var item ledger.NotificationItem
	err := d.store.WithLock(func(tx *ledger.Tx) error {
		for _, n := range tx.Notifications() {
			if n.ID == notificationID && n.Audience == audience && n.AudienceID == audienceID {
				n.Read = true
				item = n.Clone()
				return nil
			}
		}
		return fmt.Errorf("%w: notification %s", ledger.ErrNotFound, notificationID)
	})
	return item, err
}
