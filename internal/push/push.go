// Package push delivers notifications to user devices through FCM, honoring
// per-user quiet hours. Delivery is best-effort: failures are logged, never
// propagated to the request that triggered them.
package push

import (
	"context"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/campuslink-app/backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Sender is the subset of the FCM client the notifier needs.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Notifier dispatches push messages for in-app notifications.
type Notifier struct {
	client Sender
	clock  func() time.Time
	log    *logrus.Logger
}

// NewNotifier creates a Notifier. client may be nil, in which case every
// dispatch is a no-op (push disabled deployments).
func NewNotifier(client Sender, log *logrus.Logger) *Notifier {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Notifier{client: client, clock: time.Now, log: log}
}

// NotifyUser pushes a notification to the recipient's registered device,
// unless the recipient has no device token or is inside their quiet hours.
func (n *Notifier) NotifyUser(ctx context.Context, recipient *models.User, notif *models.Notification) {
	if n == nil || n.client == nil || recipient.DeviceToken == "" {
		return
	}

	if n.inQuietHours(recipient) {
		n.log.WithFields(logrus.Fields{
			"recipient_id": recipient.ID,
			"type":         notif.Type,
		}).Debug("push: suppressed by quiet hours")
		return
	}

	msg := &messaging.Message{
		Token: recipient.DeviceToken,
		Notification: &messaging.Notification{
			Title: "CampusLink",
			Body:  notif.Message,
		},
		Data: map[string]string{
			"type":        notif.Type,
			"target_type": notif.TargetType,
			"target_id":   notif.TargetID,
		},
	}

	if _, err := n.client.Send(ctx, msg); err != nil {
		n.log.WithError(err).WithField("recipient_id", recipient.ID).
			Warn("push: FCM dispatch failed")
	}
}

func (n *Notifier) inQuietHours(recipient *models.User) bool {
	if recipient.QuietHoursStart == "" || recipient.QuietHoursEnd == "" {
		return false
	}

	loc := time.UTC
	if recipient.Timezone != "" {
		if l, err := time.LoadLocation(recipient.Timezone); err == nil {
			loc = l
		}
	}
	return withinWindow(n.clock().In(loc), recipient.QuietHoursStart, recipient.QuietHoursEnd)
}

// withinWindow reports whether now falls inside the [start, end) clock window.
// Windows may wrap midnight ("22:00"–"07:00"). Unparseable bounds disable the
// window rather than suppressing delivery.
func withinWindow(now time.Time, start, end string) bool {
	s, err1 := time.Parse("15:04", start)
	e, err2 := time.Parse("15:04", end)
	if err1 != nil || err2 != nil {
		return false
	}

	nowMin := now.Hour()*60 + now.Minute()
	startMin := s.Hour()*60 + s.Minute()
	endMin := e.Hour()*60 + e.Minute()

	if startMin == endMin {
		return false
	}
	if startMin < endMin {
		return nowMin >= startMin && nowMin < endMin
	}
	// Wraps midnight
	return nowMin >= startMin || nowMin < endMin
}
