package push

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/campuslink-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

type fakeSender struct {
	sent int32
}

func (f *fakeSender) Send(ctx context.Context, message *messaging.Message) (string, error) {
	atomic.AddInt32(&f.sent, 1)
	return "msg-id", nil
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 1, hour, minute, 0, 0, time.UTC)
}

func TestWithinWindowSameDay(t *testing.T) {
	assert.True(t, withinWindow(at(13, 0), "12:00", "14:00"))
	assert.True(t, withinWindow(at(12, 0), "12:00", "14:00"), "start is inclusive")
	assert.False(t, withinWindow(at(14, 0), "12:00", "14:00"), "end is exclusive")
	assert.False(t, withinWindow(at(11, 59), "12:00", "14:00"))
}

func TestWithinWindowWrapsMidnight(t *testing.T) {
	assert.True(t, withinWindow(at(23, 30), "22:00", "07:00"))
	assert.True(t, withinWindow(at(3, 0), "22:00", "07:00"))
	assert.False(t, withinWindow(at(12, 0), "22:00", "07:00"))
	assert.False(t, withinWindow(at(7, 0), "22:00", "07:00"))
	assert.True(t, withinWindow(at(22, 0), "22:00", "07:00"))
}

func TestWithinWindowDegenerate(t *testing.T) {
	assert.False(t, withinWindow(at(12, 0), "10:00", "10:00"), "empty window")
	assert.False(t, withinWindow(at(12, 0), "bogus", "10:00"))
	assert.False(t, withinWindow(at(12, 0), "10:00", ""))
}

func newTestNotifier(sender Sender, now time.Time) *Notifier {
	n := NewNotifier(sender, nil)
	n.clock = func() time.Time { return now }
	return n
}

func TestNotifyUserSends(t *testing.T) {
	sender := &fakeSender{}
	n := newTestNotifier(sender, at(12, 0))

	user := &models.User{ID: 1, DeviceToken: "tok"}
	n.NotifyUser(context.Background(), user, &models.Notification{Type: "like", Message: "someone liked your post"})

	assert.EqualValues(t, 1, sender.sent)
}

func TestNotifyUserSkipsDuringQuietHours(t *testing.T) {
	sender := &fakeSender{}
	n := newTestNotifier(sender, at(23, 0))

	user := &models.User{
		ID:              1,
		DeviceToken:     "tok",
		QuietHoursStart: "22:00",
		QuietHoursEnd:   "07:00",
	}
	n.NotifyUser(context.Background(), user, &models.Notification{Type: "like"})

	assert.Zero(t, sender.sent)
}

func TestNotifyUserSkipsWithoutDeviceToken(t *testing.T) {
	sender := &fakeSender{}
	n := newTestNotifier(sender, at(12, 0))

	n.NotifyUser(context.Background(), &models.User{ID: 1}, &models.Notification{Type: "follow"})

	assert.Zero(t, sender.sent)
}

func TestNotifyUserNilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil, nil)
	// Must not panic.
	n.NotifyUser(context.Background(), &models.User{ID: 1, DeviceToken: "tok"}, &models.Notification{})
}
