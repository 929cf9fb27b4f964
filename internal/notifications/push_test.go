package notifications

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/anonto42/forager-notifier/internal/models"
)

type recordingMessenger struct {
	sent []*messaging.Message
	err  error
}

func (m *recordingMessenger) Send(_ context.Context, message *messaging.Message) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, message)
	return "projects/test/messages/1", nil
}

func TestDispatcherSend(t *testing.T) {
	messenger := &recordingMessenger{}
	d := NewDispatcher(messenger)

	rendered := RenderPostLike(models.Post{ID: "p1", Name: "Morels"}, "cy@example.com", "Cy")
	if err := d.Send(context.Background(), "device-token-0123456789abcdef", rendered); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(messenger.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(messenger.sent))
	}

	msg := messenger.sent[0]
	if msg.Token != "device-token-0123456789abcdef" {
		t.Errorf("token = %q", msg.Token)
	}
	if msg.Notification.Title != rendered.Title || msg.Notification.Body != rendered.Body {
		t.Errorf("notification = %+v", msg.Notification)
	}
	if msg.Data["click_action"] != "FLUTTER_NOTIFICATION_CLICK" {
		t.Errorf("click_action = %q", msg.Data["click_action"])
	}
	if msg.Data["type"] != "post_like" || msg.Data["postId"] != "p1" {
		t.Errorf("data = %v", msg.Data)
	}
	if _, ok := rendered.Data["click_action"]; ok {
		t.Error("rendered payload must not be mutated")
	}
	if msg.Android.Priority != "normal" {
		t.Errorf("android priority = %q, want normal", msg.Android.Priority)
	}
	an := msg.Android.Notification
	if an.ChannelID != "forager_notifications" || an.Icon != "ic_notification" || an.Color != "#4CAF50" {
		t.Errorf("android notification = %+v", an)
	}
	aps := msg.APNS.Payload.Aps
	if aps.Sound != "default" || aps.Badge == nil || *aps.Badge != 1 {
		t.Errorf("aps = %+v", aps)
	}
}

func TestNewMessageDefaultsToHighPriority(t *testing.T) {
	msg := NewMessage("tok", Rendered{Title: "t", Body: "b"})
	if msg.Android.Priority != "high" {
		t.Errorf("priority = %q, want high", msg.Android.Priority)
	}
}

func TestDispatcherSendFailure(t *testing.T) {
	transportErr := errors.New("registration-token-not-registered")
	d := NewDispatcher(&recordingMessenger{err: transportErr})

	err := d.Send(context.Background(), "tok", RenderFriendAccepted("b@example.com", "Bo"))
	if !errors.Is(err, transportErr) {
		t.Fatalf("err = %v, want wrapping %v", err, transportErr)
	}
}

func TestDispatcherRejectsEmptyToken(t *testing.T) {
	messenger := &recordingMessenger{}
	if err := NewDispatcher(messenger).Send(context.Background(), "", Rendered{}); err == nil {
		t.Fatal("expected error for empty token")
	}
	if len(messenger.sent) != 0 {
		t.Error("nothing should be sent without a token")
	}
}
