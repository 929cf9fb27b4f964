package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"
)

// Fixed delivery hints understood by the mobile app.
const (
	ClickAction      = "FLUTTER_NOTIFICATION_CLICK"
	AndroidChannelID = "forager_notifications"
	AndroidIcon      = "ic_notification"
	AndroidColor     = "#4CAF50"
	APNSSound        = "default"
	APNSBadge        = 1
)

// Messenger sends a single FCM message. *messaging.Client satisfies it.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Dispatcher sends push notifications, one attempt per call.
type Dispatcher struct {
	messenger Messenger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(messenger Messenger) *Dispatcher {
	return &Dispatcher{messenger: messenger}
}

// Send pushes n to token. A nil error means FCM accepted the message.
// Failures are logged here and returned for the caller's outcome.
func (d *Dispatcher) Send(ctx context.Context, token string, n Rendered) error {
	if token == "" {
		return errors.New("no destination token")
	}

	if _, err := d.messenger.Send(ctx, NewMessage(token, n)); err != nil {
		log.Printf("Error sending notification to token %s...: %v", tokenPrefix(token), err)
		return fmt.Errorf("send push: %w", err)
	}
	log.Printf("Notification sent successfully to token: %s...", tokenPrefix(token))
	return nil
}

// NewMessage builds the FCM message for n, adding the click action to the payload.
func NewMessage(token string, n Rendered) *messaging.Message {
	data := make(map[string]string, len(n.Data)+1)
	for k, v := range n.Data {
		data[k] = v
	}
	data["click_action"] = ClickAction

	priority := n.Priority
	if priority == "" {
		priority = PriorityHigh
	}
	badge := APNSBadge

	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: string(priority),
			Notification: &messaging.AndroidNotification{
				ChannelID: AndroidChannelID,
				Icon:      AndroidIcon,
				Color:     AndroidColor,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: APNSSound,
					Badge: &badge,
				},
			},
		},
	}
}

func tokenPrefix(token string) string {
	if len(token) > 20 {
		return token[:20]
	}
	return token
}
