package models

import "strings"

// Friend request statuses the notifier cares about. Anything else is ignored.
const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
)

// FriendRequest is a Users/{owner}/FriendRequests/{requestId} document.
// Both the sender and the recipient hold a copy; the sender's copy has FromEmail == owner.
type FriendRequest struct {
	ID              string `json:"id" firestore:"-"`
	FromEmail       string `json:"fromEmail" firestore:"fromEmail"`
	FromDisplayName string `json:"fromDisplayName,omitempty" firestore:"fromDisplayName,omitempty"`
	Status          string `json:"status" firestore:"status"`
	Message         string `json:"message,omitempty" firestore:"message,omitempty"`
}

// FriendRequestFromData reads a friend request out of a loosely typed document map.
func FriendRequestFromData(id string, data map[string]any) FriendRequest {
	return FriendRequest{
		ID:              id,
		FromEmail:       StringField(data, "fromEmail"),
		FromDisplayName: StringField(data, "fromDisplayName"),
		Status:          StringField(data, "status"),
		Message:         StringField(data, "message"),
	}
}

// HasMessage reports whether the sender attached a non-blank note.
func (r FriendRequest) HasMessage() bool {
	return strings.TrimSpace(r.Message) != ""
}
