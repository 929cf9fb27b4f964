package models

import "time"

// NotificationType is one of the four kinds of social notification.
type NotificationType string

const (
	NotificationFriendRequest  NotificationType = "friend_request"
	NotificationFriendAccepted NotificationType = "friend_accepted"
	NotificationPostLike       NotificationType = "post_like"
	NotificationPostComment    NotificationType = "post_comment"
)

// Valid reports whether t is one of the known notification types.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationFriendRequest, NotificationFriendAccepted, NotificationPostLike, NotificationPostComment:
		return true
	}
	return false
}

// Notification is a record in Users/{recipient}/Notifications. The same struct is
// mirrored to Postgres and Mongo when those archives are configured.
// Optional ids are pointers so Firestore stores an explicit null, which the app expects.
type Notification struct {
	ID              string           `json:"id" firestore:"-" gorm:"primaryKey;size:64" bson:"_id"`
	RecipientID     string           `json:"recipientId" firestore:"-" gorm:"size:320;index" bson:"recipient_id"`
	Type            NotificationType `json:"type" firestore:"type" gorm:"size:30;index" bson:"type"`
	Title           string           `json:"title" firestore:"title" bson:"title"`
	Body            string           `json:"body" firestore:"body" bson:"body"`
	FromEmail       *string          `json:"fromEmail" firestore:"fromEmail" gorm:"size:320" bson:"from_email"`
	FromDisplayName *string          `json:"fromDisplayName" firestore:"fromDisplayName" bson:"from_display_name"`
	PostID          *string          `json:"postId" firestore:"postId" bson:"post_id"`
	RequestID       *string          `json:"requestId" firestore:"requestId" bson:"request_id"`
	CommentID       *string          `json:"commentId" firestore:"commentId" bson:"comment_id"`
	IsRead          bool             `json:"isRead" firestore:"isRead" gorm:"default:false;index" bson:"is_read"`
	CreatedAt       time.Time        `json:"createdAt" firestore:"createdAt" gorm:"index" bson:"created_at"`
}
