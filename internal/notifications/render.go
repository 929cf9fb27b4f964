package notifications

import (
	"fmt"

	"github.com/anonto42/forager-notifier/internal/models"
)

// PreviewLength is how many characters of free text make it into a body.
const PreviewLength = 50

// Priority is the Android delivery priority.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
)

// Payload keys shared with the mobile client. Values are always strings.
const (
	KeyType            = "type"
	KeyRequestID       = "requestId"
	KeyPostID          = "postId"
	KeyCommentID       = "commentId"
	KeyFromEmail       = "fromEmail"
	KeyFromDisplayName = "fromDisplayName"
	KeyFriendEmail     = "friendEmail"
	KeyLikerEmail      = "likerEmail"
	KeyCommenterEmail  = "commenterEmail"
)

// Rendered is a notification ready to be stored and pushed.
type Rendered struct {
	Type     models.NotificationType
	Title    string
	Body     string
	Data     map[string]string
	Priority Priority
}

// Truncate shortens s to PreviewLength characters plus "..." when it is longer.
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= PreviewLength {
		return s
	}
	return string(runes[:PreviewLength]) + "..."
}

// RenderFriendRequest builds the notification for a received friend request.
func RenderFriendRequest(requestID string, req models.FriendRequest, senderName string) Rendered {
	body := fmt.Sprintf("%s wants to connect with you!", senderName)
	if req.HasMessage() {
		body = fmt.Sprintf("%s: \"%s\"", senderName, Truncate(req.Message))
	}
	return Rendered{
		Type:  models.NotificationFriendRequest,
		Title: "New Friend Request",
		Body:  body,
		Data: map[string]string{
			KeyType:            string(models.NotificationFriendRequest),
			KeyRequestID:       requestID,
			KeyFromEmail:       req.FromEmail,
			KeyFromDisplayName: senderName,
		},
		Priority: PriorityHigh,
	}
}

// RenderFriendAccepted builds the notification telling a sender their request was accepted.
func RenderFriendAccepted(acceptorID, acceptorName string) Rendered {
	return Rendered{
		Type:  models.NotificationFriendAccepted,
		Title: "Friend Request Accepted",
		Body:  fmt.Sprintf("%s accepted your friend request!", acceptorName),
		Data: map[string]string{
			KeyType:            string(models.NotificationFriendAccepted),
			KeyFriendEmail:     acceptorID,
			KeyFromEmail:       acceptorID,
			KeyFromDisplayName: acceptorName,
		},
		Priority: PriorityHigh,
	}
}

// RenderPostLike builds the notification for a new like on a post.
func RenderPostLike(post models.Post, likerID, likerName string) Rendered {
	return Rendered{
		Type:  models.NotificationPostLike,
		Title: "Someone liked your post",
		Body:  fmt.Sprintf("%s liked \"%s\"", likerName, post.DisplayName()),
		Data: map[string]string{
			KeyType:            string(models.NotificationPostLike),
			KeyPostID:          post.ID,
			KeyLikerEmail:      likerID,
			KeyFromEmail:       likerID,
			KeyFromDisplayName: likerName,
		},
		Priority: PriorityNormal,
	}
}

// RenderPostComment builds the notification for a new comment on a post.
func RenderPostComment(comment models.Comment, commenterName string) Rendered {
	return Rendered{
		Type:  models.NotificationPostComment,
		Title: "New comment on your post",
		Body:  fmt.Sprintf("%s: %s", commenterName, Truncate(comment.Text)),
		Data: map[string]string{
			KeyType:            string(models.NotificationPostComment),
			KeyPostID:          comment.PostID,
			KeyCommentID:       comment.ID,
			KeyCommenterEmail:  comment.UserEmail,
			KeyFromEmail:       comment.UserEmail,
			KeyFromDisplayName: commenterName,
		},
		Priority: PriorityNormal,
	}
}
