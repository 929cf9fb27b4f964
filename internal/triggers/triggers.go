package triggers

import (
	"context"
	"errors"
	"log"
	"slices"
	"strings"

	"github.com/anonto42/forager-notifier/internal/models"
	"github.com/anonto42/forager-notifier/internal/notifications"
	"github.com/anonto42/forager-notifier/internal/repositories"
)

// Event is one document change. Before is nil for creations, After is nil when
// the document is gone; both are loosely typed field maps.
type Event struct {
	Params map[string]string
	Before map[string]any
	After  map[string]any
}

// Outcome reports which exit a handler took.
type Outcome struct {
	Trigger   string `json:"trigger"`
	Recipient string `json:"recipient,omitempty"`
	Stored    bool   `json:"stored"`
	Pushed    bool   `json:"pushed"`
	Skipped   string `json:"skipped,omitempty"`
}

// Trigger names, used in logs and outcomes.
const (
	TriggerFriendRequestCreated = "onFriendRequestCreated"
	TriggerFriendRequestUpdated = "onFriendRequestUpdated"
	TriggerPostLiked            = "onPostLiked"
	TriggerPostComment          = "onPostComment"
)

// Triggers holds the collaborators shared by the four handlers.
type Triggers struct {
	posts repositories.PostRepository
	prefs *notifications.PreferenceResolver
	names *notifications.NameResolver
	store *notifications.StoreWriter
	push  *notifications.Dispatcher
}

// New wires the handlers to their stores and the push service.
func New(users repositories.UserRepository, posts repositories.PostRepository, history repositories.NotificationRepository, messenger notifications.Messenger) *Triggers {
	return &Triggers{
		posts: posts,
		prefs: notifications.NewPreferenceResolver(users),
		names: notifications.NewNameResolver(users),
		store: notifications.NewStoreWriter(history),
		push:  notifications.NewDispatcher(messenger),
	}
}

func skip(trigger, reason string) Outcome {
	log.Printf("%s: skipping, %s", trigger, reason)
	return Outcome{Trigger: trigger, Skipped: reason}
}

// OnFriendRequestCreated notifies the recipient of a new pending request.
// Only the recipient's copy notifies; the sender's mirror copy has fromEmail == userId.
func (t *Triggers) OnFriendRequestCreated(ctx context.Context, ev Event) Outcome {
	const trigger = TriggerFriendRequestCreated
	if ev.After == nil {
		return skip(trigger, "no document")
	}

	recipient := ev.Params["userId"]
	req := models.FriendRequestFromData(ev.Params["requestId"], ev.After)
	if req.Status != models.FriendRequestPending {
		return skip(trigger, "request is not pending")
	}
	if req.FromEmail == recipient {
		return skip(trigger, "sender's own copy of request")
	}

	senderName := req.FromDisplayName
	if notifications.FirstNonBlank(senderName) == "" {
		senderName = t.names.DisplayName(ctx, req.FromEmail, "")
	}

	rendered := notifications.RenderFriendRequest(req.ID, req, senderName)
	return t.deliver(ctx, trigger, recipient, rendered)
}

// OnFriendRequestUpdated notifies the original sender when a request flips to accepted.
func (t *Triggers) OnFriendRequestUpdated(ctx context.Context, ev Event) Outcome {
	const trigger = TriggerFriendRequestUpdated
	if ev.Before == nil || ev.After == nil {
		return skip(trigger, "missing before or after snapshot")
	}

	before := models.FriendRequestFromData(ev.Params["requestId"], ev.Before)
	after := models.FriendRequestFromData(ev.Params["requestId"], ev.After)
	if before.Status == models.FriendRequestAccepted || after.Status != models.FriendRequestAccepted {
		return skip(trigger, "not a transition to accepted")
	}
	if after.FromEmail == "" {
		return skip(trigger, "no sender email found")
	}

	acceptor := ev.Params["userId"]
	acceptorName := t.names.DisplayName(ctx, acceptor, "")

	rendered := notifications.RenderFriendAccepted(acceptor, acceptorName)
	return t.deliver(ctx, trigger, after.FromEmail, rendered)
}

// OnPostLiked notifies the post owner about a net-new like.
func (t *Triggers) OnPostLiked(ctx context.Context, ev Event) Outcome {
	const trigger = TriggerPostLiked
	if ev.Before == nil || ev.After == nil {
		return skip(trigger, "missing before or after snapshot")
	}

	before := models.PostFromData(ev.Params["postId"], ev.Before)
	after := models.PostFromData(ev.Params["postId"], ev.After)
	if len(after.Likes) <= len(before.Likes) {
		return skip(trigger, "likes did not increase")
	}

	liker := newLiker(before.Likes, after.Likes)
	if liker == "" {
		return skip(trigger, "no new liker found")
	}
	if after.UserEmail == "" {
		return skip(trigger, "no post owner email found")
	}
	if liker == after.UserEmail {
		return skip(trigger, "self-like")
	}

	likerName := t.names.DisplayName(ctx, liker, "")

	rendered := notifications.RenderPostLike(after, liker, likerName)
	return t.deliver(ctx, trigger, after.UserEmail, rendered)
}

// newLiker returns the first non-blank id in after that is not in before.
func newLiker(before, after []string) string {
	for _, id := range after {
		if strings.TrimSpace(id) != "" && !slices.Contains(before, id) {
			return id
		}
	}
	return ""
}

// OnPostComment notifies the post owner about a comment from someone else.
func (t *Triggers) OnPostComment(ctx context.Context, ev Event) Outcome {
	const trigger = TriggerPostComment
	if ev.After == nil {
		return skip(trigger, "no document")
	}

	comment := models.CommentFromData(ev.Params["postId"], ev.Params["commentId"], ev.After)
	post, err := t.posts.GetPostByID(ctx, comment.PostID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("%s: error loading post %s: %v", trigger, comment.PostID, err)
		}
		return skip(trigger, "post not found")
	}
	if post.UserEmail == "" {
		return skip(trigger, "no post owner email found")
	}
	if comment.UserEmail == post.UserEmail {
		return skip(trigger, "self-comment")
	}

	// The comment usually carries the username, which saves a user lookup.
	commenterName := comment.Username
	if notifications.FirstNonBlank(commenterName) == "" {
		commenterName = t.names.DisplayName(ctx, comment.UserEmail, notifications.EmailLocalPart(comment.UserEmail))
	}

	rendered := notifications.RenderPostComment(comment, commenterName)
	return t.deliver(ctx, trigger, post.UserEmail, rendered)
}

// deliver stores the notification, then pushes it if the recipient allows.
// The history write always comes first so it survives a failed push.
func (t *Triggers) deliver(ctx context.Context, trigger, recipient string, n notifications.Rendered) Outcome {
	out := Outcome{Trigger: trigger, Recipient: recipient}

	out.Stored = t.store.Store(ctx, recipient, n) == nil

	prefs := t.prefs.Resolve(ctx, recipient)
	if !prefs.PushEligible() {
		log.Printf("%s: push skipped for %s (no token or disabled)", trigger, recipient)
		out.Skipped = "push disabled"
		return out
	}

	out.Pushed = t.push.Send(ctx, prefs.Token, n) == nil
	return out
}
