package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/anonto42/forager-notifier/internal/models"
	"github.com/anonto42/forager-notifier/internal/repositories"
)

// ErrUnknownType is returned for a notification whose type is not one of the four known kinds.
var ErrUnknownType = errors.New("unknown notification type")

// StoreWriter appends rendered notifications to the recipient's in-app history.
type StoreWriter struct {
	repo repositories.NotificationRepository
	now  func() time.Time
}

// NewStoreWriter creates a new StoreWriter
func NewStoreWriter(repo repositories.NotificationRepository) *StoreWriter {
	return &StoreWriter{repo: repo, now: time.Now}
}

// Store writes one unread record for recipientID. The error is logged here;
// callers only use it to decide what to report.
func (w *StoreWriter) Store(ctx context.Context, recipientID string, n Rendered) error {
	if !n.Type.Valid() {
		log.Printf("Refusing to store notification for %s: type %q", recipientID, n.Type)
		return fmt.Errorf("%w: %q", ErrUnknownType, n.Type)
	}
	record := NewRecord(recipientID, n, w.now())

	err := w.repo.CreateNotification(ctx, record)
	switch {
	case err == nil:
		log.Printf("Notification stored for %s", recipientID)
	case errors.Is(err, repositories.ErrMirror):
		log.Printf("Notification stored for %s, archive incomplete: %v", recipientID, err)
		return nil
	default:
		log.Printf("Error storing notification for %s: %v", recipientID, err)
	}
	return err
}

// NewRecord maps a rendered notification onto the stored record. The actor id is
// taken from fromEmail, then likerEmail, then commenterEmail.
func NewRecord(recipientID string, n Rendered, createdAt time.Time) *models.Notification {
	return &models.Notification{
		RecipientID:     recipientID,
		Type:            n.Type,
		Title:           n.Title,
		Body:            n.Body,
		FromEmail:       optional(FirstNonBlank(n.Data[KeyFromEmail], n.Data[KeyLikerEmail], n.Data[KeyCommenterEmail])),
		FromDisplayName: optional(n.Data[KeyFromDisplayName]),
		PostID:          optional(n.Data[KeyPostID]),
		RequestID:       optional(n.Data[KeyRequestID]),
		CommentID:       optional(n.Data[KeyCommentID]),
		IsRead:          false,
		CreatedAt:       createdAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
