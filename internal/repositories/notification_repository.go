package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/anonto42/forager-notifier/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ErrMirror marks a notification that reached the primary store but not every mirror
var ErrMirror = errors.New("notification mirror write failed")

// NotificationRepository appends notification records to a recipient's history
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
}

// FirestoreNotificationRepository writes to Users/{recipient}/Notifications
type FirestoreNotificationRepository struct {
	users *firestore.CollectionRef
}

// NewFirestoreNotificationRepository creates a new FirestoreNotificationRepository
func NewFirestoreNotificationRepository(client *firestore.Client) *FirestoreNotificationRepository {
	return &FirestoreNotificationRepository{users: client.Collection("Users")}
}

// CreateNotification stores the notification under its recipient. An empty ID is
// filled with a Firestore-generated one so mirrors can reuse it.
func (r *FirestoreNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if notification.RecipientID == "" {
		return fmt.Errorf("notification has no recipient")
	}

	history := r.users.Doc(notification.RecipientID).Collection("Notifications")
	var ref *firestore.DocumentRef
	if notification.ID == "" {
		ref = history.NewDoc()
		notification.ID = ref.ID
	} else {
		ref = history.Doc(notification.ID)
	}

	if _, err := ref.Create(ctx, notification); err != nil {
		return fmt.Errorf("store notification for %s: %w", notification.RecipientID, err)
	}
	return nil
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates an archive mirror backed by a notifications table
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

type mongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates an archive mirror backed by a notifications collection
func NewMongoNotificationRepository(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepository{collection: db.Collection("notifications")}
}

func (r *mongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

// fanoutNotificationRepository writes to a primary store and then to every mirror.
// The primary must succeed first; mirrors are attempted once each and their
// failures are joined under ErrMirror.
type fanoutNotificationRepository struct {
	primary NotificationRepository
	mirrors []NotificationRepository
}

// NewFanoutNotificationRepository returns primary unchanged when there are no mirrors
func NewFanoutNotificationRepository(primary NotificationRepository, mirrors ...NotificationRepository) NotificationRepository {
	if len(mirrors) == 0 {
		return primary
	}
	return &fanoutNotificationRepository{primary: primary, mirrors: mirrors}
}

func (r *fanoutNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if err := r.primary.CreateNotification(ctx, notification); err != nil {
		return err
	}

	var errs []error
	for _, mirror := range r.mirrors {
		if err := mirror.CreateNotification(ctx, notification); err != nil {
			log.Printf("Error mirroring notification %s: %v", notification.ID, err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrMirror, errors.Join(errs...))
	}
	return nil
}
