package repositories

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/anonto42/forager-notifier/internal/models"
)

// UserRepository defines the read operations the notifier needs on user documents
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// FirestoreUserRepository implements UserRepository over the Users collection
type FirestoreUserRepository struct {
	collection *firestore.CollectionRef
}

// NewFirestoreUserRepository creates a new FirestoreUserRepository
func NewFirestoreUserRepository(client *firestore.Client) *FirestoreUserRepository {
	return &FirestoreUserRepository{collection: client.Collection("Users")}
}

// GetUserByID retrieves a user document by its id (the user's email)
func (r *FirestoreUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	snap, err := r.collection.Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	user.ID = snap.Ref.ID
	return &user, nil
}
