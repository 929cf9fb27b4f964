package repositories

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/anonto42/forager-notifier/internal/models"
)

// PostRepository defines the read operations the notifier needs on posts
type PostRepository interface {
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
}

// FirestorePostRepository implements PostRepository over the Posts collection
type FirestorePostRepository struct {
	collection *firestore.CollectionRef
}

// NewFirestorePostRepository creates a new FirestorePostRepository
func NewFirestorePostRepository(client *firestore.Client) *FirestorePostRepository {
	return &FirestorePostRepository{collection: client.Collection("Posts")}
}

// GetPostByID retrieves a post by ID
func (r *FirestorePostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	snap, err := r.collection.Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}

	// Decode through the loose map so odd likes entries don't fail the whole read.
	post := models.PostFromData(snap.Ref.ID, snap.Data())
	return &post, nil
}
