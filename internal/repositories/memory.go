package repositories

import (
	"context"
	"sync"

	"github.com/anonto42/forager-notifier/internal/models"
	"github.com/google/uuid"
)

// MemoryStore is an in-process implementation of the user, post and notification
// repositories, used as a fake in tests.
type MemoryStore struct {
	mu            sync.Mutex
	users         map[string]*models.User
	posts         map[string]*models.Post
	notifications []models.Notification

	// Err, when set, is returned by every call.
	Err error
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*models.User),
		posts: make(map[string]*models.Post),
	}
}

// PutUser inserts or replaces a user
func (s *MemoryStore) PutUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = &user
}

// PutPost inserts or replaces a post
func (s *MemoryStore) PutPost(post models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = &post
}

// GetUserByID implements UserRepository
func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// GetPostByID implements PostRepository
func (s *MemoryStore) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	post, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *post
	return &copied, nil
}

// CreateNotification implements NotificationRepository
func (s *MemoryStore) CreateNotification(_ context.Context, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	s.notifications = append(s.notifications, *notification)
	return nil
}

// Notifications returns the stored notifications for recipient, oldest first
func (s *MemoryStore) Notifications(recipient string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for _, n := range s.notifications {
		if n.RecipientID == recipient {
			out = append(out, n)
		}
	}
	return out
}

// NotificationCount returns how many notifications were stored in total
func (s *MemoryStore) NotificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}
