package notifications

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/anonto42/forager-notifier/internal/repositories"
)

// FallbackName is used when nothing better is known about an actor.
const FallbackName = "Someone"

// NameResolver turns user ids into something to show in a notification.
type NameResolver struct {
	users repositories.UserRepository
}

// NewNameResolver creates a new NameResolver
func NewNameResolver(users repositories.UserRepository) *NameResolver {
	return &NameResolver{users: users}
}

// DisplayName prefers the user's display name, then username, then fallback,
// then FallbackName. Lookup failures are logged and fall through.
func (r *NameResolver) DisplayName(ctx context.Context, userID, fallback string) string {
	if userID != "" {
		user, err := r.users.GetUserByID(ctx, userID)
		switch {
		case err == nil:
			if name := strings.TrimSpace(user.DisplayName); name != "" {
				return name
			}
			if name := strings.TrimSpace(user.Username); name != "" {
				return name
			}
		case !errors.Is(err, repositories.ErrNotFound):
			log.Printf("Error resolving display name for %s: %v", userID, err)
		}
	}
	return FirstNonBlank(fallback, FallbackName)
}

// EmailLocalPart returns the part of id before the first "@".
func EmailLocalPart(id string) string {
	local, _, _ := strings.Cut(id, "@")
	return local
}

// FirstNonBlank returns the first value that is not empty or whitespace.
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
