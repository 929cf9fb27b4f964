package notifications

import (
	"context"
	"errors"
	"log"

	"github.com/anonto42/forager-notifier/internal/repositories"
)

// Preferences is what the push gate needs to know about a recipient.
// An empty Token means the user has no registered device.
type Preferences struct {
	Token         string
	SocialEnabled bool
	Enabled       bool
}

// PushEligible reports whether a social push may be sent.
func (p Preferences) PushEligible() bool {
	return p.Token != "" && p.Enabled && p.SocialEnabled
}

// PreferenceResolver looks up notification preferences on user documents.
type PreferenceResolver struct {
	users repositories.UserRepository
}

// NewPreferenceResolver creates a new PreferenceResolver
func NewPreferenceResolver(users repositories.UserRepository) *PreferenceResolver {
	return &PreferenceResolver{users: users}
}

// Resolve never fails. A missing user or a failed lookup yields the zero
// Preferences, so no push is sent; that also reports SocialEnabled as false.
func (r *PreferenceResolver) Resolve(ctx context.Context, userID string) Preferences {
	user, err := r.users.GetUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Error getting notification info for %s: %v", userID, err)
		}
		return Preferences{}
	}

	prefs := Preferences{SocialEnabled: true, Enabled: true}
	if p := user.NotificationPreferences; p != nil {
		prefs.Token = p.FCMToken
		if p.SocialNotifications != nil {
			prefs.SocialEnabled = *p.SocialNotifications
		}
		if p.Enabled != nil {
			prefs.Enabled = *p.Enabled
		}
	}
	return prefs
}
