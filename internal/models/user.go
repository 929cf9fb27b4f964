package models

// User is the Users/{email} document written by the mobile client.
// The notifier only ever reads it.
type User struct {
	ID                      string                   `json:"id" firestore:"-"`
	DisplayName             string                   `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	Username                string                   `json:"username,omitempty" firestore:"username,omitempty"`
	NotificationPreferences *NotificationPreferences `json:"notificationPreferences,omitempty" firestore:"notificationPreferences,omitempty"`
}

// NotificationPreferences is the preference sub-record on a user document.
// The booleans are pointers so a missing field can be told apart from an explicit false.
type NotificationPreferences struct {
	FCMToken            string `json:"fcmToken,omitempty" firestore:"fcmToken,omitempty"`
	SocialNotifications *bool  `json:"socialNotifications,omitempty" firestore:"socialNotifications,omitempty"`
	Enabled             *bool  `json:"enabled,omitempty" firestore:"enabled,omitempty"`
}
