// Package notifications holds the building blocks shared by every trigger:
// preference and display-name lookups, rendering of title/body/payload,
// the in-app history writer and the FCM push dispatcher.
package notifications
