// Package triggers implements the four document-change reactions:
// friend request created, friend request accepted, post liked and comment created.
//
// Each handler is a one-shot pipeline. It filters the event, resolves display
// names, renders the notification, stores it in the recipient's history and,
// when the recipient's preferences allow, sends a single push. Every exit is
// reported through an Outcome; nothing is retried and no error escapes.
package triggers
