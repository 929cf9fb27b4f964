package firebase

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and the clients the notifier uses
type App struct {
	FirebaseApp *firebase.App
	Firestore   *firestore.Client
	Messaging   *messaging.Client
}

// InitFirebase initializes the Firebase application, Firestore and Cloud Messaging.
// An empty credentialsPath falls back to application default credentials,
// which is what a deployed function or the emulator provides.
func InitFirebase(ctx context.Context, credentialsPath, projectID string) (*App, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		// Check if the credentials file exists
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("Firebase credentials file not found at %s", credentialsPath)
		}
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	firebaseApp, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firestore client: %w", err)
	}

	messagingClient, err := firebaseApp.Messaging(ctx)
	if err != nil {
		firestoreClient.Close()
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	log.Println("Firebase app, Firestore and Messaging clients initialized successfully!")
	return &App{FirebaseApp: firebaseApp, Firestore: firestoreClient, Messaging: messagingClient}, nil
}

// Close releases the Firestore connection
func (a *App) Close() {
	if err := a.Firestore.Close(); err != nil {
		log.Printf("Error closing Firestore client: %v\n", err)
	}
}
