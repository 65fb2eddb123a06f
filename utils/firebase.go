package utils

import (
	"context"
	"log"

	"ninjaservices/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMClient is the global Firebase Cloud Messaging client.
var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase app and the FCM client.
func FirebaseInit() {
	ctx := context.Background()

	var opts []option.ClientOption
	if config.AppConfig.FirebaseCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.FirebaseCredentials))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	FCMClient, err = app.Messaging(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize FCM client: %v", err)
	}
}
