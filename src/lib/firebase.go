package lib

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"triphub/src/types"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var innerApp *firebase.App
var innerAuth *auth.Client

func getOpts() option.ClientOption {
	secretsPath := os.Getenv("SECRETS_DIR")
	return option.WithCredentialsFile(path.Join(secretsPath, "admin-sdk-credentials.json"))
}

func GetFirebaseAuth() (*auth.Client, error) {
	if innerAuth != nil {
		return innerAuth, nil
	}
	if innerApp == nil {
		app, err := firebase.NewApp(context.Background(), nil, getOpts())
		if err != nil {
			log.Printf("error initializing app: %s\n", err.Error())
			return nil, err
		}
		innerApp = app
	}

	client, err := innerApp.Auth(context.Background())
	if err != nil {
		log.Printf("error initializing Firebase Auth: %s\n", err.Error())
		return nil, err
	}
	innerAuth = client

	return client, nil
}

func NewFirebaseApp(app *firebase.App) {
	innerApp = app
	innerAuth = nil
}

// FirebaseVerifier checks Firebase ID tokens.
type FirebaseVerifier struct{}

func (FirebaseVerifier) Verify(ctx context.Context, idToken string) (*types.VerifiedToken, error) {
	client, err := GetFirebaseAuth()
	if err != nil {
		return nil, fmt.Errorf("firebase auth unavailable: %w", types.ErrUpstream)
	}
	token, err := client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %s: %w", err.Error(), types.ErrUnauthorized)
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("token carries no email: %w", types.ErrUnauthorized)
	}
	return &types.VerifiedToken{UID: token.UID, Email: email}, nil
}
