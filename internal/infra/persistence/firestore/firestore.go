// Package firestore implements the persistence contracts on top of the
// hosted document store. Documents are mapped straight onto the domain
// entities through firestore struct tags; realtime watches are exposed as
// snapshot channels with an explicit cancel handle.
package firestore

import (
	"context"
	"log/slog"
	"os"

	"pantry/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pantry/internal/domain/repository"
)

const (
	pantriesCollection = "pantries"
	usersCollection    = "users"
)

// NewApp initializes the Firebase app shared by the Firestore and Auth clients.
func NewApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	if cfg.Firebase.FirestoreEmulatorHost != "" {
		os.Setenv("FIRESTORE_EMULATOR_HOST", cfg.Firebase.FirestoreEmulatorHost)
	}
	if cfg.Firebase.AuthEmulatorHost != "" {
		os.Setenv("FIREBASE_AUTH_EMULATOR_HOST", cfg.Firebase.AuthEmulatorHost)
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	return app, nil
}

// NewClient opens the Firestore client and closes it on shutdown.
func NewClient(ctx context.Context, app *firebase.App, lc fx.Lifecycle) (*firestore.Client, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}

// NewAuthClient opens the Firebase Auth client used for ID token verification.
func NewAuthClient(ctx context.Context, app *firebase.App) (*firebaseauth.Client, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firebase Auth client")
	}

	return client, nil
}

// mapStoreErr translates store transport failures into repository sentinels.
func mapStoreErr(err error, notFound error) error {
	switch status.Code(errors.Cause(err)) {
	case codes.NotFound:
		return notFound
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return errors.Wrap(repository.ErrUnavailable, err.Error())
	default:
		return err
	}
}

func logWatchTermination(logger *slog.Logger, what string, err error) {
	if status.Code(errors.Cause(err)) == codes.Canceled {
		return
	}
	logger.Error("watch terminated", slog.String("watch", what), slog.Any("error", err))
}
