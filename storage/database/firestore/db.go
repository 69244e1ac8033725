package firestorerepos

import (
	"context"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/trezcool/presence/core"
)

// Open connects to Firestore through the Firebase app.
// Without a credentials file, application default credentials are used;
// FIRESTORE_EMULATOR_HOST is honoured by the client.
func Open(ctx context.Context, conf *core.Config) (*firestore.Client, error) {
	var opts []option.ClientOption
	if conf.Firestore.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(conf.Firestore.CredentialsFile))
	}

	var fbConf *firebase.Config
	if conf.Firestore.ProjectID != "" {
		fbConf = &firebase.Config{ProjectID: conf.Firestore.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConf, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firebase app")
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firestore")
	}
	return client, nil
}
