package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/presence/core"
	"github.com/trezcool/presence/core/student"
	"github.com/trezcool/presence/storage/database"
	firestorerepos "github.com/trezcool/presence/storage/database/firestore"
	inmemdb "github.com/trezcool/presence/storage/database/inmem"
	sqlxrepos "github.com/trezcool/presence/storage/database/sqlx"
)

// Engines
const (
	EngineFirestore = "firestore"
	EnginePostgres  = "postgres"
	EngineMemory    = "memory"
)

func nopClose() error { return nil }

// OpenStudentRepository opens the student repository selected by `store.engine`.
// The returned func releases the underlying client.
func OpenStudentRepository(ctx context.Context, conf *core.Config) (student.Repository, func() error, error) {
	switch conf.Store.Engine {
	case EngineFirestore:
		client, err := firestorerepos.Open(ctx, conf)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening firestore")
		}
		repo, err := firestorerepos.NewStudentRepository(client, conf.Store.Collection)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return repo, client.Close, nil

	case EnginePostgres:
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, nil, err
		}
		db, err := database.Open(conf)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening database")
		}
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return sqlxrepos.NewStudentRepository(db), db.Close, nil

	case EngineMemory:
		return inmemdb.NewStudentRepository(inmemdb.Open()), nopClose, nil

	default:
		return nil, nil, errors.Errorf("unknown store engine %q", conf.Store.Engine)
	}
}
