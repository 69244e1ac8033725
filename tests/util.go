package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/presence/core"
	"github.com/trezcool/presence/core/student"
	"github.com/trezcool/presence/storage/database"
)

// PrepareDB opens the test database, migrates it and empties the students table.
// Skips the test unless PRESENCE_DB_TESTS is set (run with ENV=TEST to pick the TEST_ variables).
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if os.Getenv("PRESENCE_DB_TESTS") == "" {
		t.Skip("PRESENCE_DB_TESTS not set")
	}

	conf := core.NewConfig()
	if err := database.CreateIfNotExist(conf); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	if _, err = db.Exec("TRUNCATE TABLE students"); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

// CreateRecord stores a student record, checked-out when a checkout is given.
func CreateRecord(t *testing.T, repo student.Repository, roll, name, checkin string, checkout ...string) student.Record {
	t.Helper()
	ctx := context.Background()
	rec, err := repo.Create(ctx, student.Data{RollNumber: roll, Name: name, CheckIn: checkin})
	if err != nil {
		t.Fatalf("CreateRecord() failed: %v", err)
	}
	if len(checkout) > 0 && checkout[0] != "" {
		if err = repo.SetCheckout(ctx, rec.ID, checkout[0]); err != nil {
			t.Fatalf("CreateRecord() failed: %v", err)
		}
		rec.Data.CheckOut = checkout[0]
	}
	return rec
}
