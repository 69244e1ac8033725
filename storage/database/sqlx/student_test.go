package sqlxrepos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/presence/core/student"
	"github.com/trezcool/presence/tests"
)

func TestStudentRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	records, err := repo.QueryAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	awe := testutil.CreateRecord(t, repo, "R1", "Awe", "2024-03-04T08:00:00Z")
	king := testutil.CreateRecord(t, repo, "R2", "King", "2024-03-04T07:00:00Z", "3:00:00 PM")

	records, err = repo.QueryAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []student.Record{awe, king}, records)

	got, err := repo.GetByID(ctx, king.ID)
	require.NoError(t, err)
	assert.Equal(t, "3:00:00 PM", got.Data.CheckOut)

	_, err = repo.GetByID(ctx, "lol")
	assert.Equal(t, student.ErrNotFound, err)

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "unknown", id: "lol", wantErr: student.ErrNotFound},
		{name: "already checked-out", id: king.ID, wantErr: student.ErrAlreadyCheckedOut},
		{name: "checkout", id: awe.ID},
		{name: "checkout twice", id: awe.ID, wantErr: student.ErrAlreadyCheckedOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, repo.SetCheckout(ctx, tt.id, "4:00:00 PM"))
		})
	}
}
