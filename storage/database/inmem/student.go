package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/presence/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) QueryAll(_ context.Context) ([]student.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]student.Record, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		records = append(records, *repo.db.table[id])
	}
	return records, nil
}

func (repo *studentRepository) GetByID(_ context.Context, id string) (student.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if rec, ok := repo.db.table[id]; ok {
		return *rec, nil
	}
	return student.Record{}, student.ErrNotFound
}

func (repo *studentRepository) Create(_ context.Context, data student.Data) (student.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec := student.Record{ID: uuid.New().String(), Data: data}
	repo.db.table[rec.ID] = &rec
	repo.db.order = append(repo.db.order, rec.ID)
	return rec, nil
}

func (repo *studentRepository) SetCheckout(_ context.Context, id, checkout string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec, ok := repo.db.table[id]
	if !ok {
		return student.ErrNotFound
	}
	if rec.CheckedOut() {
		return student.ErrAlreadyCheckedOut
	}
	rec.Data.CheckOut = checkout
	return nil
}
