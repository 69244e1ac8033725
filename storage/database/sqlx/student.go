package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/presence/core"
	"github.com/trezcool/presence/core/student"
)

const studentColumns = "id, roll_number, name, checkin, checkout"

type studentRow struct {
	ID         string      `db:"id"`
	RollNumber string      `db:"roll_number"`
	Name       string      `db:"name"`
	CheckIn    string      `db:"checkin"`
	CheckOut   null.String `db:"checkout"`
}

func (row studentRow) record() student.Record {
	return student.Record{
		ID: row.ID,
		Data: student.Data{
			RollNumber: row.RollNumber,
			Name:       row.Name,
			CheckIn:    row.CheckIn,
			CheckOut:   row.CheckOut.String,
		},
	}
}

type studentRepository struct {
	exec core.DBExecutor
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(exec core.DBExecutor) student.Repository {
	return &studentRepository{exec: exec}
}

// trapNoRowsErr maps psql "no rows" err to student.ErrNotFound
func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) QueryAll(ctx context.Context) ([]student.Record, error) {
	rows, err := repo.exec.QueryxContext(ctx, "SELECT "+studentColumns+" FROM students ORDER BY created_at")
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	defer func() { _ = rows.Close() }()

	records := make([]student.Record, 0)
	for rows.Next() {
		var row studentRow
		if err = rows.StructScan(&row); err != nil {
			return nil, errors.Wrap(err, "scanning student")
		}
		records = append(records, row.record())
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating students")
	}
	return records, nil
}

func (repo studentRepository) GetByID(ctx context.Context, id string) (student.Record, error) {
	q := repo.exec.Rebind("SELECT " + studentColumns + " FROM students WHERE id = ?")
	var row studentRow
	if err := repo.exec.QueryRowxContext(ctx, q, id).StructScan(&row); err != nil {
		return student.Record{}, repo.trapNoRowsErr(err, "getting student")
	}
	return row.record(), nil
}

func (repo studentRepository) Create(ctx context.Context, data student.Data) (student.Record, error) {
	rec := student.Record{ID: uuid.New().String(), Data: data}
	q := repo.exec.Rebind("INSERT INTO students (" + studentColumns + ") VALUES (?, ?, ?, ?, ?)")
	checkout := null.NewString(data.CheckOut, data.CheckOut != "")
	if _, err := repo.exec.ExecContext(ctx, q, rec.ID, data.RollNumber, data.Name, data.CheckIn, checkout); err != nil {
		return student.Record{}, errors.Wrap(err, "inserting student")
	}
	return rec, nil
}

func (repo studentRepository) SetCheckout(ctx context.Context, id, checkout string) error {
	q := repo.exec.Rebind("UPDATE students SET checkout = ? WHERE id = ? AND checkout IS NULL")
	res, err := repo.exec.ExecContext(ctx, q, checkout, id)
	if err != nil {
		return errors.Wrap(err, "updating checkout")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "updating checkout")
	}
	if n > 0 {
		return nil
	}

	// nothing updated: unknown or already checked-out
	if _, err = repo.GetByID(ctx, id); err != nil {
		return err
	}
	return student.ErrAlreadyCheckedOut
}
