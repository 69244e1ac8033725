package student

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/presence/core"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound          = errors.New("student record not found")
	ErrAlreadyCheckedOut = errors.New("student already checked-out")
)

type (
	// Repository is a student document store.
	Repository interface {
		QueryAll(ctx context.Context) ([]Record, error)
		GetByID(ctx context.Context, id string) (Record, error)
		Create(ctx context.Context, data Data) (Record, error)
		// SetCheckout sets the checkout field of a record that has none yet.
		// Returns ErrNotFound or ErrAlreadyCheckedOut.
		SetCheckout(ctx context.Context, id, checkout string) error
	}

	Service struct {
		repo           Repository
		loc            *time.Location
		checkoutLayout string
		totalDays      int
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	svc := &Service{
		repo:           repo,
		loc:            time.Local,
		checkoutLayout: "3:04:05 PM",
		totalDays:      TotalSchoolDays,
	}
	if conf != nil {
		if conf.Attendance.Location != nil {
			svc.loc = conf.Attendance.Location
		}
		if conf.Attendance.CheckoutLayout != "" {
			svc.checkoutLayout = conf.Attendance.CheckoutLayout
		}
		if conf.Attendance.TotalSchoolDays > 0 {
			svc.totalDays = conf.Attendance.TotalSchoolDays
		}
	}
	return svc
}

// Fetch returns all student records, oldest check-in first.
func (svc *Service) Fetch(ctx context.Context) ([]Record, error) {
	records, err := svc.repo.QueryAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying student records")
	}
	SortByCheckIn(records, svc.loc)
	return records, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Record, error) {
	return svc.repo.GetByID(ctx, core.CleanString(id))
}

// Checkout writes the current local time to the checkout field of the record.
func (svc *Service) Checkout(ctx context.Context, id string) error {
	if err := svc.repo.SetCheckout(ctx, core.CleanString(id), svc.Now()); err != nil {
		return errors.Wrap(err, "setting checkout")
	}
	return nil
}

// CheckIn creates a record checked-in now.
func (svc *Service) CheckIn(ctx context.Context, rollNumber, name string) (Record, error) {
	if err := core.RequiredFields(FieldRollNumber, rollNumber, FieldName, name); err != nil {
		return Record{}, err
	}
	rec, err := svc.repo.Create(ctx, Data{
		RollNumber: core.CleanString(rollNumber),
		Name:       core.CleanString(name),
		CheckIn:    NowFunc().In(svc.loc).Format(time.RFC3339),
	})
	if err != nil {
		return Record{}, errors.Wrap(err, "creating student record")
	}
	return rec, nil
}

// Now is the current time formatted the way checkouts are stored.
func (svc *Service) Now() string {
	return NowFunc().In(svc.loc).Format(svc.checkoutLayout)
}

func (svc *Service) Percentage(count int) string {
	return PercentageOf(count, svc.totalDays)
}
