package student

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/presence/core"
	"github.com/trezcool/presence/core/alert"
)

// Alert titles
const (
	CheckoutSuccessTitle = "Successfully Checked-Out"
	CheckoutErrorTitle   = "Error!"
)

// RosterService is what the Roster needs from the student Service.
type RosterService interface {
	Fetch(ctx context.Context) ([]Record, error)
	Checkout(ctx context.Context, id string) error
	Percentage(count int) string
}

var _ RosterService = (*Service)(nil)

// Roster is the currently loaded set of student records and its attendance tally.
type Roster struct {
	svc    RosterService
	alerts alert.Sink
	logger core.Logger

	refreshMu sync.Mutex // one fetch at a time: results are installed in fetch order

	mu      sync.RWMutex
	records []Record
	tally   Tally
}

func NewRoster(svc RosterService, alerts alert.Sink, logger core.Logger) *Roster {
	return &Roster{
		svc:    svc,
		alerts: alerts,
		logger: logger,
		tally:  make(Tally),
	}
}

// Refresh re-fetches the records and recomputes the tally.
// On failure the error is logged and the previously loaded state is kept.
func (r *Roster) Refresh(ctx context.Context) error {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	records, err := r.svc.Fetch(ctx)
	if err != nil {
		r.logger.Error("Error fetching students", err)
		return err
	}
	tally := CountAttendance(RollNumbers(records))

	r.mu.Lock()
	r.records = records
	r.tally = tally
	r.mu.Unlock()
	return nil
}

// Checkout checks the student out, raises the outcome alert then re-fetches the records.
// The re-fetch happens whatever the outcome; its own failure is only logged.
func (r *Roster) Checkout(ctx context.Context, id, name string) error {
	err := r.svc.Checkout(ctx, id)
	if err == nil {
		r.alerts.Raise(alert.Success(CheckoutSuccessTitle, fmt.Sprintf("%s checked-out", name)))
	} else {
		r.alerts.Raise(alert.Error(CheckoutErrorTitle, errors.Cause(err).Error()))
		r.logger.Error("Error during checkout", err, map[string]interface{}{"id": id, "name": name})
	}
	_ = r.Refresh(ctx)
	return err
}

// Records returns a copy of the loaded records.
func (r *Roster) Records() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]Record, len(r.records))
	copy(records, r.records)
	return records
}

// Tally returns a copy of the attendance tally.
func (r *Roster) Tally() Tally {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tally := make(Tally, len(r.tally))
	for rn, c := range r.tally {
		tally[rn] = c
	}
	return tally
}

// Attendance returns the days attended and percentage per registration number.
func (r *Roster) Attendance() map[string]Attendance {
	tally := r.Tally()
	att := make(map[string]Attendance, len(tally))
	for rn, c := range tally {
		att[rn] = Attendance{Days: c, Percentage: r.svc.Percentage(c)}
	}
	return att
}

// Rows renders the roster table.
func (r *Roster) Rows() []Row {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]Row, 0, len(r.records))
	for i, rec := range r.records {
		days := r.tally[rec.Data.RollNumber]
		rows = append(rows, Row{
			SrNo:         i + 1,
			ID:           rec.ID,
			RollNumber:   rec.Data.RollNumber,
			Name:         rec.Data.Name,
			CheckIn:      rec.Data.CheckIn,
			CheckOut:     rec.Data.CheckOut,
			CheckedOut:   rec.CheckedOut(),
			DaysAttended: days,
			Percentage:   r.svc.Percentage(days),
		})
	}
	return rows
}
