package student

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/trezcool/presence/core"
)

type repoMock struct {
	mock.Mock
}

var _ Repository = (*repoMock)(nil)

func (m *repoMock) QueryAll(ctx context.Context) ([]Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]Record)
	// hand out a copy: callers sort in place
	if records != nil {
		records = append([]Record(nil), records...)
	}
	return records, args.Error(1)
}

func (m *repoMock) GetByID(ctx context.Context, id string) (Record, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Record), args.Error(1)
}

func (m *repoMock) Create(ctx context.Context, data Data) (Record, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(Record), args.Error(1)
}

func (m *repoMock) SetCheckout(ctx context.Context, id, checkout string) error {
	args := m.Called(ctx, id, checkout)
	return args.Error(0)
}

type logEntry struct {
	level string
	msg   string
	args  []interface{}
}

type loggerMock struct {
	mu      sync.Mutex
	entries []logEntry
}

var _ core.Logger = (*loggerMock)(nil)

func (l *loggerMock) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *loggerMock) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *loggerMock) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *loggerMock) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *loggerMock) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *loggerMock) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }

func (l *loggerMock) errors() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var errs []logEntry
	for _, e := range l.entries {
		if e.level == "error" {
			errs = append(errs, e)
		}
	}
	return errs
}

func testConfig() *core.Config {
	return &core.Config{
		Attendance: core.AttendanceConfig{
			TotalSchoolDays: TotalSchoolDays,
			CheckoutLayout:  "3:04:05 PM",
			Location:        time.UTC,
		},
	}
}

func newRecord(id, roll, name, checkin, checkout string) Record {
	return Record{ID: id, Data: Data{RollNumber: roll, Name: name, CheckIn: checkin, CheckOut: checkout}}
}
