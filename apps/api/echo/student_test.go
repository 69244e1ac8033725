package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/presence/core/alert"
	"github.com/trezcool/presence/core/student"
	"github.com/trezcool/presence/tests"
)

func row(srNo int, rec student.Record, days int, percentage string) student.Row {
	return student.Row{
		SrNo:         srNo,
		ID:           rec.ID,
		RollNumber:   rec.Data.RollNumber,
		Name:         rec.Data.Name,
		CheckIn:      rec.Data.CheckIn,
		CheckOut:     rec.Data.CheckOut,
		CheckedOut:   rec.CheckedOut(),
		DaysAttended: days,
		Percentage:   percentage,
	}
}

func Test_home(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Presence API!", rec.Body.String())

	runHTTPTests(t, app, []httpTest{
		{name: "unknown route", path: "/v1/lol", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "Not Found"})},
	})
}

func Test_studentApi_list(t *testing.T) {
	app := setup(t)

	awe := testutil.CreateRecord(t, app.repo, "R1", "Awe", "2024-03-04T08:00:00Z")
	king := testutil.CreateRecord(t, app.repo, "R2", "King", "2024-03-04T07:00:00Z")
	aweYesterday := testutil.CreateRecord(t, app.repo, "R1", "Awe", "2024-03-03T08:00:00Z", "4:00:00 PM")

	runHTTPTests(t, app, []httpTest{
		{name: "not loaded yet", path: "/v1/students", wantCode: http.StatusOK, wantData: []byte("[]")},
	})

	require.NoError(t, app.roster.Refresh(context.Background()))
	loaded := marchallObj(t, []student.Row{
		row(1, aweYesterday, 2, "2.22"),
		row(2, king, 1, "1.11"),
		row(3, awe, 2, "2.22"),
	})

	hero := testutil.CreateRecord(t, app.repo, "R3", "Hero", "2024-03-04T09:00:00Z")

	runHTTPTests(t, app, []httpTest{
		{name: "sorted by check-in", path: "/v1/students", wantCode: http.StatusOK, wantData: loaded},
		{name: "trailing slash", path: "/v1/students/", wantCode: http.StatusOK, wantData: loaded},
		{
			name: "attendance", path: "/v1/students/attendance", wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]student.Attendance{
				"R1": {Days: 2, Percentage: "2.22"},
				"R2": {Days: 1, Percentage: "1.11"},
			}),
		},
		{
			name: "refresh", method: http.MethodPost, path: "/v1/students/refresh", wantCode: http.StatusOK,
			wantData: marchallObj(t, []student.Row{
				row(1, aweYesterday, 2, "2.22"),
				row(2, king, 1, "1.11"),
				row(3, awe, 2, "2.22"),
				row(4, hero, 1, "1.11"),
			}),
		},
	})
}

func Test_studentApi_checkout(t *testing.T) {
	app := setup(t)

	awe := testutil.CreateRecord(t, app.repo, "R1", "Awe", "2024-03-04T08:00:00Z")
	king := testutil.CreateRecord(t, app.repo, "R2", "King", "2024-03-04T07:00:00Z", "3:00:00 PM")
	require.NoError(t, app.roster.Refresh(context.Background()))

	path := func(id string) string { return "/v1/students/" + id + "/checkout" }
	body := func(name string) []byte { return []byte(`{"name":"` + name + `"}`) }

	checkedOut := awe
	checkedOut.Data.CheckOut = "4:00:00 PM"

	tests := []struct {
		httpTest
		wantAlert alert.Alert
	}{
		{
			httpTest: httpTest{
				name: "unknown id", path: path("lol"), body: body("Lol"),
				wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student record not found"}),
			},
			wantAlert: alert.Error("Error!", "student record not found"),
		},
		{
			httpTest: httpTest{
				name: "invalid id", path: path(strings.Repeat("x", 1501)), body: body("Lol"),
				wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"id": "invalid document id"}),
			},
			wantAlert: alert.Error("Error!", "student record not found"), // untouched
		},
		{
			httpTest: httpTest{
				name: "already checked-out", path: path(king.ID), body: body("King"),
				wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "student already checked-out"}),
			},
			wantAlert: alert.Error("Error!", "student already checked-out"),
		},
		{
			httpTest: httpTest{
				// the route id wins over an id in the body
				name: "checkout", path: path(awe.ID), body: []byte(`{"id":"` + king.ID + `","name":"Awe"}`),
				wantCode: http.StatusOK,
				wantData: marchallObj(t, checkoutResponse{
					Alert:    alert.Success("Successfully Checked-Out", "Awe checked-out"),
					Students: []student.Row{row(1, king, 1, "1.11"), row(2, checkedOut, 1, "1.11")},
				}),
			},
			wantAlert: alert.Success("Successfully Checked-Out", "Awe checked-out"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, tt.path, tt.body)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt.httpTest, rec)
			assert.Equal(t, tt.wantAlert, app.alerts.Current())
		})
	}

	// every checkout reloaded the roster
	records := app.roster.Records()
	assert.Equal(t, "3:00:00 PM", records[0].Data.CheckOut, king.ID)
	assert.Equal(t, "4:00:00 PM", records[1].Data.CheckOut, awe.ID)
}

func Test_studentApi_rowKeys(t *testing.T) {
	app := setup(t)
	testutil.CreateRecord(t, app.repo, "R1", "Awe", "2024-03-04T08:00:00Z")
	require.NoError(t, app.roster.Refresh(context.Background()))

	req, rec := newRequest(http.MethodGet, "/v1/students")
	app.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	for _, key := range []string{"srNo", "id", "rollNumber", "name", "checkin", "checkout", "checkedOut", "daysAttended", "percentage"} {
		assert.Contains(t, rows[0], key)
	}
}

func Test_studentApi_checkoutRefetchesOnFailure(t *testing.T) {
	app := setup(t)
	require.NoError(t, app.roster.Refresh(context.Background()))

	// created behind the roster's back
	rec := testutil.CreateRecord(t, app.repo, "R1", "Awe", "2024-03-04T08:00:00Z")

	req, w := newRequest(http.MethodPost, "/v1/students/lol/checkout", []byte(`{"name":"Lol"}`))
	app.server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []student.Record{rec}, app.roster.Records())
}

func Test_alertApi(t *testing.T) {
	app := setup(t)
	app.alerts.Raise(alert.Success("Successfully Checked-Out", "Awe checked-out"))

	runHTTPTests(t, app, []httpTest{
		{
			name: "current", path: "/v1/alert", wantCode: http.StatusOK,
			wantData: marchallObj(t, alert.Success("Successfully Checked-Out", "Awe checked-out")),
		},
		{name: "dismiss", method: http.MethodDelete, path: "/v1/alert", wantCode: http.StatusNoContent},
		{
			name: "dismissed", path: "/v1/alert", wantCode: http.StatusOK,
			wantData: marchallObj(t, alert.Alert{
				Title: "Successfully Checked-Out", Message: "Awe checked-out", Color: alert.ColorSuccess,
			}),
		},
	})

	// expiry
	app.alerts.Raise(alert.Error("Error!", "boom"))
	alert.NowFunc = func() time.Time { return now.Add(5 * time.Second) }

	req, rec := newRequest(http.MethodGet, "/v1/alert")
	app.server.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, alert.Alert{Title: "Error!", Message: "boom", Color: alert.ColorError}),
	}, rec)
}

func TestServer_signalShutdown(t *testing.T) {
	app := setup(t)
	app.server.signalShutdown()
	app.server.signalShutdown() // does not block

	select {
	case <-app.server.ShutdownSignal():
	default:
		t.Fatal("no shutdown signal")
	}
}
