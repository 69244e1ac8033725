package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/presence/core"
	"github.com/trezcool/presence/core/alert"
	"github.com/trezcool/presence/core/student"
	"github.com/trezcool/presence/storage/database/inmem"
)

var now = time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC)

type nopLogger struct{}

var _ core.Logger = nopLogger{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type testApp struct {
	server *Server
	repo   student.Repository
	roster *student.Roster
	alerts *alert.Box
}

func setup(t *testing.T) testApp {
	t.Helper()

	student.NowFunc = func() time.Time { return now }
	alert.NowFunc = func() time.Time { return now }
	t.Cleanup(func() {
		student.NowFunc = time.Now
		alert.NowFunc = time.Now
	})

	conf := &core.Config{
		TestMode: true,
		Server:   core.ServerConfig{DisableReqLogs: true},
		Attendance: core.AttendanceConfig{
			TotalSchoolDays: student.TotalSchoolDays,
			CheckoutLayout:  "3:04:05 PM",
			Location:        time.UTC,
		},
		Alert: core.AlertConfig{TTL: 5 * time.Second},
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	repo := inmemdb.NewStudentRepository(inmemdb.Open())
	alerts := alert.NewBox(conf.Alert.TTL)
	roster := student.NewRoster(student.NewService(repo, conf), alerts, nopLogger{})

	server := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     nopLogger{},
		Roster:     roster,
		Alerts:     alerts,
		Validate:   validate,
		Translator: translator,
	})
	return testApp{server: server, repo: repo, roster: roster, alerts: alerts}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte // nil: empty body
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		if rec.Body.Len() != 0 {
			t.Errorf("failed! data = %v; want empty body", rec.Body.String())
		}
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app testApp, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newRequest(method, tt.path, tt.body)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
