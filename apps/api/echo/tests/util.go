package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/Allen-Davis-M/Attendify/apps/api/echo"
	"github.com/Allen-Davis-M/Attendify/testutil"
)

func setup(t *testing.T) (*echoapi.Server, *testutil.Env) {
	env := testutil.NewEnv(t)
	app := echoapi.NewServer(
		&echoapi.Options{DisableReqLogs: true},
		&echoapi.Deps{
			Svc:        env.Svc,
			Validate:   env.Validate,
			Translator: env.Translator,
			Logger:     env.Logger,
		},
	)
	return app, env
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
	wantData []byte
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

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
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
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, "code; body %s", rec.Body.String())
	if tt.wantData == nil {
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

// do runs one request against app.
func do(app http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, body)
	app.ServeHTTP(rec, req)
	return rec
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			checkCodeAndData(t, tt, do(app, method, tt.path, tt.body))
		})
	}
}
