package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/reoring/configema"
	"github.com/reoring/configema/middleware"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	h := middleware.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/schema.json", nil))
	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("log line %q: %v", buf.String(), err)
	}
	if line["path"] != "/schema.json" || line["status"] != float64(http.StatusTeapot) || line["bytes"] != float64(2) {
		t.Fatalf("log line = %v", line)
	}

	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if buf.Len() != 0 {
		t.Fatalf("health checks should log below debug, got %q", buf.String())
	}
}

func TestWriteJSON_ErrorPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	iss := configema.Issues{configema.IssueAt(configema.RootPath().Field("a"), configema.CodeDuplicateKey, "", map[string]any{"key": "a"})}
	middleware.WriteJSON(rec, http.StatusUnprocessableEntity, middleware.ErrorPayload(iss))
	if rec.Code != http.StatusUnprocessableEntity || rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("response: %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	want := `{"issues":[{"path":"/a","code":"duplicate_key","message":"duplicate key","params":{"key":"a"}}]}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("body = %s", got)
	}
}
