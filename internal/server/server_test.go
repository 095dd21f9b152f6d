package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	ce "github.com/reoring/configema"
	"github.com/reoring/configema/aprinter"
	"github.com/reoring/configema/internal/server"
)

func newHandler(t *testing.T, root ce.Node) http.Handler {
	t.Helper()
	docs, err := server.Render(root)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return server.Router(docs, zerolog.Nop())
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_Documents(t *testing.T) {
	h := newHandler(t, aprinter.Editor())

	rec := get(t, h, "/schema.json")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("schema.json: %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	n, err := ce.DecodeJSON(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("decode served schema: %v", err)
	}
	if !ce.Equal(n, aprinter.Editor()) {
		t.Fatalf("served schema differs from the editor tree")
	}

	rec = get(t, h, "/schema.yaml")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "kind: compound") {
		t.Fatalf("schema.yaml: %d %s", rec.Code, rec.Body.String())
	}

	rec = get(t, h, "/jsonschema.json")
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("jsonschema: %v", err)
	}
	if doc["type"] != "object" || doc["x-ident"] != "id_editor" {
		t.Fatalf("jsonschema root = %v", doc)
	}
}

func TestRouter_CheckAndHealth(t *testing.T) {
	h := newHandler(t, aprinter.Editor())
	rec := get(t, h, "/check")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"issues":[]}` {
		t.Fatalf("check: %d %s", rec.Code, rec.Body.String())
	}
	rec = get(t, h, "/healthz")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("healthz: %d %s", rec.Code, rec.Body.String())
	}
	if rec := get(t, h, "/missing"); rec.Code != http.StatusNotFound {
		t.Fatalf("missing: %d", rec.Code)
	}
}

func TestRouter_CheckReportsIssues(t *testing.T) {
	broken := ce.Compound("r", ce.Attrs(ce.String(ce.Key("a")), ce.String(ce.Key("a"))))
	rec := get(t, newHandler(t, broken), "/check")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("check: %d", rec.Code)
	}
	var body struct {
		Issues []ce.Issue `json:"issues"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Issues) != 1 || body.Issues[0].Code != ce.CodeDuplicateKey || body.Issues[0].Path != "/a" {
		t.Fatalf("issues = %+v", body.Issues)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), zerolog.Nop()) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop")
	}
}
