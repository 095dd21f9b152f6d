package configema_test

import (
	"strings"
	"testing"

	ce "github.com/reoring/configema"
)

func TestDetectDuplicateFields_NoDup(t *testing.T) {
	iss, err := ce.DetectDuplicateFields([]byte(`{"a":1,"b":2}`), 0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("expected 0 issues, got %d: %v", len(iss), iss)
	}
}

func TestDetectDuplicateFields_WithDup(t *testing.T) {
	iss, err := ce.DetectDuplicateFields([]byte(`{"a":1,"a":2}`), 0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 1 || iss[0].Code != ce.CodeDuplicateKey || iss[0].Path != "/a" {
		t.Fatalf("expected duplicate_key at /a, got %v", iss)
	}
}

func TestDecodeJSON_RejectsAmbiguousDescription(t *testing.T) {
	_, err := ce.DecodeJSON([]byte(`{"kind":"compound","name":"a","name":"b"}`))
	iss, ok := ce.AsIssues(err)
	if !ok || !iss.HasCode(ce.CodeDuplicateKey) || iss[0].Path != "/name" {
		t.Fatalf("expected duplicate_key at /name, got %v", err)
	}
}

func TestDetectDuplicateFields_EmptyKey(t *testing.T) {
	iss, err := ce.DetectDuplicateFields([]byte(`{"a":{"":1,"":2}}`), 0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 1 || iss[0].Path != "/a/" || iss[0].Params["key"] != "" {
		t.Fatalf("expected duplicate_key at /a/, got %+v", iss)
	}
	if iss[0].Message != "duplicate key" {
		t.Fatalf("message = %q", iss[0].Message)
	}
}

func TestDecodeJSON_ReportsScanError(t *testing.T) {
	_, err := ce.DecodeJSON([]byte(`{"kind":"compound","attrs":[`))
	if err == nil {
		t.Fatalf("expected error for truncated input")
	}
	if _, ok := ce.AsIssues(err); ok {
		t.Fatalf("truncated input is not a duplicate: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "configema: decode json: ") {
		t.Fatalf("error = %v", err)
	}
}
