package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("unresolved_reference", nil); msg == "unresolved_reference" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("unresolved_reference", nil); msg == "reference target not found" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestTranslator_CustomAndUnknownCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes fall back to the code, got %q", msg)
	}
	SetTranslator(upper{})
	if msg := T("duplicate_key", nil); msg != "X:duplicate_key" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("duplicate_key", nil); msg != "duplicate key" {
		t.Fatalf("nil translator should restore the default, got %q", msg)
	}
}
