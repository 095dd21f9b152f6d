package configema

import "github.com/reoring/configema/i18n"

// IssueAt creates an Issue at the given path with provided code, hint and params map.
// This is a convenience helper to improve readability at call sites with many parameters.
func IssueAt(p PathRef, code, hint string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, nil), Hint: hint, Params: params}
}
