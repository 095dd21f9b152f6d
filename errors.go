package configema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes reported by Check.
const (
	CodeDuplicateKey        = "duplicate_key"
	CodeMissingKey          = "missing_key"
	CodeUnknownKey          = "unknown_key"
	CodeDuplicateVariant    = "duplicate_variant"
	CodeEmptyChoice         = "empty_choice"
	CodeUnresolvedReference = "unresolved_reference"
	CodeInvalidReference    = "invalid_reference"
	CodeInvalidEnum         = "invalid_enum"
	CodeInvalidNode         = "invalid_node"
)

// Issue represents a single structural defect in a schema tree.
type Issue struct {
	// Path is a tree pointer (for example: /boards/*/pwm_outputs/*/Backend/HardPwm).
	Path string `json:"path"`
	// Code is one of the codes listed above.
	Code    string `json:"code"`
	Message string `json:"message"`
	// Hint optionally says what was expected or found.
	Hint string `json:"hint,omitempty"`
	// Cause is the optional underlying error.
	Cause error `json:"-"`
	// Params carries structured parameters (e.g., {"key":"Name"}) for i18n
	// and tooling.
	Params map[string]any `json:"params,omitempty"`
}

// Issues is a collection of structural defects that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. duplicate_key at /boards/*
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether any issue carries code.
func (iss Issues) HasCode(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}
