package configema

import (
	"github.com/reoring/configema/i18n"
	"github.com/reoring/configema/internal/dupkey"
)

// DetectDuplicateFields reports object members declared twice in a JSON
// document, located by JSON pointer. maxIssues <= 0 means unlimited.
func DetectDuplicateFields(data []byte, maxIssues int) (Issues, error) {
	found, err := dupkey.Detect(data, maxIssues)
	if err != nil {
		return nil, err
	}
	var iss Issues
	for _, f := range found {
		iss = AppendIssues(iss, Issue{
			Path:    f.Path,
			Code:    CodeDuplicateKey,
			Message: i18n.T(CodeDuplicateKey, nil),
			Hint:    "member declared twice",
			Params:  map[string]any{"key": f.Key},
		})
	}
	return iss, nil
}
