// Package dupkey finds object members declared more than once in a JSON
// document. Decoders keep the last occurrence silently; callers that need
// unambiguous input reject the document instead.
package dupkey

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Finding is one duplicated member.
type Finding struct {
	Path string // JSON pointer of the duplicated member
	Key  string
}

type frame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string
	next         int
	path         string
}

// Detect scans data and returns every duplicated member in document order.
// maxFindings <= 0 means unlimited.
func Detect(data []byte, maxFindings int) ([]Finding, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		found []Finding
		stack []frame
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if len(stack) > 0 {
				return found, io.ErrUnexpectedEOF
			}
			return found, nil
		}
		if err != nil {
			return found, err
		}

		if d, ok := tok.(json.Delim); ok && (d == '}' || d == ']') {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if s, ok := tok.(string); ok && len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.object && top.expectingKey {
				if _, dup := top.keys[s]; dup {
					found = append(found, Finding{Path: top.path + "/" + escape(s), Key: s})
					if maxFindings > 0 && len(found) >= maxFindings {
						return found, nil
					}
				}
				top.keys[s] = struct{}{}
				top.key = s
				top.expectingKey = false
				continue
			}
		}

		// tok starts a value: a scalar or a nested container.
		p := valuePath(stack)
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.object {
				top.expectingKey = true
			} else {
				top.next++
			}
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{':
				stack = append(stack, frame{object: true, keys: map[string]struct{}{}, expectingKey: true, path: p})
			case '[':
				stack = append(stack, frame{path: p})
			}
		}
	}
}

func valuePath(stack []frame) string {
	if len(stack) == 0 {
		return ""
	}
	top := stack[len(stack)-1]
	if top.object {
		return top.path + "/" + escape(top.key)
	}
	return top.path + "/" + strconv.Itoa(top.next)
}

// escape applies RFC 6901 escaping.
func escape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
