package configema

import (
	"fmt"
	"strings"

	"github.com/reoring/configema/i18n"
)

// ElemSegment stands for "any element" of an array in a tree pointer.
const ElemSegment = "*"

// PathRef builds tree pointers in a chain-safe way and creates Issues.
// Pointers follow RFC 6901 escaping; an array element is rendered as "*" and
// a OneOf alternative by its tag.
type PathRef interface {
	Field(name string) PathRef
	Elem() PathRef
	Choice(tag string) PathRef
	Pointer() string
	Issue(code, hint string, kv ...any) Issue
}

// RootPath returns the pointer of the tree root.
func RootPath() PathRef { return &pathRef{parts: nil} }

// ParsePath splits a pointer produced by PathRef.Pointer back into a PathRef.
func ParsePath(p string) PathRef {
	if p == "" || p == "/" {
		return RootPath()
	}
	parts := []string{}
	for _, s := range strings.Split(p, "/") {
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return &pathRef{parts: parts}
}

type pathRef struct {
	parts []string
}

func (p *pathRef) push(seg string) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), seg)}
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return p.push(esc)
}

func (p *pathRef) Elem() PathRef { return p.push(ElemSegment) }

func (p *pathRef) Choice(tag string) PathRef { return p.Field(tag) }

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Issue(code, hint string, kv ...any) Issue {
	m := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, nil), Hint: hint, Params: m}
}
