package configema

import (
	"errors"
	"slices"
)

// Check verifies the structural invariants of a schema tree: unique keyed
// children, distinct alternative tags, resolvable references and keys that
// name existing fields. It returns Issues, or nil when the tree is sound.
func Check(root Node) error {
	ix := NewIndex(root)
	var iss Issues
	_ = Walk(root, func(p PathRef, n Node) error {
		switch t := n.(type) {
		case *ScalarNode:
			iss = checkScalar(iss, p, t)
		case *CompoundNode:
			iss = checkCompound(iss, p, t)
		case *OneOfNode:
			iss = checkOneOf(iss, p, t)
		case *ArrayNode:
			iss = checkArray(iss, p, t)
		case *ReferenceNode:
			iss = checkReference(iss, p, ix, t)
		}
		return nil
	})
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func checkScalar(iss Issues, p PathRef, s *ScalarNode) Issues {
	if len(s.Enum) == 0 {
		return iss
	}
	if s.Kind() != KindString {
		return AppendIssues(iss, p.Issue(CodeInvalidNode, "enum on non-string field", "kind", s.Kind().String()))
	}
	if d, ok := s.Default.(string); ok && !slices.Contains(s.Enum, d) {
		return AppendIssues(iss, p.Issue(CodeInvalidEnum, "default "+d+" not in enum", "default", d))
	}
	return iss
}

func checkCompound(iss Issues, p PathRef, c *CompoundNode) Issues {
	seen := map[string]bool{}
	for i, a := range c.Attrs {
		if a == nil {
			continue
		}
		k := a.NodeMeta().Key
		if k == "" {
			iss = AppendIssues(iss, p.Issue(CodeMissingKey, "child has no key", "index", i, "kind", a.Kind().String()))
			continue
		}
		if seen[k] {
			iss = AppendIssues(iss, p.Field(k).Issue(CodeDuplicateKey, "key declared twice in "+c.Name, "key", k))
		}
		seen[k] = true
	}
	if c.TitleKey != "" && !seen[c.TitleKey] {
		iss = AppendIssues(iss, p.Issue(CodeUnknownKey, "title key "+c.TitleKey, "key", c.TitleKey))
	}
	return iss
}

func checkOneOf(iss Issues, p PathRef, o *OneOfNode) Issues {
	if len(o.Choices) == 0 {
		return AppendIssues(iss, p.Issue(CodeEmptyChoice, ""))
	}
	seen := map[string]bool{}
	for i, c := range o.Choices {
		if c == nil || c.Name == "" {
			iss = AppendIssues(iss, p.Issue(CodeMissingKey, "alternative has no name", "index", i))
			continue
		}
		if seen[c.Name] {
			iss = AppendIssues(iss, p.Choice(c.Name).Issue(CodeDuplicateVariant, "alternative declared twice", "tag", c.Name))
		}
		seen[c.Name] = true
	}
	return iss
}

func checkArray(iss Issues, p PathRef, a *ArrayNode) Issues {
	if a.Elem == nil {
		return AppendIssues(iss, p.Issue(CodeInvalidNode, "array without element schema"))
	}
	if a.CopyNameKey == "" {
		return iss
	}
	ec, ok := a.Elem.(*CompoundNode)
	if !ok {
		return AppendIssues(iss, p.Issue(CodeUnknownKey, "copy-name key on non-compound elements", "key", a.CopyNameKey))
	}
	if _, ok := ec.Child(a.CopyNameKey); !ok {
		return AppendIssues(iss, p.Issue(CodeUnknownKey, "copy-name key "+a.CopyNameKey, "key", a.CopyNameKey))
	}
	return iss
}

func checkReference(iss Issues, p PathRef, ix *Index, r *ReferenceNode) Issues {
	tgt, err := ix.Resolve(r)
	if err == nil {
		for _, k := range []string{r.IDKey, r.NameKey} {
			if k != "" && !targetHasField(tgt, k) {
				iss = AppendIssues(iss, p.Issue(CodeUnknownKey, "target elements have no field "+k, "key", k))
			}
		}
		return iss
	}
	code := CodeUnresolvedReference
	if errors.Is(err, ErrTargetKind) {
		code = CodeInvalidReference
	}
	it := p.Issue(code, err.Error(), "base", r.Target.Base, "descend", r.Target.Descend)
	it.Cause = err
	return AppendIssues(iss, it)
}

// targetHasField reports whether the elements of a reference target carry
// field k. Targets whose element shape is not a record are accepted.
func targetHasField(tgt Node, k string) bool {
	switch t := tgt.(type) {
	case *ArrayNode:
		if ec, ok := t.Elem.(*CompoundNode); ok {
			_, has := ec.Child(k)
			return has
		}
	case *ConstantNode:
		items, _ := t.Value.([]any)
		for _, it := range items {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			if _, has := m[k]; !has {
				return false
			}
		}
	}
	return true
}
