package jsonschema

import (
	"errors"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"

	ce "github.com/reoring/configema"
)

// ErrUnsupported is returned for nodes that have no JSON Schema projection.
var ErrUnsupported = errors.New("jsonschema: unsupported node")

// Document projects root and marks the result with Draft.
func Document(root ce.Node) (*Schema, error) {
	s, err := FromNode(root)
	if err != nil {
		return nil, err
	}
	s.Schema = Draft
	return s, nil
}

// FromNode projects a configuration tree onto JSON Schema. OneOf
// alternatives become objects discriminated by a constant "_compoundName"
// property; references become strings annotated with x-reference.
func FromNode(n ce.Node) (*Schema, error) {
	var s *Schema
	var err error
	switch t := n.(type) {
	case *ce.ScalarNode:
		s, err = scalar(t)
	case *ce.ConstantNode:
		s, err = constant(t)
	case *ce.CompoundNode:
		s, err = object(t)
	case *ce.OneOfNode:
		s, err = oneOf(t)
	case *ce.ArrayNode:
		s, err = array(t)
	case *ce.ReferenceNode:
		s = reference(t)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, n)
	}
	if err != nil {
		return nil, err
	}
	applyMeta(s, n.NodeMeta())
	return s, nil
}

func applyMeta(s *Schema, m *ce.Meta) {
	if m.Title != "" {
		s.Title = m.Title
	}
	s.ProcessingOrder = m.ProcessingOrder
	if m.Collapsed {
		opts(s).Collapsed = true
	}
	if m.DisableCollapse {
		opts(s).DisableCollapse = true
	}
}

func opts(s *Schema) *Options {
	if s.Options == nil {
		s.Options = &Options{}
	}
	return s.Options
}

func raw(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: encode value: %w", err)
	}
	return b, nil
}

func scalar(n *ce.ScalarNode) (*Schema, error) {
	s := &Schema{Enum: n.Enum, TrueTitle: n.TrueTitle, FalseTitle: n.FalseTitle}
	switch n.Kind() {
	case ce.KindString:
		s.Type = "string"
	case ce.KindInteger:
		s.Type = "integer"
	case ce.KindFloat:
		s.Type = "number"
	case ce.KindBoolean:
		s.Type = "boolean"
	}
	d, err := raw(n.Default)
	if err != nil {
		return nil, err
	}
	s.Default = d
	return s, nil
}

func constant(n *ce.ConstantNode) (*Schema, error) {
	c, err := raw(n.Value)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = json.RawMessage("null")
	}
	return &Schema{Const: c, Options: &Options{Hidden: true}}, nil
}

func object(n *ce.CompoundNode) (*Schema, error) {
	s := &Schema{
		Type:                 "object",
		Properties:           make(map[string]*Schema, len(n.Attrs)),
		AdditionalProperties: false,
		Ident:                n.Ident,
	}
	if n.Title == "" {
		s.Title = n.Name
	}
	for i, a := range n.Attrs {
		key := a.NodeMeta().Key
		ps, err := FromNode(a)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", n.Name, key, err)
		}
		ps.PropertyOrder = i + 1
		s.Properties[key] = ps
		s.Required = append(s.Required, key)
	}
	// Dereferenced data is optional and unconstrained.
	for _, a := range n.Attrs {
		r, ok := a.(*ce.ReferenceNode)
		if !ok || r.DerefKey == "" {
			continue
		}
		if _, declared := s.Properties[r.DerefKey]; declared {
			continue
		}
		s.Properties[r.DerefKey] = &Schema{DerefOf: r.Key, Options: &Options{Hidden: true}}
	}
	// Required list (sorted for deterministic output)
	sort.Strings(s.Required)
	if n.TitleKey != "" {
		s.HeaderTemplate = "{{ self." + n.TitleKey + " }}"
	}
	if n.NoHeader {
		opts(s).NoHeader = true
	}
	return s, nil
}

func oneOf(n *ce.OneOfNode) (*Schema, error) {
	s := &Schema{}
	for _, c := range n.Choices {
		alt, err := FromNode(c)
		if err != nil {
			return nil, err
		}
		tag, _ := raw(c.Name)
		alt.Properties[ce.CompoundTagKey] = &Schema{Type: "string", Const: tag, Options: &Options{Hidden: true}}
		alt.Required = append(alt.Required, ce.CompoundTagKey)
		sort.Strings(alt.Required)
		s.OneOf = append(s.OneOf, alt)
	}
	return s, nil
}

func array(n *ce.ArrayNode) (*Schema, error) {
	if n.Elem == nil {
		return nil, fmt.Errorf("%w: array %q has no element", ErrUnsupported, n.Key)
	}
	items, err := FromNode(n.Elem)
	if err != nil {
		return nil, err
	}
	s := &Schema{Type: "array", Items: items, CopyNameKey: n.CopyNameKey, CopyNameSuffix: n.CopyNameSuffix}
	if n.Table {
		s.Format = "table"
	}
	return s, nil
}

func reference(n *ce.ReferenceNode) *Schema {
	return &Schema{Type: "string", Reference: &Reference{
		Base:     n.Target.Base,
		Descend:  n.Target.Descend,
		IDKey:    n.IDKey,
		NameKey:  n.NameKey,
		DerefKey: n.DerefKey,
	}}
}
