package configema

import (
	"errors"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// wireNode is the decoding target of a structural description.
type wireNode struct {
	Kind            string `json:"kind"`
	Key             string `json:"key"`
	Title           string `json:"title"`
	ProcessingOrder int    `json:"processing_order"`
	Collapsed       bool   `json:"collapsed"`
	DisableCollapse bool   `json:"disable_collapse"`

	Default    any      `json:"default"`
	Enum       []string `json:"enum"`
	TrueTitle  string   `json:"true_title"`
	FalseTitle string   `json:"false_title"`

	Value any `json:"value"`

	Name     string      `json:"name"`
	Ident    string      `json:"ident"`
	TitleKey string      `json:"title_key"`
	NoHeader bool        `json:"no_header"`
	Attrs    []*wireNode `json:"attrs"`

	Choices []*wireNode `json:"choices"`

	Elem           *wireNode `json:"elem"`
	CopyNameKey    string    `json:"copy_name_key"`
	CopyNameSuffix string    `json:"copy_name_suffix"`
	Table          bool      `json:"table"`

	Ref      *wireRef `json:"ref"`
	IDKey    string   `json:"id_key"`
	NameKey  string   `json:"name_key"`
	DerefKey string   `json:"deref_key"`
}

type wireRef struct {
	Base    string   `json:"base"`
	Descend []string `json:"descend"`
}

// ErrUnknownKind is returned when decoding meets a kind it does not know.
var ErrUnknownKind = errors.New("configema: unknown node kind")

// EncodeJSON renders n in its structural JSON form.
func EncodeJSON(n Node) ([]byte, error) {
	d, err := Describe(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(d)
}

// EncodeJSONIndent is EncodeJSON with indentation.
func EncodeJSONIndent(n Node, indent string) ([]byte, error) {
	d, err := Describe(n)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(d, "", indent)
}

// DecodeJSON rebuilds a tree from its structural JSON form. A description
// that declares a member twice is rejected with Issues.
func DecodeJSON(data []byte) (Node, error) {
	iss, err := DetectDuplicateFields(data, 0)
	if err != nil {
		return nil, fmt.Errorf("configema: decode json: %w", err)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("configema: decode json: %w", err)
	}
	return fromWire(&w)
}

// EncodeYAML renders n in its structural YAML form.
func EncodeYAML(n Node) ([]byte, error) {
	d, err := Describe(n)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(d)
}

// DecodeYAML rebuilds a tree from its structural YAML form. Values are
// normalized through the JSON form so that numbers decode as float64 exactly
// as they do from JSON.
func DecodeYAML(data []byte) (Node, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("configema: decode yaml: %w", err)
	}
	m := yamlAnyToStringMap(raw)
	if m == nil {
		return nil, errors.New("configema: decode yaml: root is not a mapping")
	}
	return Rebuild(m)
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b Node) bool { return reflect.DeepEqual(a, b) }

// Describe renders n as a structural description: nested maps holding
// "kind" plus every attribute that differs from its zero value.
func Describe(n Node) (map[string]any, error) {
	if n == nil {
		return nil, nil
	}
	d := map[string]any{"kind": n.Kind().String()}
	m := n.NodeMeta()
	putString(d, "key", m.Key)
	putString(d, "title", m.Title)
	if m.ProcessingOrder != 0 {
		d["processing_order"] = m.ProcessingOrder
	}
	putBool(d, "collapsed", m.Collapsed)
	putBool(d, "disable_collapse", m.DisableCollapse)

	switch t := n.(type) {
	case *ScalarNode:
		if t.Default != nil {
			d["default"] = t.Default
		}
		if len(t.Enum) > 0 {
			d["enum"] = t.Enum
		}
		putString(d, "true_title", t.TrueTitle)
		putString(d, "false_title", t.FalseTitle)
	case *ConstantNode:
		if t.Value != nil {
			d["value"] = t.Value
		}
	case *CompoundNode:
		putString(d, "name", t.Name)
		putString(d, "ident", t.Ident)
		putString(d, "title_key", t.TitleKey)
		putBool(d, "no_header", t.NoHeader)
		if len(t.Attrs) > 0 {
			attrs := make([]any, 0, len(t.Attrs))
			for _, a := range t.Attrs {
				ad, err := Describe(a)
				if err != nil {
					return nil, err
				}
				attrs = append(attrs, ad)
			}
			d["attrs"] = attrs
		}
	case *OneOfNode:
		if len(t.Choices) > 0 {
			choices := make([]any, 0, len(t.Choices))
			for _, c := range t.Choices {
				cd, err := Describe(c)
				if err != nil {
					return nil, err
				}
				choices = append(choices, cd)
			}
			d["choices"] = choices
		}
	case *ArrayNode:
		if t.Elem != nil {
			ed, err := Describe(t.Elem)
			if err != nil {
				return nil, err
			}
			d["elem"] = ed
		}
		putString(d, "copy_name_key", t.CopyNameKey)
		putString(d, "copy_name_suffix", t.CopyNameSuffix)
		putBool(d, "table", t.Table)
	case *ReferenceNode:
		ref := map[string]any{"base": t.Target.Base}
		if len(t.Target.Descend) > 0 {
			ref["descend"] = t.Target.Descend
		}
		d["ref"] = ref
		putString(d, "id_key", t.IDKey)
		putString(d, "name_key", t.NameKey)
		putString(d, "deref_key", t.DerefKey)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, n)
	}
	return d, nil
}

// Rebuild constructs the tree a structural description stands for.
func Rebuild(desc map[string]any) (Node, error) {
	b, err := json.Marshal(desc)
	if err != nil {
		return nil, fmt.Errorf("configema: rebuild: %w", err)
	}
	return DecodeJSON(b)
}

func putString(d map[string]any, k, v string) {
	if v != "" {
		d[k] = v
	}
}

func putBool(d map[string]any, k string, v bool) {
	if v {
		d[k] = true
	}
}

func fromWire(w *wireNode) (Node, error) {
	if w == nil {
		return nil, nil
	}
	k, ok := ParseKind(w.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, w.Kind)
	}
	meta := Meta{
		Key:             w.Key,
		Title:           w.Title,
		ProcessingOrder: w.ProcessingOrder,
		Collapsed:       w.Collapsed,
		DisableCollapse: w.DisableCollapse,
	}
	switch {
	case k.IsScalar():
		return &ScalarNode{Meta: meta, kind: k, Default: w.Default, Enum: w.Enum, TrueTitle: w.TrueTitle, FalseTitle: w.FalseTitle}, nil
	case k == KindConstant:
		return &ConstantNode{Meta: meta, Value: w.Value}, nil
	case k == KindCompound:
		return compoundFromWire(meta, w)
	case k == KindOneOf:
		o := &OneOfNode{Meta: meta}
		for _, cw := range w.Choices {
			cn, err := fromWire(cw)
			if err != nil {
				return nil, err
			}
			c, ok := cn.(*CompoundNode)
			if !ok {
				return nil, fmt.Errorf("configema: oneof alternative must be a compound, got %q", cw.Kind)
			}
			o.Choices = append(o.Choices, c)
		}
		return o, nil
	case k == KindArray:
		elem, err := fromWire(w.Elem)
		if err != nil {
			return nil, err
		}
		return &ArrayNode{Meta: meta, Elem: elem, CopyNameKey: w.CopyNameKey, CopyNameSuffix: w.CopyNameSuffix, Table: w.Table}, nil
	case k == KindReference:
		r := &ReferenceNode{Meta: meta, IDKey: w.IDKey, NameKey: w.NameKey, DerefKey: w.DerefKey}
		if w.Ref != nil {
			r.Target = RefPath{Base: w.Ref.Base, Descend: w.Ref.Descend}
		}
		return r, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, w.Kind)
}

func compoundFromWire(meta Meta, w *wireNode) (Node, error) {
	c := &CompoundNode{Meta: meta, Name: w.Name, Ident: w.Ident, TitleKey: w.TitleKey, NoHeader: w.NoHeader}
	for _, aw := range w.Attrs {
		a, err := fromWire(aw)
		if err != nil {
			return nil, err
		}
		c.Attrs = append(c.Attrs, a)
	}
	return c, nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-map roots return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
