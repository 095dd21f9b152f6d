package configema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Option configures a node at construction time. Applying an option to a
// node kind it does not fit panics: that is a schema-authoring defect.
type Option func(Node)

func newScalar(k Kind, opts []Option) *ScalarNode {
	s := &ScalarNode{kind: k}
	apply(s, opts)
	return s
}

// String declares a string field.
func String(opts ...Option) *ScalarNode { return newScalar(KindString, opts) }

// Integer declares an integer field.
func Integer(opts ...Option) *ScalarNode { return newScalar(KindInteger, opts) }

// Float declares a floating-point field.
func Float(opts ...Option) *ScalarNode { return newScalar(KindFloat, opts) }

// Boolean declares a boolean field.
func Boolean(opts ...Option) *ScalarNode { return newScalar(KindBoolean, opts) }

// Constant declares a fixed value under key.
func Constant(key string, value any, opts ...Option) *ConstantNode {
	c := &ConstantNode{Meta: Meta{Key: key}, Value: canonical(value)}
	apply(c, opts)
	return c
}

// Compound declares a record named name. Children are supplied with Attrs.
func Compound(name string, opts ...Option) *CompoundNode {
	c := &CompoundNode{Name: name}
	apply(c, opts)
	return c
}

// OneOf declares a tagged union. Alternatives are supplied with Choices.
func OneOf(opts ...Option) *OneOfNode {
	o := &OneOfNode{}
	apply(o, opts)
	return o
}

// Array declares a collection of elem.
func Array(elem Node, opts ...Option) *ArrayNode {
	a := &ArrayNode{Elem: elem}
	apply(a, opts)
	return a
}

// Reference declares a reference to the collection at target.
func Reference(target RefPath, idKey, nameKey string, opts ...Option) *ReferenceNode {
	if len(target.Descend) == 0 {
		target.Descend = nil
	} else {
		target.Descend = append([]string(nil), target.Descend...)
	}
	r := &ReferenceNode{Target: target, IDKey: idKey, NameKey: nameKey}
	apply(r, opts)
	return r
}

func apply(n Node, opts []Option) {
	for _, o := range opts {
		if o != nil {
			o(n)
		}
	}
}

func misuse(opt string, n Node) {
	panic(fmt.Sprintf("configema: option %s does not apply to %s", opt, n.Kind()))
}

// ---- common options ----

// Key sets the field key within the parent compound.
func Key(k string) Option { return func(n Node) { n.NodeMeta().Key = k } }

// Title sets the human-readable title.
func Title(t string) Option { return func(n Node) { n.NodeMeta().Title = t } }

// ProcessingOrder sets the evaluation-order hint.
func ProcessingOrder(o int) Option { return func(n Node) { n.NodeMeta().ProcessingOrder = o } }

// Collapsed renders the node collapsed initially.
func Collapsed() Option { return func(n Node) { n.NodeMeta().Collapsed = true } }

// DisableCollapse prevents the node from being collapsed.
func DisableCollapse() Option { return func(n Node) { n.NodeMeta().DisableCollapse = true } }

// ---- scalar options ----

// Default sets the default value of a scalar.
func Default(v any) Option {
	return func(n Node) {
		s, ok := n.(*ScalarNode)
		if !ok {
			misuse("Default", n)
		}
		s.Default = canonical(v)
	}
}

// Enum restricts a string field to the given values.
func Enum(values ...string) Option {
	return func(n Node) {
		s, ok := n.(*ScalarNode)
		if !ok || s.kind != KindString {
			misuse("Enum", n)
		}
		s.Enum = append(s.Enum, values...)
	}
}

// TrueTitle labels the true state of a boolean.
func TrueTitle(t string) Option {
	return func(n Node) {
		s, ok := n.(*ScalarNode)
		if !ok || s.kind != KindBoolean {
			misuse("TrueTitle", n)
		}
		s.TrueTitle = t
	}
}

// FalseTitle labels the false state of a boolean.
func FalseTitle(t string) Option {
	return func(n Node) {
		s, ok := n.(*ScalarNode)
		if !ok || s.kind != KindBoolean {
			misuse("FalseTitle", n)
		}
		s.FalseTitle = t
	}
}

// ---- compound options ----

func asCompound(opt string, n Node) *CompoundNode {
	c, ok := n.(*CompoundNode)
	if !ok {
		misuse(opt, n)
	}
	return c
}

// Ident tags a compound so references can use it as a base.
func Ident(id string) Option { return func(n Node) { asCompound("Ident", n).Ident = id } }

// TitleKey names the child whose value labels the compound.
func TitleKey(k string) Option { return func(n Node) { asCompound("TitleKey", n).TitleKey = k } }

// NoHeader hides the compound header.
func NoHeader() Option { return func(n Node) { asCompound("NoHeader", n).NoHeader = true } }

// Attrs appends children to a compound.
func Attrs(children ...Node) Option {
	return func(n Node) {
		c := asCompound("Attrs", n)
		for _, ch := range children {
			if ch != nil {
				c.Attrs = append(c.Attrs, ch)
			}
		}
	}
}

// ---- oneof / array / reference options ----

// Choices appends alternatives to a OneOf.
func Choices(alts ...*CompoundNode) Option {
	return func(n Node) {
		o, ok := n.(*OneOfNode)
		if !ok {
			misuse("Choices", n)
		}
		o.Choices = append(o.Choices, alts...)
	}
}

// CopyName sets the element field rewritten on duplication and the suffix
// appended to it.
func CopyName(key, suffix string) Option {
	return func(n Node) {
		a, ok := n.(*ArrayNode)
		if !ok {
			misuse("CopyName", n)
		}
		a.CopyNameKey = key
		a.CopyNameSuffix = suffix
	}
}

// Table renders an array as a grid.
func Table() Option {
	return func(n Node) {
		a, ok := n.(*ArrayNode)
		if !ok {
			misuse("Table", n)
		}
		a.Table = true
	}
}

// Deref inlines the referenced object's data under key.
func Deref(key string) Option {
	return func(n Node) {
		r, ok := n.(*ReferenceNode)
		if !ok {
			misuse("Deref", n)
		}
		r.DerefKey = key
	}
}

// canonical converts v to the value encoding/decoding would produce
// (float64, string, bool, []any, map[string]any).
func canonical(v any) any {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("configema: value %T is not JSON-representable: %v", v, err))
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		panic(fmt.Sprintf("configema: canonicalize %T: %v", v, err))
	}
	return out
}
