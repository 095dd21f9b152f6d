package configema

// Kind identifies a node variant.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindConstant
	KindCompound
	KindOneOf
	KindArray
	KindReference
)

var kindNames = [...]string{
	KindString:    "string",
	KindInteger:   "integer",
	KindFloat:     "float",
	KindBoolean:   "boolean",
	KindConstant:  "constant",
	KindCompound:  "compound",
	KindOneOf:     "oneof",
	KindArray:     "array",
	KindReference: "reference",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// IsScalar reports whether k is one of the editable leaf kinds.
func (k Kind) IsScalar() bool {
	return k == KindString || k == KindInteger || k == KindFloat || k == KindBoolean
}

// Node is implemented by every schema node. The set of implementations is
// closed: *ScalarNode, *ConstantNode, *CompoundNode, *OneOfNode, *ArrayNode
// and *ReferenceNode.
type Node interface {
	Kind() Kind
	NodeMeta() *Meta
}

// Meta holds the attributes shared by all node kinds.
type Meta struct {
	Key             string // field key within the parent compound
	Title           string
	ProcessingOrder int // evaluation order hint for consumers; lower runs first
	Collapsed       bool
	DisableCollapse bool
}

// ScalarNode is an editable leaf: string, integer, float or boolean.
type ScalarNode struct {
	Meta
	kind       Kind
	Default    any      // canonical JSON value; nil when no default
	Enum       []string // permitted values (string only)
	TrueTitle  string   // boolean only
	FalseTitle string   // boolean only
}

func (s *ScalarNode) Kind() Kind { return s.kind }
func (s *ScalarNode) NodeMeta() *Meta { return &s.Meta }

// ConstantNode is a fixed, non-editable value baked into the schema.
type ConstantNode struct {
	Meta
	Value any // canonical JSON value
}

func (c *ConstantNode) Kind() Kind { return KindConstant }
func (c *ConstantNode) NodeMeta() *Meta { return &c.Meta }

// CompoundNode is an ordered record of keyed children.
type CompoundNode struct {
	Meta
	Name     string // type name; the tag when used as a OneOf alternative
	Ident    string // stable identifier used as a reference base
	TitleKey string // child whose value labels the compound
	NoHeader bool
	Attrs    []Node
}

func (c *CompoundNode) Kind() Kind { return KindCompound }
func (c *CompoundNode) NodeMeta() *Meta { return &c.Meta }

// Child returns the child with the given key.
func (c *CompoundNode) Child(key string) (Node, bool) {
	for _, a := range c.Attrs {
		if a.NodeMeta().Key == key {
			return a, true
		}
	}
	return nil, false
}

// Keys lists child keys in declaration order.
func (c *CompoundNode) Keys() []string {
	out := make([]string, 0, len(c.Attrs))
	for _, a := range c.Attrs {
		out = append(out, a.NodeMeta().Key)
	}
	return out
}

// OneOfNode is a tagged union over compound alternatives.
type OneOfNode struct {
	Meta
	Choices []*CompoundNode
}

func (o *OneOfNode) Kind() Kind { return KindOneOf }
func (o *OneOfNode) NodeMeta() *Meta { return &o.Meta }

// Choice returns the alternative tagged name.
func (o *OneOfNode) Choice(name string) (*CompoundNode, bool) {
	for _, c := range o.Choices {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Tags lists alternative names in declaration order.
func (o *OneOfNode) Tags() []string {
	out := make([]string, 0, len(o.Choices))
	for _, c := range o.Choices {
		out = append(out, c.Name)
	}
	return out
}

// ArrayNode is a variable-length homogeneous collection.
type ArrayNode struct {
	Meta
	Elem           Node
	CopyNameKey    string // element field rewritten when an element is duplicated
	CopyNameSuffix string // appended to CopyNameKey on duplication
	Table          bool   // render as a grid
}

func (a *ArrayNode) Kind() Kind { return KindArray }
func (a *ArrayNode) NodeMeta() *Meta { return &a.Meta }

// RefPath locates a reference target: Base is "ident.key.key..." and Descend
// lists further keys below it.
type RefPath struct {
	Base    string
	Descend []string
}

// ReferenceNode is a field constrained to identifier values found elsewhere in
// the tree.
type ReferenceNode struct {
	Meta
	Target   RefPath
	IDKey    string
	NameKey  string
	DerefKey string // when set, the target's data is inlined under this key
}

func (r *ReferenceNode) Kind() Kind { return KindReference }
func (r *ReferenceNode) NodeMeta() *Meta { return &r.Meta }

// CompoundTagKey carries the selected alternative inside a OneOf value.
const CompoundTagKey = "_compoundName"
