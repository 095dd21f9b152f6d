package jsonschema

import json "github.com/goccy/go-json"

// Draft is the JSON Schema dialect form editors expect.
const Draft = "http://json-schema.org/draft-04/schema#"

// Schema is a JSON Schema representation used for export, carrying the
// editor hints (propertyOrder, headerTemplate, options) and x- extensions
// for the parts of a configuration tree JSON Schema cannot express.
// x-deref-of marks a property holding the data inlined by the named
// reference.
type Schema struct {
	Schema string `json:"$schema,omitempty"`

	// Core
	Type    string          `json:"type,omitempty"`
	Title   string          `json:"title,omitempty"`
	Format  string          `json:"format,omitempty"`
	Default json.RawMessage `json:"default,omitempty"`
	Enum    []string        `json:"enum,omitempty"`
	Const   json.RawMessage `json:"const,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`

	// Editor hints
	PropertyOrder  int      `json:"propertyOrder,omitempty"`
	HeaderTemplate string   `json:"headerTemplate,omitempty"`
	Options        *Options `json:"options,omitempty"`

	// Extensions
	Ident           string     `json:"x-ident,omitempty"`
	ProcessingOrder int        `json:"x-processing-order,omitempty"`
	Reference       *Reference `json:"x-reference,omitempty"`
	DerefOf         string     `json:"x-deref-of,omitempty"`
	CopyNameKey     string     `json:"x-copy-name-key,omitempty"`
	CopyNameSuffix  string     `json:"x-copy-name-suffix,omitempty"`
	TrueTitle       string     `json:"x-true-title,omitempty"`
	FalseTitle      string     `json:"x-false-title,omitempty"`
}

// Options are the per-field display flags.
type Options struct {
	Collapsed       bool `json:"collapsed,omitempty"`
	DisableCollapse bool `json:"disable_collapse,omitempty"`
	NoHeader        bool `json:"no_header,omitempty"`
	Hidden          bool `json:"hidden,omitempty"`
}

// Reference describes where a reference field takes its choices from.
type Reference struct {
	Base     string   `json:"base"`
	Descend  []string `json:"descend,omitempty"`
	IDKey    string   `json:"id_key,omitempty"`
	NameKey  string   `json:"name_key,omitempty"`
	DerefKey string   `json:"deref_key,omitempty"`
}
