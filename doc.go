// Package configema describes configuration schemas as trees of typed nodes
// that a form-based editor renders and validates.
//
// The package provides:
//
// - A tagged node model: scalars, constants, compounds (records), OneOf
// (tagged unions discriminated by "_compoundName"), arrays and references
// into collections elsewhere in the tree
// - Functional-option builders (String, Compound, OneOf, Array, Reference, ...)
// - Walk and Index for traversal, parent lookup and reference resolution
// - Check, which reports structural defects as Issues (tree pointer, code, message)
// - A structural JSON/YAML description that round-trips to an identical tree
//
// Design policy:
// - Keep only the node model and its tooling in the root package; concrete
// schemas live in their own packages (aprinter), projections under
// jsonschema/, and the CLI under cmd/configema.
// - Trees are immutable once built and safe to share between goroutines.
// - Misapplied builder options panic; they are authoring defects.
//
// Typical usage:
//
//	root := configema.Compound("editor", configema.Ident("id_editor"), configema.Attrs(
//		configema.Constant("version", 1),
//		configema.Array(configema.Compound("board", configema.Ident("id_board")), configema.Key("boards")),
//	))
//	if err := configema.Check(root); err != nil {
//		iss, _ := configema.AsIssues(err)
//		// inspect iss
//	}
//	b, err := configema.EncodeJSON(root)
package configema
