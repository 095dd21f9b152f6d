package configema

import "errors"

// SkipChildren can be returned from a WalkFunc to skip the subtree below the
// current node.
var SkipChildren = errors.New("configema: skip children")

// WalkFunc is called for every node visited by Walk.
type WalkFunc func(p PathRef, n Node) error

// Walk visits root and all of its descendants depth-first in declaration
// order. Returning an error other than SkipChildren stops the walk.
func Walk(root Node, fn WalkFunc) error {
	err := walk(RootPath(), root, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func walk(p PathRef, n Node, fn WalkFunc) error {
	if n == nil {
		return nil
	}
	if err := fn(p, n); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range children(n) {
		if err := walk(childPath(p, n, c), c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Children returns the direct children of n in declaration order.
func Children(n Node) []Node { return children(n) }

func children(n Node) []Node {
	switch t := n.(type) {
	case *CompoundNode:
		return t.Attrs
	case *OneOfNode:
		out := make([]Node, 0, len(t.Choices))
		for _, c := range t.Choices {
			if c != nil {
				out = append(out, c)
			}
		}
		return out
	case *ArrayNode:
		if t.Elem == nil {
			return nil
		}
		return []Node{t.Elem}
	}
	return nil
}

func childPath(p PathRef, parent, child Node) PathRef {
	switch parent.(type) {
	case *OneOfNode:
		return p.Choice(child.(*CompoundNode).Name)
	case *ArrayNode:
		return p.Elem()
	}
	return p.Field(child.NodeMeta().Key)
}

// Count returns the number of nodes of each kind below and including root.
func Count(root Node) map[Kind]int {
	out := map[Kind]int{}
	_ = Walk(root, func(_ PathRef, n Node) error {
		out[n.Kind()]++
		return nil
	})
	return out
}
