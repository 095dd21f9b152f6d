package configema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotIndexed reports a node that does not belong to the indexed tree.
	ErrNotIndexed = errors.New("configema: node not in tree")
	// ErrIdentNotFound reports a reference base whose ident has no enclosing compound.
	ErrIdentNotFound = errors.New("configema: ident not found")
	// ErrNoSuchKey reports a path segment that cannot be descended.
	ErrNoSuchKey = errors.New("configema: no such key")
	// ErrRefCycle reports dereference keys that resolve through themselves.
	ErrRefCycle = errors.New("configema: reference cycle")
	// ErrTargetKind reports a reference that lands on a node that cannot hold identifiers.
	ErrTargetKind = errors.New("configema: reference target is not a collection")
)

type entry struct {
	parent Node
	path   PathRef
}

// Index records parent links and pointers of every node in a tree so that
// references can be resolved against their enclosing compounds.
type Index struct {
	root    Node
	entries map[Node]entry
	byPath  map[string]Node
	refs    []*ReferenceNode
}

// NewIndex indexes root. The tree must not change afterwards.
func NewIndex(root Node) *Index {
	ix := &Index{root: root, entries: map[Node]entry{}, byPath: map[string]Node{}}
	ix.add(nil, RootPath(), root)
	return ix
}

func (ix *Index) add(parent Node, p PathRef, n Node) {
	if n == nil {
		return
	}
	ix.entries[n] = entry{parent: parent, path: p}
	// First node wins when keys collide.
	if ptr := p.Pointer(); ix.byPath[ptr] == nil {
		ix.byPath[ptr] = n
	}
	if r, ok := n.(*ReferenceNode); ok {
		ix.refs = append(ix.refs, r)
	}
	for _, c := range children(n) {
		ix.add(n, childPath(p, n, c), c)
	}
}

// Root returns the indexed tree root.
func (ix *Index) Root() Node { return ix.root }

// Parent returns the parent of n; the root has none.
func (ix *Index) Parent(n Node) (Node, bool) {
	e, ok := ix.entries[n]
	if !ok || e.parent == nil {
		return nil, false
	}
	return e.parent, true
}

// Path returns the pointer of n, or "" when n is not in the tree.
func (ix *Index) Path(n Node) string {
	e, ok := ix.entries[n]
	if !ok {
		return ""
	}
	return e.path.Pointer()
}

// References lists every reference in the tree in walk order.
func (ix *Index) References() []*ReferenceNode { return ix.refs }

// Lookup returns the node at pointer p. When siblings share a key the
// first in declaration order is returned.
func (ix *Index) Lookup(p string) (Node, bool) {
	n, ok := ix.byPath[p]
	return n, ok
}

// Enclosing returns the nearest ancestor compound of n carrying ident.
func (ix *Index) Enclosing(n Node, ident string) (*CompoundNode, bool) {
	cur, ok := ix.Parent(n)
	for ok {
		if c, isC := cur.(*CompoundNode); isC && c.Ident == ident {
			return c, true
		}
		cur, ok = ix.Parent(cur)
	}
	return nil, false
}

// Resolve finds the node a reference points at. The first segment of the
// base names the ident of an enclosing compound; the remaining base
// segments and Descend are followed from there. A key that matches the
// deref key of a sibling reference stands for one element of that
// reference's target.
func (ix *Index) Resolve(ref *ReferenceNode) (Node, error) {
	return ix.resolve(ref, map[*ReferenceNode]bool{})
}

func (ix *Index) resolve(ref *ReferenceNode, visiting map[*ReferenceNode]bool) (Node, error) {
	if _, ok := ix.entries[ref]; !ok {
		return nil, ErrNotIndexed
	}
	if visiting[ref] {
		return nil, fmt.Errorf("%w at %s", ErrRefCycle, ix.Path(ref))
	}
	visiting[ref] = true
	defer delete(visiting, ref)

	segs := strings.Split(ref.Target.Base, ".")
	ident := segs[0]
	start, ok := ix.Enclosing(ref, ident)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrIdentNotFound, ident)
	}
	keys := make([]string, 0, len(segs)-1+len(ref.Target.Descend))
	keys = append(keys, segs[1:]...)
	keys = append(keys, ref.Target.Descend...)

	var cur Node = start
	for _, k := range keys {
		next, err := ix.descend(cur, k, visiting)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	if !isRefTarget(cur) {
		return nil, fmt.Errorf("%w: %s at %s", ErrTargetKind, cur.Kind(), ix.Path(cur))
	}
	return cur, nil
}

func (ix *Index) descend(cur Node, key string, visiting map[*ReferenceNode]bool) (Node, error) {
	switch t := cur.(type) {
	case *CompoundNode:
		if ch, ok := t.Child(key); ok {
			return ch, nil
		}
		for _, a := range t.Attrs {
			r, ok := a.(*ReferenceNode)
			if !ok || r.DerefKey != key {
				continue
			}
			tgt, err := ix.resolve(r, visiting)
			if err != nil {
				return nil, err
			}
			if arr, ok := tgt.(*ArrayNode); ok {
				return arr.Elem, nil
			}
			return tgt, nil
		}
	case *OneOfNode:
		var firstErr error
		for _, c := range t.Choices {
			if c == nil {
				continue
			}
			n, err := ix.descend(c, key, visiting)
			if err == nil {
				return n, nil
			}
			if firstErr == nil && !errors.Is(err, ErrNoSuchKey) {
				firstErr = err
			}
		}
		if firstErr != nil {
			return nil, firstErr
		}
	case *ArrayNode:
		if t.Elem != nil {
			return ix.descend(t.Elem, key, visiting)
		}
	}
	return nil, fmt.Errorf("%w: %q below %s", ErrNoSuchKey, key, ix.Path(cur))
}

func isRefTarget(n Node) bool {
	switch t := n.(type) {
	case *ArrayNode, *CompoundNode:
		return true
	case *ConstantNode:
		_, ok := t.Value.([]any)
		return ok
	}
	return false
}
