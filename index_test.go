package configema_test

import (
	"errors"
	"reflect"
	"testing"

	ce "github.com/reoring/configema"
)

// workshop is a small editor-shaped tree: configurations dereference a
// board and refer to its inputs through the dereferenced data.
func workshop() *ce.CompoundNode {
	return ce.Compound("root", ce.Ident("id_root"), ce.Attrs(
		ce.Array(ce.Compound("board", ce.Ident("id_board"), ce.Attrs(
			ce.String(ce.Key("name")),
			ce.Array(ce.Compound("input", ce.Attrs(ce.String(ce.Key("Name")))), ce.Key("inputs")),
			ce.OneOf(ce.Key("platform"), ce.Choices(
				ce.Compound("Small", ce.Attrs(ce.Integer(ce.Key("n")))),
				ce.Compound("Big", ce.Attrs(ce.Compound("clock", ce.Key("clock"), ce.Attrs(
					ce.Constant("units", []map[string]string{{"value": "TC0"}, {"value": "TC1"}}),
				)))),
			)),
			ce.Reference(ce.RefPath{Base: "id_board.platform", Descend: []string{"clock", "units"}}, "value", "value", ce.Key("unit")),
		)), ce.Key("boards")),
		ce.Array(ce.Compound("config", ce.Ident("id_config"), ce.Attrs(
			ce.Reference(ce.RefPath{Base: "id_root.boards"}, "name", "name", ce.Key("board"), ce.Deref("board_data")),
			ce.Reference(ce.RefPath{Base: "id_config.board_data", Descend: []string{"inputs"}}, "Name", "Name", ce.Key("input")),
		)), ce.Key("configs")),
	))
}

func lookupRef(t *testing.T, ix *ce.Index, p string) *ce.ReferenceNode {
	t.Helper()
	n, ok := ix.Lookup(p)
	if !ok {
		t.Fatalf("%s not found", p)
	}
	r, ok := n.(*ce.ReferenceNode)
	if !ok {
		t.Fatalf("%s is %s", p, n.Kind())
	}
	return r
}

func TestIndex_ParentsAndPaths(t *testing.T) {
	root := workshop()
	ix := ce.NewIndex(root)
	if ix.Root() != root {
		t.Fatalf("root mismatch")
	}
	if _, ok := ix.Parent(root); ok {
		t.Fatalf("root has no parent")
	}
	r := lookupRef(t, ix, "/configs/*/input")
	p, ok := ix.Parent(r)
	if !ok || p.(*ce.CompoundNode).Name != "config" {
		t.Fatalf("parent = %v", p)
	}
	if got := ix.Path(r); got != "/configs/*/input" {
		t.Fatalf("path = %s", got)
	}
	if ix.Path(ce.String()) != "" {
		t.Fatalf("foreign node has a path")
	}
	if c, ok := ix.Enclosing(r, "id_root"); !ok || c != root {
		t.Fatalf("enclosing id_root = %v", c)
	}
	if _, ok := ix.Enclosing(r, "id_board"); ok {
		t.Fatalf("id_board does not enclose a configuration")
	}
	if got := len(ix.References()); got != 3 {
		t.Fatalf("references = %d", got)
	}
}

func TestIndex_LookupFirstOnCollision(t *testing.T) {
	first := ce.String(ce.Key("a"))
	second := ce.Integer(ce.Key("a"))
	ix := ce.NewIndex(ce.Compound("r", ce.Attrs(first, second)))
	for i := 0; i < 10; i++ {
		n, ok := ix.Lookup("/a")
		if !ok || n != ce.Node(first) {
			t.Fatalf("lookup /a = %v, want the first declared child", n)
		}
	}
	if n, ok := ix.Lookup("/"); !ok || n.(*ce.CompoundNode).Name != "r" {
		t.Fatalf("lookup / = %v", n)
	}
	if _, ok := ix.Lookup("/b"); ok {
		t.Fatalf("lookup /b should miss")
	}
}

func TestIndex_Resolve(t *testing.T) {
	ix := ce.NewIndex(workshop())
	cases := map[string]string{
		"/configs/*/board": "/boards",
		"/configs/*/input": "/boards/*/inputs",
		"/boards/*/unit":   "/boards/*/platform/Big/clock/units",
	}
	for ref, want := range cases {
		tgt, err := ix.Resolve(lookupRef(t, ix, ref))
		if err != nil {
			t.Fatalf("%s: %v", ref, err)
		}
		if got := ix.Path(tgt); got != want {
			t.Errorf("%s resolves to %s, want %s", ref, got, want)
		}
	}
}

func TestIndex_ResolveErrors(t *testing.T) {
	cycle := ce.Compound("c", ce.Ident("id_c"), ce.Attrs(
		ce.Reference(ce.RefPath{Base: "id_c.x"}, "", "", ce.Key("a"), ce.Deref("x")),
	))
	noIdent := ce.Compound("c", ce.Attrs(
		ce.Reference(ce.RefPath{Base: "id_missing"}, "", "", ce.Key("a")),
	))
	noKey := ce.Compound("c", ce.Ident("id_c"), ce.Attrs(
		ce.Reference(ce.RefPath{Base: "id_c", Descend: []string{"nope"}}, "", "", ce.Key("a")),
	))
	scalar := ce.Compound("c", ce.Ident("id_c"), ce.Attrs(
		ce.String(ce.Key("s")),
		ce.Reference(ce.RefPath{Base: "id_c.s"}, "", "", ce.Key("a")),
	))
	cases := []struct {
		name string
		root *ce.CompoundNode
		want error
	}{
		{"cycle", cycle, ce.ErrRefCycle},
		{"ident", noIdent, ce.ErrIdentNotFound},
		{"key", noKey, ce.ErrNoSuchKey},
		{"kind", scalar, ce.ErrTargetKind},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ix := ce.NewIndex(c.root)
			_, err := ix.Resolve(lookupRef(t, ix, "/a"))
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}

	ix := ce.NewIndex(workshop())
	if _, err := ix.Resolve(ce.Reference(ce.RefPath{Base: "id_root"}, "", "")); !errors.Is(err, ce.ErrNotIndexed) {
		t.Fatalf("expected ErrNotIndexed, got %v", err)
	}
}

func TestWalk_OrderAndSkip(t *testing.T) {
	root := ce.Compound("r", ce.Attrs(
		ce.String(ce.Key("a")),
		ce.OneOf(ce.Key("o"), ce.Choices(ce.Compound("X", ce.Attrs(ce.Integer(ce.Key("n")))))),
		ce.Array(ce.Compound("e", ce.Attrs(ce.Float(ce.Key("f")))), ce.Key("arr")),
	))
	var got []string
	err := ce.Walk(root, func(p ce.PathRef, n ce.Node) error {
		got = append(got, p.Pointer())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"/", "/a", "/o", "/o/X", "/o/X/n", "/arr", "/arr/*", "/arr/*/f"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("walk order = %v", got)
	}

	got = nil
	_ = ce.Walk(root, func(p ce.PathRef, n ce.Node) error {
		got = append(got, p.Pointer())
		if n.Kind() == ce.KindOneOf {
			return ce.SkipChildren
		}
		return nil
	})
	want = []string{"/", "/a", "/o", "/arr", "/arr/*", "/arr/*/f"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("skip walk = %v", got)
	}

	stop := errors.New("stop")
	if err := ce.Walk(root, func(ce.PathRef, ce.Node) error { return stop }); !errors.Is(err, stop) {
		t.Fatalf("walk error = %v", err)
	}

	counts := ce.Count(root)
	if counts[ce.KindCompound] != 3 || counts[ce.KindString] != 1 || counts[ce.KindArray] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestPathRef_Escaping(t *testing.T) {
	p := ce.RootPath().Field("a/b").Field("c~d").Elem().Choice("AVR ATmega2560")
	if got := p.Pointer(); got != "/a~1b/c~0d/*/AVR ATmega2560" {
		t.Fatalf("pointer = %s", got)
	}
	if ce.ParsePath(p.Pointer()).Pointer() != p.Pointer() {
		t.Fatalf("parse does not round trip")
	}
	it := p.Issue(ce.CodeUnknownKey, "hint", "key", "x")
	if it.Path != p.Pointer() || it.Params["key"] != "x" || it.Message == "" {
		t.Fatalf("issue = %+v", it)
	}
}
