package jsonschema_test

import (
	"errors"
	"reflect"
	"testing"

	json "github.com/goccy/go-json"

	ce "github.com/reoring/configema"
	"github.com/reoring/configema/aprinter"
	js "github.com/reoring/configema/jsonschema"
)

// normalize marshals v to JSON and unmarshals back into interface{} to remove ordering effects.
func normalize(t *testing.T, v any) any {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestFromNode_Scalars(t *testing.T) {
	s, err := js.FromNode(ce.Float(ce.Key("MaxPos"), ce.Title("Maximum position [mm]"), ce.Default(200)))
	if err != nil {
		t.Fatal(err)
	}
	got := normalize(t, s)
	want := map[string]any{"type": "number", "title": "Maximum position [mm]", "default": float64(200)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("float schema mismatch\n got=%v\nwant=%v", got, want)
	}

	s, _ = js.FromNode(ce.String(ce.Key("output_type"), ce.Enum("hex", "bin")))
	if s.Type != "string" || !reflect.DeepEqual(s.Enum, []string{"hex", "bin"}) {
		t.Fatalf("enum schema = %+v", s)
	}

	s, _ = js.FromNode(ce.Boolean(ce.TrueTitle("Positive"), ce.FalseTitle("Negative"), ce.Default(false)))
	if s.Type != "boolean" || s.TrueTitle != "Positive" || s.FalseTitle != "Negative" || string(s.Default) != "false" {
		t.Fatalf("boolean schema = %+v", s)
	}
}

func TestFromNode_ConstantHidden(t *testing.T) {
	s, err := js.FromNode(ce.Constant("SegmentsPerSecond", 0))
	if err != nil {
		t.Fatal(err)
	}
	if string(s.Const) != "0" || s.Options == nil || !s.Options.Hidden {
		t.Fatalf("constant schema = %+v", s)
	}
}

func TestFromNode_Object(t *testing.T) {
	c := ce.Compound("stepper", ce.Title("Stepper"), ce.TitleKey("Name"), ce.Collapsed(), ce.Ident("id_stepper"), ce.Attrs(
		ce.String(ce.Key("Name")),
		ce.Float(ce.Key("StepsPerUnit"), ce.ProcessingOrder(-1)),
	))
	s, err := js.FromNode(c)
	if err != nil {
		t.Fatal(err)
	}
	if s.Type != "object" || s.AdditionalProperties != false {
		t.Fatalf("object schema = %+v", s)
	}
	if !reflect.DeepEqual(s.Required, []string{"Name", "StepsPerUnit"}) {
		t.Fatalf("required = %v", s.Required)
	}
	if s.Properties["Name"].PropertyOrder != 1 || s.Properties["StepsPerUnit"].PropertyOrder != 2 {
		t.Fatalf("property order not declaration order")
	}
	if s.Properties["StepsPerUnit"].ProcessingOrder != -1 {
		t.Fatalf("processing order lost")
	}
	if s.HeaderTemplate != "{{ self.Name }}" || s.Ident != "id_stepper" || !s.Options.Collapsed {
		t.Fatalf("editor hints = %+v", s)
	}
}

func TestFromNode_OneOfAndArray(t *testing.T) {
	o := ce.OneOf(ce.Key("probe"), ce.Choices(
		ce.Compound("NoProbe", ce.Title("Disabled")),
		ce.Compound("Probe", ce.Title("Enabled"), ce.Attrs(
			ce.Array(ce.Compound("ProbePoint", ce.Attrs(ce.Float(ce.Key("X")), ce.Float(ce.Key("Y")))),
				ce.Key("ProbePoints"), ce.Table(), ce.CopyName("X", "?")),
		)),
	))
	s, err := js.FromNode(o)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.OneOf) != 2 {
		t.Fatalf("alternatives = %d", len(s.OneOf))
	}
	tag := s.OneOf[1].Properties[ce.CompoundTagKey]
	if tag == nil || string(tag.Const) != `"Probe"` || !tag.Options.Hidden {
		t.Fatalf("discriminator = %+v", tag)
	}
	if s.OneOf[0].Title != "Disabled" || !reflect.DeepEqual(s.OneOf[0].Required, []string{ce.CompoundTagKey}) {
		t.Fatalf("first alternative = %+v", s.OneOf[0])
	}
	arr := s.OneOf[1].Properties["ProbePoints"]
	if arr.Type != "array" || arr.Format != "table" || arr.Items.Type != "object" || arr.CopyNameKey != "X" || arr.CopyNameSuffix != "?" {
		t.Fatalf("array = %+v", arr)
	}
}

func TestFromNode_Reference(t *testing.T) {
	r := ce.Reference(ce.RefPath{Base: "id_board.platform_config.platform", Descend: []string{"clock", "avail_oc_units"}}, "value", "value", ce.Deref("lalal"))
	s, err := js.FromNode(r)
	if err != nil {
		t.Fatal(err)
	}
	want := &js.Reference{Base: "id_board.platform_config.platform", Descend: []string{"clock", "avail_oc_units"}, IDKey: "value", NameKey: "value", DerefKey: "lalal"}
	if s.Type != "string" || !reflect.DeepEqual(s.Reference, want) {
		t.Fatalf("reference schema = %+v", s.Reference)
	}
}

func TestFromNode_Errors(t *testing.T) {
	if _, err := js.FromNode(ce.Array(nil, ce.Key("arr"))); !errors.Is(err, js.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if _, err := js.FromNode(nil); !errors.Is(err, js.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for nil, got %v", err)
	}
}

func TestDocument_Editor(t *testing.T) {
	doc, err := js.Document(aprinter.Editor())
	if err != nil {
		t.Fatal(err)
	}
	if doc.Schema != js.Draft || doc.Ident != "id_editor" || !doc.Options.NoHeader {
		t.Fatalf("root = %+v", doc)
	}
	want := []string{"boards", "configurations", "selected_config", "version"}
	if !reflect.DeepEqual(doc.Required, want) {
		t.Fatalf("required = %v", doc.Required)
	}
	if doc.Properties["boards"].ProcessingOrder != -2 {
		t.Fatalf("boards order = %d", doc.Properties["boards"].ProcessingOrder)
	}
	if _, err := json.Marshal(doc); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}

func TestFromNode_DerefProperty(t *testing.T) {
	doc, err := js.Document(aprinter.Editor())
	if err != nil {
		t.Fatal(err)
	}
	item := doc.Properties["configurations"].Items
	bd, ok := item.Properties["board_data"]
	if !ok {
		t.Fatalf("configuration schema does not allow board_data")
	}
	if bd.DerefOf != "board" || bd.Type != "" || !bd.Options.Hidden {
		t.Fatalf("board_data = %+v", bd)
	}
	for _, r := range item.Required {
		if r == "board_data" {
			t.Fatalf("board_data must be optional: %v", item.Required)
		}
	}
	if item.AdditionalProperties != false {
		t.Fatalf("additionalProperties = %v", item.AdditionalProperties)
	}

	c := ce.Compound("heater", ce.Ident("id_heater"), ce.Attrs(
		ce.Array(ce.Compound("out", ce.Attrs(ce.String(ce.Key("Name")))), ce.Key("outs")),
		ce.Reference(ce.RefPath{Base: "id_heater.outs"}, "Name", "Name", ce.Key("out"), ce.Deref("out_data")),
		ce.Reference(ce.RefPath{Base: "id_heater.outs"}, "Name", "Name", ce.Key("plain")),
	))
	s, err := js.FromNode(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Properties) != 4 || s.Properties["out_data"].DerefOf != "out" {
		t.Fatalf("properties = %v", s.Properties)
	}
	if !reflect.DeepEqual(s.Required, []string{"out", "outs", "plain"}) {
		t.Fatalf("required = %v", s.Required)
	}
}
