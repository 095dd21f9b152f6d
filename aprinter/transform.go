package aprinter

import (
	"errors"
	"fmt"

	ce "github.com/reoring/configema"
)

// ErrTransformDimensions is returned when a transform declares a different
// number of steppers and cartesian axes.
var ErrTransformDimensions = errors.New("aprinter: stepper and axis counts differ")

// StepperDef describes one stepper a transform drives.
type StepperDef struct {
	DefaultName string
	Title       string
}

// AxisDef describes one cartesian axis a transform exposes.
type AxisDef struct {
	AxisName      string
	HomingAllowed bool
}

// TransformDef parameterizes TransformType.
type TransformDef struct {
	Type                      string
	Title                     string
	SegmentsPerSecondRelevant bool
	Steppers                  []StepperDef
	Axes                      []AxisDef
	// Params returns the transform specific fields, prepended to the
	// generated ones. It is called once per build so trees never share nodes.
	Params func() []ce.Node
}

// HomingParams selects whether and how an axis homes.
func HomingParams(opts ...ce.Option) *ce.OneOfNode {
	return ce.OneOf(append([]ce.Option{ce.Title("Homing"), ce.Choices(
		ce.Compound("no_homing", ce.Title("Disabled"), ce.DisableCollapse()),
		ce.Compound("homing", ce.Title("Enabled"), ce.Ident("id_board_steppers_homing"), ce.DisableCollapse(), ce.Attrs(
			ce.Boolean(ce.Key("HomeDir"), ce.Title("Homing direction"), ce.FalseTitle("Negative"), ce.TrueTitle("Positive"), ce.Default(false)),
			DigitalInputChoice(ce.Key("HomeEndstopInput"), ce.Title("Endstop digital input")),
			ce.Boolean(ce.Key("HomeEndInvert"), ce.Title("Invert endstop"), ce.FalseTitle("No (high signal is pressed)"), ce.TrueTitle("Yes (low signal is pressed)"), ce.Default(false)),
			ce.Float(ce.Key("HomeFastMaxDist"), ce.Title("Maximum fast travel [mm] (use more than abs(MinPos-MaxPos))"), ce.Default(250)),
			ce.Float(ce.Key("HomeRetractDist"), ce.Title("Retraction travel [mm]"), ce.Default(3)),
			ce.Float(ce.Key("HomeSlowMaxDist"), ce.Title("Maximum slow travel [mm] (use more than RetractionTravel)"), ce.Default(5)),
			ce.Float(ce.Key("HomeFastSpeed"), ce.Title("Fast speed [mm/s]"), ce.Default(40)),
			ce.Float(ce.Key("HomeRetractSpeed"), ce.Title("Retraction speed [mm/s]"), ce.Default(50)),
			ce.Float(ce.Key("HomeSlowSpeed"), ce.Title("Slow speed [mm/s]"), ce.Default(5)),
		)),
	)}, opts...)...)
}

// TransformType builds the alternative of the transform OneOf for def.
func TransformType(def TransformDef) (*ce.CompoundNode, error) {
	if len(def.Steppers) != len(def.Axes) {
		return nil, fmt.Errorf("%w: %s has %d steppers and %d axes", ErrTransformDimensions, def.Type, len(def.Steppers), len(def.Axes))
	}

	var attrs []ce.Node
	if def.Params != nil {
		attrs = append(attrs, def.Params()...)
	}
	if def.SegmentsPerSecondRelevant {
		attrs = append(attrs, ce.Float(ce.Key("SegmentsPerSecond"), ce.Title("Max segments per second"), ce.Default(100)))
	} else {
		attrs = append(attrs, ce.Constant("SegmentsPerSecond", 0))
	}

	steppers := make([]ce.Node, len(def.Steppers))
	for i, s := range def.Steppers {
		steppers[i] = ce.Compound("TransformStepperParams",
			ce.Key(fmt.Sprintf("TransformStepper%d", i)), ce.Title(s.Title), ce.Collapsed(),
			ce.Attrs(ce.String(ce.Key("StepperName"), ce.Title("Name of stepper to use"), ce.Default(s.DefaultName))),
		)
	}

	axes := make([]ce.Node, len(def.Axes))
	for i, a := range def.Axes {
		var homing ce.Node
		if a.HomingAllowed {
			homing = HomingParams(ce.Key("homing"))
		} else {
			homing = ce.Constant("homing", map[string]any{ce.CompoundTagKey: "no_homing"})
		}
		axes[i] = ce.Compound("VirtualAxisParams",
			ce.Key(fmt.Sprintf("VirtualAxis%d", i)), ce.Title("Cartesian axis "+a.AxisName), ce.Collapsed(),
			ce.Attrs(
				ce.Constant("Name", a.AxisName),
				ce.Float(ce.Key("MinPos"), ce.Title("Minimum position [mm]"), ce.Default(0)),
				ce.Float(ce.Key("MaxPos"), ce.Title("Maximum position [mm]"), ce.Default(200)),
				ce.Float(ce.Key("MaxSpeed"), ce.Title("Maximum speed [mm/s]"), ce.Default(300)),
				homing,
			),
		)
	}

	attrs = append(attrs,
		ce.Constant("DimensionCount", len(def.Steppers)),
		ce.Compound("Steppers", ce.Key("Steppers"), ce.Title("Stepper mapping"), ce.DisableCollapse(), ce.Attrs(steppers...)),
		ce.Compound("CartesianAxes", ce.Key("CartesianAxes"), ce.Title("Cartesian axes"), ce.DisableCollapse(), ce.Attrs(axes...)),
	)
	return ce.Compound(def.Type, ce.Title(def.Title), ce.DisableCollapse(), ce.Attrs(attrs...)), nil
}

// MustTransformType is TransformType that panics on error.
func MustTransformType(def TransformDef) *ce.CompoundNode {
	c, err := TransformType(def)
	if err != nil {
		panic(err)
	}
	return c
}
