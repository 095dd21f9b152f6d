package aprinter

import ce "github.com/reoring/configema"

// Editor builds the complete schema of the APrinter configuration editor.
// Every call returns a fresh, structurally identical tree.
func Editor() *ce.CompoundNode {
	return ce.Compound("editor",
		ce.Title("Configuration editor"), ce.DisableCollapse(), ce.NoHeader(), ce.Ident("id_editor"),
		ce.Attrs(
			ce.Constant("version", 1),
			ce.Reference(ce.RefPath{Base: "id_editor.configurations"}, "name", "name",
				ce.Key("selected_config"), ce.Title("Selected configuration (to compile)")),
			ce.Array(configuration(),
				ce.Key("configurations"), ce.Title("Configurations"), ce.ProcessingOrder(-1), ce.CopyName("name", "")),
			ce.Array(board(),
				ce.Key("boards"), ce.Title("Boards"), ce.ProcessingOrder(-2), ce.CopyName("name", "")),
		),
	)
}

// elemArray declares the common shape of a named-element collection.
func elemArray(key, title string, elem *ce.CompoundNode, opts ...ce.Option) *ce.ArrayNode {
	return ce.Array(elem, append([]ce.Option{ce.Key(key), ce.Title(title), ce.DisableCollapse()}, opts...)...)
}

func configuration() *ce.CompoundNode {
	return ce.Compound("config",
		ce.Key("config"), ce.Ident("id_configuration"), ce.Title("Configuration"), ce.TitleKey("name"), ce.Collapsed(),
		ce.Attrs(
			ce.String(ce.Key("name"), ce.Title("Configuration name"), ce.Default("New Configuration")),
			ce.Reference(ce.RefPath{Base: "id_editor.boards"}, "name", "name",
				ce.Key("board"), ce.Deref("board_data"), ce.Title("Board"), ce.ProcessingOrder(-1)),
			ce.Float(ce.Key("InactiveTime"), ce.Title("Disable steppers after [s]"), ce.Default(480)),
			ce.Compound("advanced", ce.Key("advanced"), ce.Title("Advanced parameters"), ce.Collapsed(), ce.Attrs(
				ce.Float(ce.Key("LedBlinkInterval"), ce.Title("LED blink interval [s]"), ce.Default(0.5)),
				ce.Float(ce.Key("ForceTimeout"), ce.Title("Force motion timeout [s]"), ce.Default(0.1)),
			)),
			elemArray("steppers", "Steppers", stepper(), ce.CopyName("Name", "?")),
			transformChoice(),
			elemArray("heaters", "Heaters", heater(), ce.CopyName("Name", "?")),
			elemArray("fans", "Fans", fan(), ce.CopyName("Name", "?")),
			probeConfig(),
			elemArray("lasers", "Lasers", laser(), ce.CopyName("Name", "?")),
		),
	)
}

func stepper() *ce.CompoundNode {
	return ce.Compound("stepper",
		ce.Title("Stepper"), ce.TitleKey("Name"), ce.Collapsed(), ce.Ident("id_configuration_stepper"),
		ce.Attrs(
			ce.String(ce.Key("Name"), ce.Title("Name (cartesian X/Y/Z, extruders E/U/V, delta A/B/C)")),
			ce.Reference(ConfigurationContext{}.BoardRef([]string{"stepper_ports"}), "Name", "Name",
				ce.Key("stepper_port"), ce.Title("Stepper port")),
			ce.Boolean(ce.Key("InvertDir"), ce.Title("Invert direction"),
				ce.FalseTitle("No (high StepPin is positive motion)"), ce.TrueTitle("Yes (high StepPin is negative motion)"), ce.Default(false)),
			ce.Float(ce.Key("StepsPerUnit"), ce.Title("Steps per unit [1/mm]"), ce.Default(80)),
			ce.Float(ce.Key("MinPos"), ce.Title("Minimum position [mm] (~-40000 for extruders)"), ce.Default(0)),
			ce.Float(ce.Key("MaxPos"), ce.Title("Maximum position [mm] (~40000 for extruders)"), ce.Default(200)),
			ce.Float(ce.Key("MaxSpeed"), ce.Title("Maximum speed [mm/s]"), ce.Default(300)),
			ce.Float(ce.Key("MaxAccel"), ce.Title("Maximum acceleration [mm/s^2]"), ce.Default(1500)),
			ce.Float(ce.Key("DistanceFactor"), ce.Title("Distance factor [1]"), ce.Default(1)),
			ce.Float(ce.Key("CorneringDistance"), ce.Title("Cornering distance [step]"), ce.Default(40)),
			ce.Boolean(ce.Key("EnableCartesianSpeedLimit"), ce.Title("Is cartesian (Yes for X/Y/Z, No for extruders)"), ce.Default(true)),
			HomingParams(ce.Key("homing")),
		),
	)
}

// CoreXY and Delta are the built-in coordinate transforms.
var (
	CoreXY = TransformDef{
		Type:  "CoreXY",
		Title: "CoreXY/H-bot",
		Steppers: []StepperDef{
			{DefaultName: "A", Title: "First stepper"},
			{DefaultName: "B", Title: "Second stepper"},
		},
		Axes: []AxisDef{
			{AxisName: "X", HomingAllowed: true},
			{AxisName: "Y", HomingAllowed: true},
		},
	}
	Delta = TransformDef{
		Type:                      "Delta",
		Title:                     "Delta",
		SegmentsPerSecondRelevant: true,
		Steppers: []StepperDef{
			{DefaultName: "A", Title: "Tower-1 stepper (bottom-left)"},
			{DefaultName: "B", Title: "Tower-2 stepper (bottom-right)"},
			{DefaultName: "C", Title: "Tower-3 stepper (top)"},
		},
		Axes: []AxisDef{
			{AxisName: "X"},
			{AxisName: "Y"},
			{AxisName: "Z"},
		},
		Params: deltaParams,
	}
)

func deltaParams() []ce.Node {
	return []ce.Node{
		ce.Float(ce.Key("DiagnalRod"), ce.Title("Diagonal rod length [mm]"), ce.Default(214)),
		ce.Float(ce.Key("SmoothRodOffset"), ce.Title("Smooth rod offset [mm]"), ce.Default(145)),
		ce.Float(ce.Key("EffectorOffset"), ce.Title("Effector offset [mm]"), ce.Default(19.9)),
		ce.Float(ce.Key("CarriageOffset"), ce.Title("Carriage offset [mm]"), ce.Default(19.5)),
		ce.Float(ce.Key("MinSplitLength"), ce.Title("Minimum segment length for splitting [mm]"), ce.Default(0.1)),
		ce.Float(ce.Key("MaxSplitLength"), ce.Title("Maximum segment length for splitting [mm]"), ce.Default(4.0)),
	}
}

func transformChoice() *ce.OneOfNode {
	return ce.OneOf(ce.Key("transform"), ce.Title("Coordinate transformation"), ce.Choices(
		ce.Compound("NoTransform", ce.Title("None (cartesian)"), ce.DisableCollapse()),
		MustTransformType(CoreXY),
		MustTransformType(Delta),
	))
}

func heater() *ce.CompoundNode {
	return ce.Compound("heater",
		ce.Title("Heater"), ce.TitleKey("Name"), ce.Collapsed(), ce.Ident("id_configuration_heater"),
		ce.Attrs(
			ce.String(ce.Key("Name"), ce.Title("Name (single character, T=extruder, B=bed)")),
			PWMOutputChoice(ConfigurationContext{}, ce.Key("pwm_output"), ce.Title("PWM output")),
			ce.Integer(ce.Key("SetMCommand"), ce.Title("Set command M-number (extruder 104, bed 140)"), ce.Default(104)),
			ce.Integer(ce.Key("WaitMCommand"), ce.Title("Wait command M-number (extruder 109, bed 190)"), ce.Default(109)),
			AnalogInputChoice(ce.Key("ThermistorInput"), ce.Title("Thermistor analog input")),
			ce.Float(ce.Key("MinSafeTemp"), ce.Title("Turn off if temperature is below [C]"), ce.Default(10)),
			ce.Float(ce.Key("MaxSafeTemp"), ce.Title("Turn off if temperature is above [C]"), ce.Default(280)),
			ce.Compound("conversion", ce.Key("conversion"), ce.Title("Conversion parameters"), ce.DisableCollapse(), ce.Attrs(
				ce.Float(ce.Key("ResistorR"), ce.Title("Series-resistor resistance [ohm]"), ce.Default(4700)),
				ce.Float(ce.Key("R0"), ce.Title("Thermistor resistance @25C [ohm]"), ce.Default(100000)),
				ce.Float(ce.Key("Beta"), ce.Title("Thermistor beta value [K]"), ce.Default(3960)),
				ce.Float(ce.Key("MinTemp"), ce.Title("Reliable measurements are above [C]"), ce.Default(10)),
				ce.Float(ce.Key("MaxTemp"), ce.Title("Reliable measurements are below [C]"), ce.Default(300)),
			)),
			ce.Compound("control", ce.Key("control"), ce.Title("PID control parameters"), ce.DisableCollapse(), ce.Attrs(
				ce.Float(ce.Key("ControlInterval"), ce.Title("Invoke the PID control algorithm every [s]"), ce.Default(0.2)),
				ce.Float(ce.Key("PidP"), ce.Title("Proportional factor [1/K]"), ce.Default(0.05)),
				ce.Float(ce.Key("PidI"), ce.Title("Integral factor [1/(Ks)]"), ce.Default(0.0005)),
				ce.Float(ce.Key("PidD"), ce.Title("Derivative factor [s/K]"), ce.Default(0.2)),
				ce.Float(ce.Key("PidIStateMin"), ce.Title("Lower bound of the integral value [1]"), ce.Default(0.0)),
				ce.Float(ce.Key("PidIStateMax"), ce.Title("Upper bound of the integral value [1]"), ce.Default(0.6)),
				ce.Float(ce.Key("PidDHistory"), ce.Title("Smoothing factor for derivative estimation [1]"), ce.Default(0.7)),
			)),
			ce.Compound("observer", ce.Key("observer"), ce.Title("Temperature-reached semantics"), ce.DisableCollapse(), ce.Attrs(
				ce.Float(ce.Key("ObserverTolerance"), ce.Title("The temperature must be within [K]"), ce.Default(3)),
				ce.Float(ce.Key("ObserverMinTime"), ce.Title("For at least this long [s]"), ce.Default(3)),
				ce.Float(ce.Key("ObserverInterval"), ce.Title("With a measurement taken each [s]"), ce.Default(0.5)),
			)),
		),
	)
}

func fan() *ce.CompoundNode {
	return ce.Compound("fan",
		ce.Title("Fan"), ce.TitleKey("Name"), ce.Collapsed(), ce.Ident("id_configuration_fan"),
		ce.Attrs(
			ce.String(ce.Key("Name"), ce.Title("Name (single character, e.g. the same as corresponding extruder)")),
			PWMOutputChoice(ConfigurationContext{}, ce.Key("pwm_output"), ce.Title("PWM output")),
			ce.Integer(ce.Key("SetMCommand"), ce.Title("Set-command M-number (106 for first fan)")),
			ce.Integer(ce.Key("OffMCommand"), ce.Title("Off-command M-number (107 for first fan)")),
		),
	)
}

func probeConfig() *ce.CompoundNode {
	return ce.Compound("ProbeConfig", ce.Key("probe_config"), ce.Title("Bed probing configuration"), ce.Collapsed(), ce.Attrs(
		ce.OneOf(ce.Key("probe"), ce.Title("Bed probing"), ce.Choices(
			ce.Compound("NoProbe", ce.Title("Disabled"), ce.DisableCollapse()),
			ce.Compound("Probe", ce.Title("Enabled"), ce.Ident("id_configuration_probe_probe"), ce.DisableCollapse(), ce.Attrs(
				DigitalInputChoice(ce.Key("ProbePin"), ce.Title("Probe switch pin")),
				ce.Boolean(ce.Key("InvertInput"), ce.Title("Invert switch input"),
					ce.FalseTitle("No (high signal is pressed)"), ce.TrueTitle("Yes (low signal is pressed)")),
				ce.Float(ce.Key("OffsetX"), ce.Title("X-offset of probe from logical position [mm]"), ce.Default(0)),
				ce.Float(ce.Key("OffsetY"), ce.Title("Y-offset of probe from logical position [mm]"), ce.Default(0)),
				ce.Float(ce.Key("StartHeight"), ce.Title("Starting Z for probing a point [mm]"), ce.Default(10)),
				ce.Float(ce.Key("LowHeight"), ce.Title("Minimum Z to move down to [mm]"), ce.Default(2)),
				ce.Float(ce.Key("RetractDist"), ce.Title("Retraction distance [mm]"), ce.Default(1)),
				ce.Float(ce.Key("MoveSpeed"), ce.Title("Speed for moving to probe points [mm/s]"), ce.Default(200)),
				ce.Float(ce.Key("FastSpeed"), ce.Title("Fast probing speed [mm/s]"), ce.Default(2)),
				ce.Float(ce.Key("RetractSpeed"), ce.Title("Retraction speed [mm/s]"), ce.Default(10)),
				ce.Float(ce.Key("SlowSpeed"), ce.Title("Slow probing speed [mm/s]"), ce.Default(0.5)),
				ce.Array(ce.Compound("ProbePoint", ce.Title("Point"), ce.Attrs(
					ce.Float(ce.Key("X")),
					ce.Float(ce.Key("Y")),
				)), ce.Key("ProbePoints"), ce.Title("Coordinates of probing points"), ce.DisableCollapse(), ce.Table()),
			)),
		)),
	))
}

func laser() *ce.CompoundNode {
	return ce.Compound("laser",
		ce.Title("Laser"), ce.TitleKey("Name"), ce.Collapsed(), ce.Ident("id_configuration_laser"),
		ce.Attrs(
			ce.String(ce.Key("Name"), ce.Title("Name (single letter)"), ce.Default("L")),
			ce.Reference(ConfigurationContext{}.BoardRef([]string{"laser_ports"}), "Name", "Name",
				ce.Key("laser_port"), ce.Title("Laser port")),
			ce.String(ce.Key("DensityName"), ce.Title("Density-control name (single letter)"), ce.Default("M")),
			ce.Float(ce.Key("LaserPower"), ce.Title("Laser power [Energy/s]"), ce.Default(100)),
			ce.Float(ce.Key("MaxPower"), ce.Title("Maximum power [Energy/s] (values <LaserPower limit laser output)"), ce.Default(100)),
			ce.Float(ce.Key("AdjustmentInterval"), ce.Title("Output adjustment interval [s]"), ce.Default(0.005)),
		),
	)
}
