package aprinter

import ce "github.com/reoring/configema"

// OCUnitChoice selects an output compare unit among the platform clock's
// avail_oc_units.
func OCUnitChoice(opts ...ce.Option) *ce.ReferenceNode {
	return ce.Reference(
		ce.RefPath{Base: "id_board.platform_config.platform", Descend: []string{"clock", "avail_oc_units"}},
		"value", "value",
		append([]ce.Option{ce.Title("Output compare unit"), ce.Deref("lalal")}, opts...)...,
	)
}

// InterruptTimerChoice wraps an output compare unit as a timer record.
func InterruptTimerChoice(opts ...ce.Option) *ce.CompoundNode {
	return ce.Compound("interrupt_timer", append([]ce.Option{
		ce.Ident("id_interrupt_timer_choice"),
		ce.Attrs(OCUnitChoice(ce.Key("oc_unit"))),
	}, opts...)...)
}

// PinChoice is a free-form pin name.
func PinChoice(opts ...ce.Option) *ce.ScalarNode { return ce.String(opts...) }

// DigitalInputChoice refers to a digital input of the configuration's board.
func DigitalInputChoice(opts ...ce.Option) *ce.ReferenceNode {
	return ce.Reference(ConfigurationContext{}.BoardRef([]string{"digital_inputs"}), "Name", "Name", opts...)
}

// AnalogInputChoice refers to an analog input of the configuration's board.
func AnalogInputChoice(opts ...ce.Option) *ce.ReferenceNode {
	return ce.Reference(ConfigurationContext{}.BoardRef([]string{"analog_inputs"}), "Name", "Name", opts...)
}

// PWMOutputChoice refers to a PWM output, rooted by ctx.
func PWMOutputChoice(ctx BoardRefContext, opts ...ce.Option) *ce.ReferenceNode {
	return ce.Reference(ctx.BoardRef([]string{"pwm_outputs"}), "Name", "Name", opts...)
}

// I2CChoice selects the I2C driver.
func I2CChoice(opts ...ce.Option) *ce.OneOfNode {
	return ce.OneOf(append([]ce.Option{ce.Choices(
		ce.Compound("At91SamI2c", ce.DisableCollapse(), ce.Attrs(
			ce.String(ce.Key("Device")),
			ce.Integer(ce.Key("Ckdiv")),
			ce.Float(ce.Key("I2cFreq")),
		)),
	)}, opts...)...)
}

// SPIChoice selects the SPI driver.
func SPIChoice(opts ...ce.Option) *ce.OneOfNode {
	return ce.OneOf(append([]ce.Option{ce.Choices(
		ce.Compound("At91SamSpi", ce.DisableCollapse(), ce.Attrs(
			ce.String(ce.Key("Device")),
		)),
		ce.Compound("AvrSpi", ce.DisableCollapse(), ce.Attrs(
			ce.Integer(ce.Key("SpeedDiv")),
		)),
	)}, opts...)...)
}

// HardPWMChoice selects the hardware PWM driver.
func HardPWMChoice(opts ...ce.Option) *ce.OneOfNode {
	return ce.OneOf(append([]ce.Option{ce.Title("Hard-PWM driver"), ce.Choices(
		ce.Compound("AvrClockPwm", ce.Ident("id_pwm_output"), ce.DisableCollapse(), ce.Attrs(
			OCUnitChoice(ce.Key("oc_unit")),
			PinChoice(ce.Key("OutputPin"), ce.Title("Output pin (determined by OC unit)")),
		)),
		ce.Compound("At91Sam3xPwmChannel", ce.DisableCollapse(), ce.Attrs(
			ce.Integer(ce.Key("ChannelPrescaler"), ce.Title("Channel prescaler")),
			ce.Integer(ce.Key("ChannelPeriod"), ce.Title("Channel period value")),
			ce.Integer(ce.Key("ChannelNumber"), ce.Title("Channel number")),
			PinChoice(ce.Key("OutputPin"), ce.Title("Output pin (constrained by choice of channel/signal)")),
			ce.String(ce.Key("Signal"), ce.Title("Connection type (L/H)")),
		)),
	)}, opts...)...)
}
