package aprinter

import ce "github.com/reoring/configema"

func board() *ce.CompoundNode {
	return ce.Compound("board",
		ce.Title("Board"), ce.TitleKey("name"), ce.Collapsed(), ce.Ident("id_board"),
		ce.Attrs(
			ce.String(ce.Key("name"), ce.Title("Name (modifying will break references from configurations and lose data)")),
			platformConfig(),
			PinChoice(ce.Key("LedPin"), ce.Title("LED pin")),
			InterruptTimerChoice(ce.Key("EventChannelTimer"), ce.Title("Event channel timer"), ce.DisableCollapse()),
			runtimeConfig(),
			serial(),
			sdCardConfig(),
			performance(),
			elemArray("stepper_ports", "Stepper ports", stepperPort(), ce.CopyName("Name", "")),
			elemArray("digital_inputs", "Digital inputs", digitalInput(), ce.CopyName("Name", ""), ce.ProcessingOrder(-8)),
			elemArray("analog_inputs", "Analog inputs", analogInput(), ce.CopyName("Name", ""), ce.ProcessingOrder(-7)),
			elemArray("pwm_outputs", "PWM outputs", pwmOutput(), ce.CopyName("Name", ""), ce.ProcessingOrder(-6)),
			elemArray("laser_ports", "Laser ports", laserPort(), ce.CopyName("Name", "")),
		),
	)
}

func platformConfig() *ce.CompoundNode {
	return ce.Compound("PlatformConfig",
		ce.Key("platform_config"), ce.Title("Platform configuration"), ce.Collapsed(), ce.ProcessingOrder(-10),
		ce.Attrs(
			ce.String(ce.Key("board_for_build"), ce.Title("Board for building (see nix/boards.nix)")),
			ce.String(ce.Key("output_type"), ce.Title("Build output type"), ce.Enum("hex", "bin")),
			ce.Array(ce.String(ce.Title("Name")),
				ce.Key("board_helper_includes"), ce.Title("Board helper includes"), ce.DisableCollapse(), ce.Table()),
			ce.OneOf(ce.Key("platform"), ce.Title("Platform"), ce.ProcessingOrder(-1), ce.Choices(
				PlatformAt91Sam3x8e(),
				PlatformTeensy3(),
				PlatformAvr(ATmega2560),
				PlatformAvr(ATmega1284p),
			)),
		),
	)
}

func runtimeConfig() *ce.CompoundNode {
	eeprom := ce.OneOf(ce.Key("Eeprom"), ce.Title("EEPROM backend"), ce.Choices(
		ce.Compound("I2cEeprom", ce.DisableCollapse(), ce.Attrs(
			I2CChoice(ce.Key("I2c"), ce.Title("I2C backend")),
			ce.Integer(ce.Key("I2cAddr")),
			ce.Integer(ce.Key("Size")),
			ce.Integer(ce.Key("BlockSize")),
			ce.Float(ce.Key("WriteTimeout")),
		)),
		ce.Compound("TeensyEeprom", ce.DisableCollapse(), ce.Attrs(
			ce.Integer(ce.Key("Size")),
			ce.Integer(ce.Key("FakeBlockSize")),
		)),
		ce.Compound("AvrEeprom", ce.DisableCollapse(), ce.Attrs(
			ce.Integer(ce.Key("FakeBlockSize")),
		)),
	))
	return ce.Compound("RuntimeConfig", ce.Key("runtime_config"), ce.Title("Runtime configuration"), ce.Collapsed(), ce.Attrs(
		ce.OneOf(ce.Key("config_manager"), ce.Title("Runtime configuration"), ce.Choices(
			ce.Compound("ConstantConfigManager", ce.Title("Disabled"), ce.DisableCollapse()),
			ce.Compound("RuntimeConfigManager", ce.Title("Enabled"), ce.DisableCollapse(), ce.Attrs(
				ce.OneOf(ce.Key("ConfigStore"), ce.Title("Configuration storage"), ce.Choices(
					ce.Compound("NoStore", ce.Title("None"), ce.DisableCollapse()),
					ce.Compound("EepromConfigStore", ce.DisableCollapse(), ce.Attrs(
						ce.Integer(ce.Key("StartBlock")),
						ce.Integer(ce.Key("EndBlock")),
						eeprom,
					)),
				)),
			)),
		)),
	))
}

func serial() *ce.CompoundNode {
	return ce.Compound("serial", ce.Key("serial"), ce.Title("Serial parameters"), ce.Collapsed(), ce.Attrs(
		ce.Integer(ce.Key("BaudRate"), ce.Title("Baud rate")),
		ce.Integer(ce.Key("RecvBufferSizeExp"), ce.Title("Receive buffer size (power of two exponent)")),
		ce.Integer(ce.Key("SendBufferSizeExp"), ce.Title("Send buffer size (power of two exponent)")),
		ce.Integer(ce.Key("GcodeMaxParts"), ce.Title("Max parts in GCode command")),
		ce.OneOf(ce.Key("Service"), ce.Title("Backend"), ce.Choices(
			ce.Compound("AsfUsbSerial", ce.Title("AT91 USB"), ce.DisableCollapse()),
			ce.Compound("At91Sam3xSerial", ce.Title("AT91 UART"), ce.DisableCollapse()),
			ce.Compound("TeensyUsbSerial", ce.Title("Teensy3 USB"), ce.DisableCollapse()),
			ce.Compound("AvrSerial", ce.Title("AVR UART"), ce.DisableCollapse(), ce.Attrs(
				ce.Boolean(ce.Key("DoubleSpeed")),
			)),
		)),
	))
}

func sdCardConfig() *ce.CompoundNode {
	parser := func(name, title string) *ce.CompoundNode {
		return ce.Compound(name, ce.Title(title), ce.DisableCollapse(), ce.Attrs(
			ce.Integer(ce.Key("MaxParts"), ce.Title("Maximum number of command parts")),
		))
	}
	return ce.Compound("SdCardConfig", ce.Key("sdcard_config"), ce.Title("SD card configuration"), ce.Collapsed(), ce.Attrs(
		ce.OneOf(ce.Key("sdcard"), ce.Title("SD card"), ce.Choices(
			ce.Compound("NoSdCard", ce.Title("Disabled"), ce.DisableCollapse()),
			ce.Compound("SdCard", ce.Title("Enabled"), ce.DisableCollapse(), ce.Attrs(
				ce.Integer(ce.Key("BufferBaseSize"), ce.Title("Buffer size")),
				ce.Integer(ce.Key("MaxCommandSize"), ce.Title("Maximum command size")),
				ce.OneOf(ce.Key("GcodeParser"), ce.Title("G-code parser"), ce.Choices(
					parser("TextGcodeParser", "Text G-code parser"),
					parser("BinaryGcodeParser", "Binary G-code parser"),
				)),
				ce.OneOf(ce.Key("SdCardService"), ce.Title("Driver"), ce.Choices(
					ce.Compound("SpiSdCard", ce.Title("SPI"), ce.DisableCollapse(), ce.Attrs(
						PinChoice(ce.Key("SsPin"), ce.Title("SS pin")),
						SPIChoice(ce.Key("SpiService"), ce.Title("SPI driver")),
					)),
				)),
			)),
		)),
	))
}

func performance() *ce.CompoundNode {
	return ce.Compound("performance", ce.Key("performance"), ce.Title("Performance parameters"), ce.Collapsed(), ce.Attrs(
		ce.Float(ce.Key("MaxStepsPerCycle"), ce.Title("Max steps per cycle")),
		ce.Integer(ce.Key("StepperSegmentBufferSize"), ce.Title("Stepper segment buffer size")),
		ce.Integer(ce.Key("EventChannelBufferSize"), ce.Title("Event channel buffer size")),
		ce.Integer(ce.Key("LookaheadBufferSize"), ce.Title("Lookahead buffer size")),
		ce.Integer(ce.Key("LookaheadCommitCount"), ce.Title("Lookahead commit count")),
		ce.String(ce.Key("FpType"), ce.Enum("float", "double")),
		ce.String(ce.Key("AxisDriverPrecisionParams"), ce.Title("Stepping precision parameters"),
			ce.Enum("AxisDriverAvrPrecisionParams", "AxisDriverDuePrecisionParams")),
		ce.Float(ce.Key("EventChannelTimerClearance"), ce.Title("Event channel timer clearance")),
	))
}

func stepperPort() *ce.CompoundNode {
	return ce.Compound("stepper_port", ce.Title("Stepper port"), ce.TitleKey("Name"), ce.Collapsed(), ce.Attrs(
		ce.String(ce.Key("Name"), ce.Title("Name")),
		PinChoice(ce.Key("DirPin"), ce.Title("Direction pin")),
		PinChoice(ce.Key("StepPin"), ce.Title("Step pin")),
		PinChoice(ce.Key("EnablePin"), ce.Title("Enable pin")),
		InterruptTimerChoice(ce.Key("StepperTimer"), ce.Title("Stepper timer"), ce.DisableCollapse()),
	))
}

func digitalInput() *ce.CompoundNode {
	return ce.Compound("digital_input",
		ce.Title("Digital input"), ce.TitleKey("Name"), ce.Collapsed(), ce.Ident("id_board_digital_inputs"),
		ce.Attrs(
			ce.String(ce.Key("Name"), ce.Title("Name")),
			PinChoice(ce.Key("Pin"), ce.Title("Pin")),
			ce.Reference(ce.RefPath{Base: "id_board.platform_config.platform", Descend: []string{"pins", "input_modes"}}, "ident", "name",
				ce.Key("InputMode"), ce.Title("Input mode")),
		),
	)
}

func analogInput() *ce.CompoundNode {
	return ce.Compound("analog_input", ce.Title("Analog input"), ce.TitleKey("Name"), ce.Collapsed(), ce.Attrs(
		ce.String(ce.Key("Name"), ce.Title("Name")),
		PinChoice(ce.Key("Pin"), ce.Title("Pin")),
	))
}

func pwmOutput() *ce.CompoundNode {
	return ce.Compound("pwm_output", ce.Title("PWM output"), ce.TitleKey("Name"), ce.Collapsed(), ce.Attrs(
		ce.String(ce.Key("Name"), ce.Title("Name")),
		ce.OneOf(ce.Key("Backend"), ce.Title("Backend"), ce.Choices(
			ce.Compound("SoftPwm", ce.DisableCollapse(), ce.Attrs(
				PinChoice(ce.Key("OutputPin"), ce.Title("Output pin")),
				ce.Boolean(ce.Key("OutputInvert"), ce.Title("Output logic"),
					ce.FalseTitle("Normal (On=High)"), ce.TrueTitle("Inverted (On=Low)")),
				ce.Float(ce.Key("PulseInterval"), ce.Title("PWM pulse duration")),
				InterruptTimerChoice(ce.Key("Timer"), ce.Title("Soft PWM Timer"), ce.DisableCollapse()),
			)),
			ce.Compound("HardPwm", ce.DisableCollapse(), ce.Attrs(
				HardPWMChoice(ce.Key("HardPwmDriver")),
			)),
		)),
	))
}

func laserPort() *ce.CompoundNode {
	return ce.Compound("laser_port",
		ce.Title("Laser port"), ce.TitleKey("Name"), ce.Collapsed(), ce.Ident("id_laser_port"),
		ce.Attrs(
			ce.String(ce.Key("Name"), ce.Title("Name"), ce.Default("Laser")),
			PWMOutputChoice(BoardContext{}, ce.Key("pwm_output"), ce.Title("PWM output (must be hard-PWM)")),
			InterruptTimerChoice(ce.Key("LaserTimer"), ce.Title("Output adjustment timer"), ce.DisableCollapse()),
		),
	)
}
