package aprinter

import (
	"errors"
	"fmt"

	ce "github.com/reoring/configema"
)

// Supported AVR variants.
const (
	ATmega2560  = "ATmega2560"
	ATmega1284p = "ATmega1284p"
)

// ErrUnknownVariant is returned for an AVR variant without a timer layout.
var ErrUnknownVariant = errors.New("aprinter: unknown AVR variant")

// AvrTimerUnits lists the output compare units of an AVR variant in
// declaration order. Timers 0 and 2 of the ATmega2560 lack a C channel.
func AvrTimerUnits(variant string) ([]string, error) {
	var (
		timers   int
		channels func(i int) []string
	)
	switch variant {
	case ATmega2560:
		timers = 6
		channels = func(i int) []string {
			if i == 0 || i == 2 {
				return []string{"A", "B"}
			}
			return []string{"A", "B", "C"}
		}
	case ATmega1284p:
		timers = 4
		channels = func(int) []string { return []string{"A", "B"} }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	var out []string
	for i := 0; i < timers; i++ {
		for _, c := range channels(i) {
			out = append(out, fmt.Sprintf("TC%d_%s", i, c))
		}
	}
	return out, nil
}

func at91Sam3xUnits() []string {
	var out []string
	for n := 0; n < 9; n++ {
		for _, l := range []string{"A", "B", "C"} {
			out = append(out, fmt.Sprintf("TC%d%s", n, l))
		}
	}
	return out
}

func teensy3Units() []string {
	var out []string
	for i, count := range []int{8, 2} {
		for j := 0; j < count; j++ {
			out = append(out, fmt.Sprintf("FTM%d_%d", i, j))
		}
	}
	return out
}

// ocUnits renders unit names as the {value: name} records references select from.
func ocUnits(names []string) *ce.ConstantNode {
	v := make([]map[string]string, len(names))
	for i, n := range names {
		v[i] = map[string]string{"value": n}
	}
	return ce.Constant("avail_oc_units", v)
}

type inputMode struct {
	Ident string `json:"ident"`
	Name  string `json:"name"`
}

func inputModes(modes ...inputMode) *ce.ConstantNode {
	return ce.Constant("input_modes", modes)
}

// PlatformAt91Sam3x8e is the Arduino Due class platform.
func PlatformAt91Sam3x8e() *ce.CompoundNode {
	return ce.Compound("At91Sam3x8e", ce.DisableCollapse(), ce.Attrs(
		ce.Compound("At91Sam3xClock", ce.Key("clock"), ce.Title("Clock"), ce.Collapsed(), ce.Attrs(
			ce.Integer(ce.Key("prescaler"), ce.Title("Prescaler")),
			ce.String(ce.Key("primary_timer"), ce.Title("Primary timer")),
			ocUnits(at91Sam3xUnits()),
		)),
		ce.Compound("At91SamAdc", ce.Key("adc"), ce.Title("ADC"), ce.Collapsed(), ce.Attrs(
			ce.Float(ce.Key("freq"), ce.Title("Frequency")),
			ce.Float(ce.Key("avg_interval"), ce.Title("Averaging interval")),
			ce.Float(ce.Key("smoothing"), ce.Title("Smoothing factor")),
			ce.Integer(ce.Key("startup"), ce.Title("Startup time")),
			ce.Integer(ce.Key("settling"), ce.Title("Settling time")),
			ce.Integer(ce.Key("tracking"), ce.Title("Tracking time")),
			ce.Integer(ce.Key("transfer"), ce.Title("Transfer time")),
		)),
		ce.Compound("At91SamWatchdog", ce.Key("watchdog"), ce.Title("Watchdog"), ce.Collapsed(), ce.Attrs(
			ce.Integer(ce.Key("Wdv"), ce.Title("Wdv")),
		)),
		ce.Compound("At91SamPins", ce.Key("pins"), ce.Title("Pins"), ce.Collapsed(), ce.Attrs(
			inputModes(
				inputMode{"At91SamPinInputModeNormal", "Normal"},
				inputMode{"At91SamPinInputModePullUp", "Pull-up"},
			),
		)),
		ce.OneOf(ce.Key("pwm"), ce.Title("PWM module"), ce.Choices(
			ce.Compound("Disabled", ce.Title("Disabled"), ce.DisableCollapse()),
			ce.Compound("At91Sam3xPwm", ce.Title("Enabled"), ce.DisableCollapse(), ce.Attrs(
				ce.Integer(ce.Key("PreA"), ce.Title("Prescaler A")),
				ce.Integer(ce.Key("DivA"), ce.Title("Divisor A")),
				ce.Integer(ce.Key("PreB"), ce.Title("Prescaler B")),
				ce.Integer(ce.Key("DivB"), ce.Title("Divisor B")),
			)),
		)),
	))
}

// PlatformTeensy3 is the Freescale MK20 (Teensy 3) platform.
func PlatformTeensy3() *ce.CompoundNode {
	return ce.Compound("Teensy3", ce.DisableCollapse(), ce.Attrs(
		ce.Compound("Mk20Clock", ce.Key("clock"), ce.Title("Clock"), ce.Collapsed(), ce.Attrs(
			ce.Integer(ce.Key("prescaler"), ce.Title("Prescaler")),
			ce.String(ce.Key("primary_timer"), ce.Title("Primary timer")),
			ocUnits(teensy3Units()),
		)),
		ce.Compound("Mk20Adc", ce.Key("adc"), ce.Title("ADC"), ce.Collapsed(), ce.Attrs(
			ce.Integer(ce.Key("AdcADiv"), ce.Title("AdcADiv")),
		)),
		ce.Compound("Mk20Watchdog", ce.Key("watchdog"), ce.Title("Watchdog"), ce.Collapsed(), ce.Attrs(
			ce.Integer(ce.Key("Toval"), ce.Title("Timeout value")),
			ce.Integer(ce.Key("Prescval"), ce.Title("Prescaler value")),
		)),
		ce.Compound("Mk20Pins", ce.Key("pins"), ce.Title("Pins"), ce.Collapsed(), ce.Attrs(
			inputModes(
				inputMode{"Mk20PinInputModeNormal", "Normal"},
				inputMode{"Mk20PinInputModePullUp", "Pull-up"},
				inputMode{"Mk20PinInputModePullDown", "Pull-down"},
			),
		)),
	))
}

// PlatformAvr is the AVR platform for variant. It panics on a variant
// AvrTimerUnits does not know.
func PlatformAvr(variant string) *ce.CompoundNode {
	units, err := AvrTimerUnits(variant)
	if err != nil {
		panic(err)
	}
	return ce.Compound("AVR "+variant, ce.DisableCollapse(), ce.Attrs(
		ce.Compound("AvrClock", ce.Key("clock"), ce.Title("Clock"), ce.Collapsed(), ce.Attrs(
			ce.Integer(ce.Key("PrescaleDivide"), ce.Title("Prescaler (as division factor)")),
			ce.String(ce.Key("primary_timer"), ce.Title("Primary timer")),
			ocUnits(units),
			ce.Array(avrTimer(), ce.Key("timers"), ce.Title("Timer configuration"), ce.DisableCollapse()),
		)),
		ce.Compound("AvrAdc", ce.Key("adc"), ce.Title("ADC"), ce.Collapsed(), ce.Attrs(
			ce.Integer(ce.Key("RefSel")),
			ce.Integer(ce.Key("Prescaler")),
		)),
		ce.Compound("AvrWatchdog", ce.Key("watchdog"), ce.Title("Watchdog"), ce.Collapsed(), ce.Attrs(
			ce.String(ce.Key("Timeout"), ce.Title("Timeout (WDTO_*)")),
		)),
		ce.Compound("AvrPins", ce.Key("pins"), ce.Title("Pins"), ce.Collapsed(), ce.Attrs(
			inputModes(
				inputMode{"AvrPinInputModeNormal", "Normal"},
				inputMode{"AvrPinInputModePullUp", "Pull-up"},
			),
		)),
	))
}

func avrTimer() *ce.CompoundNode {
	return ce.Compound("Timer", ce.TitleKey("Timer"), ce.Collapsed(), ce.Attrs(
		ce.String(ce.Key("Timer")),
		ce.OneOf(ce.Key("Mode"), ce.Title("Mode"), ce.Choices(
			ce.Compound("AvrClockTcModeClock", ce.Title("Normal (for interrupt-timers)"), ce.DisableCollapse()),
			ce.Compound("AvrClockTcMode8BitPwm", ce.Title("PWM 8-bit (for Hard-PWM)"), ce.DisableCollapse(), ce.Attrs(
				ce.Integer(ce.Key("PrescaleDivide")),
			)),
			ce.Compound("AvrClockTcMode16BitPwm", ce.Title("PWM 16-bit (for Hard-PWM)"), ce.DisableCollapse(), ce.Attrs(
				ce.Integer(ce.Key("PrescaleDivide")),
				ce.Integer(ce.Key("TopVal")),
			)),
		)),
	))
}
