package glb

import "strconv"

// NumPins is the number of physical GPIO pins on the BL602 (GPIO0..GPIO22).
const NumPins = 23

// Pull selects the internal pull resistor for GPIO and PWM pin modes.
type Pull uint8

const (
	Floating Pull = iota
	PullUp
	PullDown
)

func (p Pull) String() string {
	switch p {
	case Floating:
		return "floating"
	case PullUp:
		return "pull-up"
	case PullDown:
		return "pull-down"
	}
	return "pull(" + strconv.Itoa(int(p)) + ")"
}

// Function-select codes written to a pin's func_sel field.
const (
	funcSpi    = 4
	funcI2c    = 6
	funcUart   = 7
	funcPwm    = 8
	funcSwGpio = 11 // software-controlled GPIO
)

// pinState is the per-physical-pin record shared by every handle that has
// ever pointed at the pin. gen identifies the one currently valid handle.
type pinState struct {
	n   uint8
	gen uint32
}

var pinStates [NumPins]pinState

func init() {
	for i := range pinStates {
		pinStates[i].n = uint8(i)
	}
}

// pinCore is embedded in every mode-specific pin handle. Its methods are
// promoted into each handle type, which is what makes every mode transition
// callable from every mode.
type pinCore struct {
	s   *pinState
	gen uint32
}

// Number returns the physical pin index (0..22).
func (c pinCore) Number() int {
	return int(c.s.n)
}

// check panics if this handle has been superseded by a mode transition.
// Using a revoked handle would silently bypass the single-owner invariant,
// so it fails loudly instead.
func (c pinCore) check() {
	if c.gen != c.s.gen {
		panic("glb: revoked handle used for pin " + strconv.Itoa(int(c.s.n)))
	}
}

// cfgField locates a per-pin field inside the pin's GPIO_CFGCTLn half.
func (c pinCore) cfgField(bit, width uint8) field {
	return field{
		reg:   regGpioCfgCtl0 + 4*uint16(c.s.n/2),
		shift: 16*(c.s.n%2) + bit,
		width: width,
	}
}

func (c pinCore) funcSel() field { return c.cfgField(cfgBitFuncSel, 4) }
func (c pinCore) ie() field      { return c.cfgField(cfgBitIE, 1) }
func (c pinCore) smt() field     { return c.cfgField(cfgBitSMT, 1) }
func (c pinCore) drv() field     { return c.cfgField(cfgBitDRV, 2) }
func (c pinCore) pu() field      { return c.cfgField(cfgBitPU, 1) }
func (c pinCore) pd() field      { return c.cfgField(cfgBitPD, 1) }

// pinBit locates the pin's single bit inside one of the shared one-bit-per-
// pin registers (levels, latch, output enable, interrupt mask/stat/clr).
func (c pinCore) pinBit(reg uint16) field {
	return field{reg: reg, shift: c.s.n, width: 1}
}

// transition writes one mode-select pattern and reissues the handle.
//
// Two separate register writes: the config RMW first, then the
// output-enable RMW on GPIO_CFGCTL34 (oe is always the negation of ie).
// Hardware observing the pin between the two writes sees a transient
// half-configured state; the window is part of the two-register interface
// and is left open on purpose.
func (c pinCore) transition(fnsel uint32, pullUp, pullDown, inputEnable bool) pinCore {
	c.check()
	modify(
		fv(c.funcSel(), fnsel),
		fb(c.ie(), inputEnable),
		fb(c.pu(), pullUp),
		fb(c.pd(), pullDown),
		fv(c.drv(), 0),
		fb(c.smt(), false),
	)
	modify(fb(c.pinBit(regGpioCfgCtl34), !inputEnable))
	c.s.gen++
	return pinCore{s: c.s, gen: c.s.gen}
}

// ---------------------------------------------------------------------------
// Mode transitions. Defined on pinCore so promotion makes them available on
// every handle type; each consumes the current handle (revoking it) and
// returns a handle of the destination mode.
// ---------------------------------------------------------------------------

// IntoFloatingOutput configures the pin as a Hi-Z software-GPIO output.
func (c pinCore) IntoFloatingOutput() OutputPin {
	return OutputPin{c.transition(funcSwGpio, false, false, false), Floating}
}

// IntoPullUpOutput configures the pin as a software-GPIO output with the
// internal pull-up enabled.
func (c pinCore) IntoPullUpOutput() OutputPin {
	return OutputPin{c.transition(funcSwGpio, true, false, false), PullUp}
}

// IntoPullDownOutput configures the pin as a software-GPIO output with the
// internal pull-down enabled.
func (c pinCore) IntoPullDownOutput() OutputPin {
	return OutputPin{c.transition(funcSwGpio, false, true, false), PullDown}
}

// IntoFloatingInput configures the pin as a Hi-Z software-GPIO input.
func (c pinCore) IntoFloatingInput() InputPin {
	return InputPin{c.transition(funcSwGpio, false, false, true), Floating}
}

// IntoPullUpInput configures the pin as a software-GPIO input with the
// internal pull-up enabled.
func (c pinCore) IntoPullUpInput() InputPin {
	return InputPin{c.transition(funcSwGpio, true, false, true), PullUp}
}

// IntoPullDownInput configures the pin as a software-GPIO input with the
// internal pull-down enabled.
func (c pinCore) IntoPullDownInput() InputPin {
	return InputPin{c.transition(funcSwGpio, false, true, true), PullDown}
}

// IntoFloatingPwm hands the pin to the PWM block with no pull.
func (c pinCore) IntoFloatingPwm() PwmPin {
	return PwmPin{c.transition(funcPwm, false, false, true), Floating}
}

// IntoPullUpPwm hands the pin to the PWM block with the pull-up enabled.
func (c pinCore) IntoPullUpPwm() PwmPin {
	return PwmPin{c.transition(funcPwm, true, false, true), PullUp}
}

// IntoPullDownPwm hands the pin to the PWM block with the pull-down enabled.
func (c pinCore) IntoPullDownPwm() PwmPin {
	return PwmPin{c.transition(funcPwm, false, true, true), PullDown}
}

// IntoUart hands the pin to the UART alternate function. Which UART role it
// carries is decided by the signal router for the pin's channel.
func (c pinCore) IntoUart() UartPin {
	return UartPin{c.transition(funcUart, true, false, true)}
}

// IntoSpi hands the pin to the SPI alternate function.
func (c pinCore) IntoSpi() SpiPin {
	return SpiPin{c.transition(funcSpi, true, false, true)}
}

// IntoI2c hands the pin to the I2C alternate function.
func (c pinCore) IntoI2c() I2cPin {
	return I2cPin{c.transition(funcI2c, true, false, true)}
}
