package glb

// InputPin is a pin in software-GPIO input mode. It reads the external
// level and carries the interrupt configuration facet (interrupt.go).
type InputPin struct {
	pinCore
	pull Pull
}

// Pull reports which internal pull resistor the pin was configured with.
func (p InputPin) Pull() Pull { return p.pull }

// IsHigh reports whether the external level on the pin is high.
func (p InputPin) IsHigh() bool {
	p.check()
	return readField(p.pinBit(regGpioCfgCtl30)) != 0
}

// IsLow reports whether the external level on the pin is low.
func (p InputPin) IsLow() bool {
	return !p.IsHigh()
}

// EnableInputFilter turns on the pin's schmitt-trigger input filter.
// A single field write; the mode does not change, so the handle stays valid.
func (p InputPin) EnableInputFilter() {
	p.check()
	modify(fb(p.smt(), true))
}

// DisableInputFilter turns off the pin's schmitt-trigger input filter.
func (p InputPin) DisableInputFilter() {
	p.check()
	modify(fb(p.smt(), false))
}

// OutputPin is a pin in software-GPIO output mode.
type OutputPin struct {
	pinCore
	pull Pull
}

// Pull reports which internal pull resistor the pin was configured with.
func (p OutputPin) Pull() Pull { return p.pull }

// SetHigh drives the output latch high.
func (p OutputPin) SetHigh() {
	p.check()
	modify(fb(p.pinBit(regGpioCfgCtl32), true))
}

// SetLow drives the output latch low.
func (p OutputPin) SetLow() {
	p.check()
	modify(fb(p.pinBit(regGpioCfgCtl32), false))
}

// IsSetHigh reports whether the output latch is high.
func (p OutputPin) IsSetHigh() bool {
	p.check()
	return readField(p.pinBit(regGpioCfgCtl32)) != 0
}

// IsSetLow reports whether the output latch is low.
func (p OutputPin) IsSetLow() bool {
	return !p.IsSetHigh()
}

// Toggle reads the output latch and writes the opposite level.
func (p OutputPin) Toggle() {
	if p.IsSetHigh() {
		p.SetLow()
	} else {
		p.SetHigh()
	}
}

// PwmPin is a pin handed to the PWM block. Duty-cycle control belongs to
// the PWM peripheral's owner, not to this handle.
type PwmPin struct {
	pinCore
	pull Pull
}

// Pull reports which internal pull resistor the pin was configured with.
func (p PwmPin) Pull() Pull { return p.pull }

// UartPin is a pin handed to the UART alternate function.
type UartPin struct {
	pinCore
}

// Signal returns the UART signal channel (0..7) this pin attaches to. The
// channel's router (UartMux) decides which UART role the pin carries.
func (p UartPin) Signal() int {
	return p.Number() % 8
}

// SpiFunction is the SPI role a pin carries in SPI mode, fixed per pin by
// the chip's mux table.
type SpiFunction uint8

const (
	SpiMiso SpiFunction = iota
	SpiMosi
	SpiSs
	SpiSclk
)

func (f SpiFunction) String() string {
	switch f {
	case SpiMiso:
		return "miso"
	case SpiMosi:
		return "mosi"
	case SpiSs:
		return "ss"
	}
	return "sclk"
}

// SpiPin is a pin handed to the SPI alternate function.
type SpiPin struct {
	pinCore
}

// Function returns the SPI role this pin carries (the mux table cycles
// miso, mosi, ss, sclk over consecutive pins).
func (p SpiPin) Function() SpiFunction {
	return SpiFunction(p.Number() % 4)
}

// I2cFunction is the I2C role a pin carries in I2C mode.
type I2cFunction uint8

const (
	I2cScl I2cFunction = iota
	I2cSda
)

func (f I2cFunction) String() string {
	if f == I2cScl {
		return "scl"
	}
	return "sda"
}

// I2cPin is a pin handed to the I2C alternate function.
type I2cPin struct {
	pinCore
}

// Function returns the I2C role this pin carries (even pins scl, odd sda).
func (p I2cPin) Function() I2cFunction {
	return I2cFunction(p.Number() % 2)
}
