package glb

// Event selects the input condition that raises a pin's interrupt.
type Event uint8

const (
	NegativePulse Event = 0 // falling edge
	PositivePulse Event = 1 // rising edge
	NegativeLevel Event = 2 // low level
	PositiveLevel Event = 3 // high level
)

func (e Event) String() string {
	switch e {
	case NegativePulse:
		return "negative-pulse"
	case PositivePulse:
		return "positive-pulse"
	case NegativeLevel:
		return "negative-level"
	}
	return "positive-level"
}

// Interrupt mode fields: three bits per pin, ten pins per GPIO_INT_MODE_SETn
// register. Trigger mode in the low two bits, sampling control in the third.
func (c pinCore) triggerField() field {
	return field{
		reg:   regGpioIntModeSet1 + 4*uint16(c.s.n/10),
		shift: 3 * (c.s.n % 10),
		width: 2,
	}
}

func (c pinCore) samplingField() field {
	f := c.triggerField()
	return field{reg: f.reg, shift: f.shift + 2, width: 1}
}

// SetTriggerEvent selects which input condition raises this pin's interrupt.
func (p InputPin) SetTriggerEvent(e Event) {
	p.check()
	modify(fv(p.triggerField(), uint32(e)))
}

// SetSamplingAsynchronous samples the interrupt input directly, without
// clock synchronisation. Needed to wake from clock-gated states.
func (p InputPin) SetSamplingAsynchronous() {
	p.check()
	modify(fb(p.samplingField(), true))
}

// SetSamplingSynchronous samples the interrupt input through the bus clock
// (the reset behaviour).
func (p InputPin) SetSamplingSynchronous() {
	p.check()
	modify(fb(p.samplingField(), false))
}

// EnableInterrupt unmasks this pin's interrupt. The mask register is shared
// by all pins, so the read-modify-write runs in a critical section; an
// interrupt handler adjusting another pin's mask bit concurrently must not
// have its update lost.
func (p InputPin) EnableInterrupt() {
	p.check()
	withSharedLock(func() {
		modify(fb(p.pinBit(regGpioIntMask1), false))
	})
}

// DisableInterrupt masks this pin's interrupt.
func (p InputPin) DisableInterrupt() {
	p.check()
	withSharedLock(func() {
		modify(fb(p.pinBit(regGpioIntMask1), true))
	})
}

// ClearPending acknowledges this pin's pending interrupt by writing its bit
// in the shared clear register.
func (p InputPin) ClearPending() {
	p.check()
	withSharedLock(func() {
		modify(fb(p.pinBit(regGpioIntClr1), true))
	})
}

// IsPending reports whether this pin's interrupt status bit is set.
func (p InputPin) IsPending() bool {
	p.check()
	return readField(p.pinBit(regGpioIntStat1)) != 0
}
