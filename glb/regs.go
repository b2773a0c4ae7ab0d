package glb

// Register map for the GPIO-related parts of the GLB block. Offsets are
// relative to the GLB base. Only the registers the HAL touches are named;
// the rest of the block belongs to other peripherals' owners.
const (
	regUartSigSel0     = 0x0C0 // 3-bit selector per UART signal, 4-bit pitch
	regGpioCfgCtl0     = 0x100 // two pins per register, 16 bits each
	regGpioCfgCtl30    = 0x180 // input levels, one bit per pin
	regGpioCfgCtl32    = 0x188 // output latch, one bit per pin
	regGpioCfgCtl34    = 0x190 // output enable, one bit per pin
	regGpioIntMask1    = 0x1A0 // interrupt mask, one bit per pin
	regGpioIntStat1    = 0x1A8 // interrupt status, one bit per pin
	regGpioIntClr1     = 0x1B0 // interrupt clear, one bit per pin
	regGpioIntModeSet1 = 0x1C0 // ten pins per register, 3 bits each
)

// Per-pin bit positions inside a GPIO_CFGCTLn 16-bit half.
const (
	cfgBitIE      = 0 // input enable
	cfgBitSMT     = 1 // schmitt filter
	cfgBitDRV     = 2 // drive strength, 2 bits
	cfgBitPU      = 4 // pull-up
	cfgBitPD      = 5 // pull-down
	cfgBitFuncSel = 8 // function select, 4 bits
)

// field names one bit-field inside a 32-bit GLB register.
type field struct {
	reg   uint16
	shift uint8
	width uint8
}

func (f field) mask() uint32 {
	return ((1 << f.width) - 1) << f.shift
}

// fieldValue pairs a field with the value to write into it.
type fieldValue struct {
	f field
	v uint32
}

func fv(f field, v uint32) fieldValue {
	return fieldValue{f, v}
}

func fb(f field, set bool) fieldValue {
	if set {
		return fieldValue{f, 1}
	}
	return fieldValue{f, 0}
}

// modify performs a single read-modify-write on the register all the given
// fields live in, replacing exactly those fields and preserving every other
// bit. All fields must name the same register.
func modify(updates ...fieldValue) {
	reg := updates[0].f.reg
	var mask, bits uint32
	for _, u := range updates {
		if u.f.reg != reg {
			panic("glb: modify across registers")
		}
		mask |= u.f.mask()
		bits |= (u.v << u.f.shift) & u.f.mask()
	}
	rmwReg(reg, mask, bits)
}

func readField(f field) uint32 {
	return (readReg(f.reg) >> f.shift) & ((1 << f.width) - 1)
}
