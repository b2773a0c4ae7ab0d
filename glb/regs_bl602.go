//go:build bl602

package glb

import (
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"
)

// GLB block base address on the BL602.
const glbBase = 0x40000000

var glbRegs = (*[0x200 / 4]volatile.Register32)(unsafe.Pointer(uintptr(glbBase)))

func readReg(off uint16) uint32 {
	return glbRegs[off/4].Get()
}

func rmwReg(off uint16, mask, bits uint32) {
	r := &glbRegs[off/4]
	r.Set(r.Get()&^mask | bits)
}

// withSharedLock brackets read-modify-writes on registers whose bits are
// spread across many owners (interrupt mask/clear). An ISR touching its own
// mask bit between our read and write would otherwise be lost.
func withSharedLock(fn func()) {
	state := interrupt.Disable()
	fn()
	interrupt.Restore(state)
}
