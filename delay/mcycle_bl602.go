//go:build bl602

package delay

import "device/riscv"

// readCycleCounter reads the 64-bit cycle count from the mcycle/mcycleh CSR
// pair. On RV32 the two halves cannot be read in one instruction, so the
// high half is re-read until it is stable across the low-half read.
func readCycleCounter() uint64 {
	for {
		hi := riscv.MCYCLEH.Get()
		lo := riscv.MCYCLE.Get()
		if riscv.MCYCLEH.Get() == hi {
			return uint64(hi)<<32 | uint64(lo)
		}
	}
}
