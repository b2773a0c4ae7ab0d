//go:build !bl602

package glb

import (
	"strconv"
	"sync"
)

// Host shim: the GLB block is modelled as plain memory so the HAL, its
// tests and the diag console all run with plain `go test` / `go run` on a
// development machine. The block starts zeroed; handles issued by Split
// assume the hardware floating-input reset default, same as on silicon.

const glbSpan = 0x200 // bytes of the block the HAL addresses

// WriteRecord is one entry of the simulated block's write log.
type WriteRecord struct {
	Offset uint16
	Old    uint32
	New    uint32
}

var (
	regMu    sync.Mutex
	regFile  [glbSpan / 4]uint32
	writeLog []WriteRecord

	// sharedMu backs the critical section around read-modify-writes on
	// registers whose bits are spread across many owners (interrupt
	// mask/clear). On device this is an interrupt-disable window instead.
	sharedMu sync.Mutex
)

func readReg(off uint16) uint32 {
	regMu.Lock()
	defer regMu.Unlock()
	return regFile[off/4]
}

func rmwReg(off uint16, mask, bits uint32) {
	regMu.Lock()
	defer regMu.Unlock()
	old := regFile[off/4]
	next := old&^mask | bits
	regFile[off/4] = next
	writeLog = append(writeLog, WriteRecord{Offset: off, Old: old, New: next})
}

func withSharedLock(fn func()) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	fn()
}

// ---------------------------------------------------------------------------
// Simulation controls, exported for tests and for the diag console's
// offline mode. Not part of the device API.
// ---------------------------------------------------------------------------

// SimReset returns the simulated block, the split guard and every handle
// generation to power-on state.
func SimReset() {
	regMu.Lock()
	for i := range regFile {
		regFile[i] = 0
	}
	writeLog = nil
	regMu.Unlock()

	splitMu.Lock()
	splitDone = false
	splitMu.Unlock()

	for i := range pinStates {
		pinStates[i] = pinState{n: uint8(i)}
	}
	for i := range muxStates {
		muxStates[i] = muxState{sig: uint8(i)}
	}
}

// SimPeek reads a raw register word from the simulated block.
func SimPeek(off uint16) uint32 {
	return readReg(off)
}

// SimPoke writes a raw register word into the simulated block, bypassing
// the write log. Used to model externally-driven state.
func SimPoke(off uint16, v uint32) {
	regMu.Lock()
	regFile[off/4] = v
	regMu.Unlock()
}

// SimSetInput drives the simulated input level of a pin, as if an external
// signal were attached.
func SimSetInput(pin int, high bool) {
	regMu.Lock()
	if high {
		regFile[regGpioCfgCtl30/4] |= 1 << uint(pin)
	} else {
		regFile[regGpioCfgCtl30/4] &^= 1 << uint(pin)
	}
	regMu.Unlock()
}

// SimSetPending drives the simulated interrupt status bit of a pin.
func SimSetPending(pin int, pending bool) {
	regMu.Lock()
	if pending {
		regFile[regGpioIntStat1/4] |= 1 << uint(pin)
	} else {
		regFile[regGpioIntStat1/4] &^= 1 << uint(pin)
	}
	regMu.Unlock()
}

// SimRegister is one named register of the simulated block.
type SimRegister struct {
	Name   string
	Offset uint16
	Value  uint32
}

// SimSnapshot returns the registers the HAL addresses, with their current
// simulated values, in offset order.
func SimSnapshot() []SimRegister {
	regs := []SimRegister{
		{"uart_sig_sel_0", regUartSigSel0, 0},
	}
	for i := 0; i < 12; i++ {
		regs = append(regs, SimRegister{
			Name:   "gpio_cfgctl" + strconv.Itoa(i),
			Offset: regGpioCfgCtl0 + 4*uint16(i),
		})
	}
	regs = append(regs,
		SimRegister{"gpio_cfgctl30", regGpioCfgCtl30, 0},
		SimRegister{"gpio_cfgctl32", regGpioCfgCtl32, 0},
		SimRegister{"gpio_cfgctl34", regGpioCfgCtl34, 0},
		SimRegister{"gpio_int_mask1", regGpioIntMask1, 0},
		SimRegister{"gpio_int_stat1", regGpioIntStat1, 0},
		SimRegister{"gpio_int_clr1", regGpioIntClr1, 0},
		SimRegister{"gpio_int_mode_set1", regGpioIntModeSet1, 0},
		SimRegister{"gpio_int_mode_set2", regGpioIntModeSet1 + 4, 0},
		SimRegister{"gpio_int_mode_set3", regGpioIntModeSet1 + 8, 0},
	)
	for i := range regs {
		regs[i].Value = readReg(regs[i].Offset)
	}
	return regs
}

// SimWriteLog returns a copy of the write log accumulated since the last
// reset or SimClearWriteLog.
func SimWriteLog() []WriteRecord {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]WriteRecord, len(writeLog))
	copy(out, writeLog)
	return out
}

// SimClearWriteLog discards the accumulated write log.
func SimClearWriteLog() {
	regMu.Lock()
	writeLog = nil
	regMu.Unlock()
}
