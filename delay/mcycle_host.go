//go:build !bl602

package delay

import "time"

// Host shim: there is no mcycle CSR, so the counter is sourced from the
// monotonic clock at one cycle per nanosecond. Tests swap in scripted
// sources to exercise wraparound and wait semantics deterministically.

var hostEpoch = time.Now()

var cycleSource = func() uint64 {
	return uint64(time.Since(hostEpoch))
}

func readCycleCounter() uint64 {
	return cycleSource()
}
