// Package delay provides cycle-accurate busy-wait delays timed by the
// RISC-V machine cycle counter (mcycle). Useful for device initialisation
// sequences and bit-banged protocols where timer peripherals are overkill.
//
// Every operation here is infallible: reading the counter cannot fail, so
// nothing returns an error.
package delay

// McycleDelay converts time units into cycle counts for one core clock
// frequency. It is stateless with respect to time; every delay re-samples
// the hardware counter.
type McycleDelay struct {
	coreFrequencyHz uint32
}

// New constructs a delay provider for the given core clock frequency.
// The frequency must be the clock the core is actually running at: a wrong
// value yields proportionally wrong delays with no detectable error.
func New(coreFrequencyHz uint32) McycleDelay {
	return McycleDelay{coreFrequencyHz: coreFrequencyHz}
}

// CoreFrequency returns the frequency the provider was constructed with.
func (d McycleDelay) CoreFrequency() uint32 {
	return d.coreFrequencyHz
}

// CycleCount returns the free-running hardware cycle counter.
func CycleCount() uint64 {
	return readCycleCounter()
}

// CyclesSince returns the number of cycles elapsed since start. The
// subtraction wraps modulo 2^64, so the result stays correct across a
// single counter overflow.
func CyclesSince(start uint64) uint64 {
	return readCycleCounter() - start
}

// BusyWaitCycles spins until strictly more than n cycles have elapsed.
// The strict comparison means the observed wait is never shorter than
// requested, and typically a little longer from sampling jitter.
func BusyWaitCycles(n uint64) {
	start := CycleCount()
	for CyclesSince(start) <= n {
	}
}

// DelayMicroseconds busy-waits for at least us microseconds. The cycle
// conversion truncates toward zero; the strict-inequality wait then adds
// back at least one cycle, so the actual delay is never shorter than
// requested.
func (d McycleDelay) DelayMicroseconds(us uint64) {
	BusyWaitCycles(us * uint64(d.coreFrequencyHz) / 1_000_000)
}

// DelayMilliseconds busy-waits for at least ms milliseconds.
func (d McycleDelay) DelayMilliseconds(ms uint64) {
	BusyWaitCycles(ms * uint64(d.coreFrequencyHz) / 1_000)
}
