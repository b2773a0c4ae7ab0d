//go:build !bl602

package delay

import "testing"

// tickingCounter returns a source that advances by step on every read,
// starting at start, plus a pointer to the number of reads taken.
func tickingCounter(start, step uint64) (func() uint64, *int) {
	reads := 0
	v := start
	return func() uint64 {
		reads++
		cur := v
		v += step
		return cur
	}, &reads
}

func TestCyclesSinceWrapsAroundCounterOverflow(t *testing.T) {
	const start = ^uint64(0) - 5 // six cycles before overflow
	values := []uint64{10}       // counter has wrapped past zero
	restore := swapCycleSource(func() uint64 { return values[0] })
	defer restore()

	if got := CyclesSince(start); got != 16 {
		t.Fatalf("CyclesSince across overflow = %d, want 16", got)
	}
}

func TestCyclesSinceNoWrap(t *testing.T) {
	restore := swapCycleSource(func() uint64 { return 1000 })
	defer restore()

	if got := CyclesSince(400); got != 600 {
		t.Fatalf("CyclesSince = %d, want 600", got)
	}
}

func TestBusyWaitCyclesIsStrictlyGreater(t *testing.T) {
	// Counter advances one cycle per sample. The wait must only return
	// once elapsed > n, i.e. after observing n+1 cycles past the start.
	src, reads := tickingCounter(100, 1)
	restore := swapCycleSource(src)
	defer restore()

	BusyWaitCycles(5)

	// 1 read captures the start; the loop then reads until the sampled
	// value exceeds start+5, which takes 6 more reads at 1 cycle/read.
	if *reads != 7 {
		t.Fatalf("BusyWaitCycles(5) sampled the counter %d times, want 7", *reads)
	}
}

func TestBusyWaitZeroStillWaitsOneCycle(t *testing.T) {
	src, reads := tickingCounter(0, 1)
	restore := swapCycleSource(src)
	defer restore()

	BusyWaitCycles(0)

	// Strict inequality: even n=0 waits until at least one cycle passed.
	if *reads < 2 {
		t.Fatalf("BusyWaitCycles(0) sampled the counter %d times, want >= 2", *reads)
	}
}

func TestBusyWaitAcrossCounterWrap(t *testing.T) {
	src, _ := tickingCounter(^uint64(0)-2, 1)
	restore := swapCycleSource(src)
	defer restore()

	// Must terminate even though the counter wraps mid-wait.
	BusyWaitCycles(10)
}

func TestDelayConversions(t *testing.T) {
	cases := []struct {
		name   string
		freqHz uint32
		run    func(d McycleDelay)
		cycles uint64 // expected busy-wait argument
	}{
		{"1us at 1MHz", 1_000_000, func(d McycleDelay) { d.DelayMicroseconds(1) }, 1},
		{"5us at 1MHz", 1_000_000, func(d McycleDelay) { d.DelayMicroseconds(5) }, 5},
		{"1us at 160MHz", 160_000_000, func(d McycleDelay) { d.DelayMicroseconds(1) }, 160},
		{"truncates sub-cycle", 1_500_000, func(d McycleDelay) { d.DelayMicroseconds(1) }, 1}, // 1.5 cycles -> 1
		{"1ms at 1MHz", 1_000_000, func(d McycleDelay) { d.DelayMilliseconds(1) }, 1000},
		{"2ms at 160MHz", 160_000_000, func(d McycleDelay) { d.DelayMilliseconds(2) }, 320_000},
	}
	for _, tc := range cases {
		src, reads := tickingCounter(0, 1)
		restore := swapCycleSource(src)

		tc.run(New(tc.freqHz))

		// n cycles requested -> 1 start read + n+1 loop reads.
		want := int(tc.cycles) + 2
		if *reads != want {
			t.Errorf("%s: sampled %d times, want %d", tc.name, *reads, want)
		}
		restore()
	}
}

func TestDelayMonotonicity(t *testing.T) {
	// For a fixed frequency, a doubled request must never wait fewer
	// cycles, and both wait at least their nominal duration.
	waited := func(us uint64) int {
		src, reads := tickingCounter(0, 1)
		restore := swapCycleSource(src)
		defer restore()
		New(8_000_000).DelayMicroseconds(us)
		return *reads
	}

	short := waited(10)
	long := waited(20)
	if long < short {
		t.Fatalf("DelayMicroseconds(20) waited %d samples, less than DelayMicroseconds(10)'s %d", long, short)
	}
	if short < 80 { // 10us at 8MHz = 80 cycles minimum
		t.Fatalf("DelayMicroseconds(10) waited %d samples, below the nominal 80 cycles", short)
	}
}

func TestNoOverflowForLargeDelays(t *testing.T) {
	// 64-bit arithmetic: a multi-second delay at a high clock must not
	// overflow during the us*freq multiplication.
	d := New(160_000_000)
	var got uint64
	restore := swapCycleSource(func() uint64 {
		// Return a counter far enough along that the wait ends at once.
		got++
		return got * (1 << 40)
	})
	defer restore()
	d.DelayMicroseconds(10_000_000) // 10 s -> 1.6e9 cycles, fits easily
}

func TestCoreFrequencyAccessor(t *testing.T) {
	if got := New(40_000_000).CoreFrequency(); got != 40_000_000 {
		t.Fatalf("CoreFrequency = %d, want 40000000", got)
	}
}
