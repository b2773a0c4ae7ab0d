//go:build !bl602

package delay

// swapCycleSource installs a scripted counter source and returns a restore
// function.
func swapCycleSource(f func() uint64) func() {
	prev := cycleSource
	cycleSource = f
	return func() { cycleSource = prev }
}
