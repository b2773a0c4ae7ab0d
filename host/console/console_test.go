//go:build !bl602

package console

import (
	"bytes"
	"strings"
	"testing"

	"bl602hal/glb"
)

func newTestConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()
	glb.SimReset()
	var buf bytes.Buffer
	return New(&buf), &buf
}

// run executes one line and returns its output, failing the test on error.
func run(t *testing.T, c *Console, buf *bytes.Buffer, line string) string {
	t.Helper()
	buf.Reset()
	if err := c.Execute(line); err != nil {
		t.Fatalf("%q: %v", line, err)
	}
	return buf.String()
}

func TestCommandsRequireSplit(t *testing.T) {
	c, _ := newTestConsole(t)
	if err := c.Execute("mode 3 pull-up-output"); err == nil {
		t.Fatal("mode before split should fail")
	}
}

func TestSplitSucceedsOnceAcrossConsole(t *testing.T) {
	c, buf := newTestConsole(t)
	out := run(t, c, buf, "split")
	if !strings.Contains(out, "23 pins") {
		t.Fatalf("split output = %q", out)
	}
	if err := c.Execute("split"); err != glb.ErrAlreadySplit {
		t.Fatalf("second split err = %v, want ErrAlreadySplit", err)
	}
}

func TestOutputLatchRoundTrip(t *testing.T) {
	c, buf := newTestConsole(t)
	run(t, c, buf, "split")
	run(t, c, buf, "mode 3 pull-up-output")
	run(t, c, buf, "set 3 high")

	if out := run(t, c, buf, "read 3"); !strings.Contains(out, "latch high") {
		t.Fatalf("read after set high = %q", out)
	}
	if out := run(t, c, buf, "toggle 3"); !strings.Contains(out, "latch low") {
		t.Fatalf("toggle = %q", out)
	}
}

func TestReadFollowsSimulatedInputLevel(t *testing.T) {
	c, buf := newTestConsole(t)
	run(t, c, buf, "split")

	run(t, c, buf, "drive 4 high")
	if out := run(t, c, buf, "read 4"); !strings.Contains(out, "level high") {
		t.Fatalf("read = %q", out)
	}
	run(t, c, buf, "drive 4 low")
	if out := run(t, c, buf, "read 4"); !strings.Contains(out, "level low") {
		t.Fatalf("read = %q", out)
	}
}

func TestSetRejectsNonOutput(t *testing.T) {
	c, buf := newTestConsole(t)
	run(t, c, buf, "split")

	err := c.Execute("set 7 high")
	if err == nil || !strings.Contains(err.Error(), "not an output") {
		t.Fatalf("set on input pin: err = %v", err)
	}

	run(t, c, buf, "mode 7 pull-down-pwm")
	err = c.Execute("read 7")
	if err == nil || !strings.Contains(err.Error(), "nothing to read") {
		t.Fatalf("read on pwm pin: err = %v", err)
	}
}

func TestIrqWorkflow(t *testing.T) {
	c, buf := newTestConsole(t)
	run(t, c, buf, "split")
	run(t, c, buf, "irq 5 trigger positive-level")
	run(t, c, buf, "irq 5 enable")

	if out := run(t, c, buf, "irq 5 pending"); !strings.Contains(out, "false") {
		t.Fatalf("pending before assert = %q", out)
	}
	run(t, c, buf, "irq 5 assert")
	if out := run(t, c, buf, "irq 5 pending"); !strings.Contains(out, "true") {
		t.Fatalf("pending after assert = %q", out)
	}
	run(t, c, buf, "irq 5 deassert")
	if out := run(t, c, buf, "irq 5 pending"); !strings.Contains(out, "false") {
		t.Fatalf("pending after deassert = %q", out)
	}
}

func TestIrqRequiresInputMode(t *testing.T) {
	c, buf := newTestConsole(t)
	run(t, c, buf, "split")
	run(t, c, buf, "mode 2 floating-output")

	err := c.Execute("irq 2 enable")
	if err == nil || !strings.Contains(err.Error(), "not an input") {
		t.Fatalf("irq on output pin: err = %v", err)
	}
}

func TestMuxRouting(t *testing.T) {
	c, buf := newTestConsole(t)
	run(t, c, buf, "split")

	if out := run(t, c, buf, "mux 2 uart1-tx"); !strings.Contains(out, "signal 2 -> uart1-tx") {
		t.Fatalf("mux set = %q", out)
	}

	listing := run(t, c, buf, "mux")
	if !strings.Contains(listing, "signal 2 -> uart1-tx") {
		t.Fatalf("mux listing missing new route: %q", listing)
	}
	if !strings.Contains(listing, "signal 0 -> uart0-cts") {
		t.Fatalf("mux listing missing reset route: %q", listing)
	}
}

func TestPinsListingTracksModes(t *testing.T) {
	c, buf := newTestConsole(t)
	run(t, c, buf, "split")
	run(t, c, buf, "mode 9 uart")
	run(t, c, buf, "mode 3 spi")

	listing := run(t, c, buf, "pins")
	if !strings.Contains(listing, "signal 1") {
		t.Fatalf("pin 9 uart channel missing: %q", listing)
	}
	if !strings.Contains(listing, "sclk") {
		t.Fatalf("pin 3 spi role missing: %q", listing)
	}
}

func TestDumpShowsRegisterWrites(t *testing.T) {
	c, buf := newTestConsole(t)
	run(t, c, buf, "split")
	run(t, c, buf, "mode 0 floating-output")
	run(t, c, buf, "set 0 high")

	dump := run(t, c, buf, "dump")
	if !strings.Contains(dump, "gpio_cfgctl32") {
		t.Fatalf("dump missing latch register: %q", dump)
	}
	for _, line := range strings.Split(dump, "\n") {
		if strings.HasPrefix(line, "gpio_cfgctl32") && !strings.Contains(line, "00000001") {
			t.Fatalf("latch register value wrong: %q", line)
		}
	}
}

func TestResetAllowsSplittingAgain(t *testing.T) {
	c, buf := newTestConsole(t)
	run(t, c, buf, "split")
	run(t, c, buf, "reset")
	run(t, c, buf, "split")
	run(t, c, buf, "mode 1 i2c")
}

func TestUnknownCommandAndBlankLine(t *testing.T) {
	c, _ := newTestConsole(t)
	if err := c.Execute("frobnicate"); err == nil {
		t.Fatal("unknown command should error")
	}
	if err := c.Execute("   "); err != nil {
		t.Fatalf("blank line: %v", err)
	}
}
