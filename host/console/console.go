//go:build !bl602

// Package console implements the line-oriented diagnostics shell behind
// cmd/bl602-diag. It drives the GPIO HAL against the simulated register
// block, so pin configurations can be tried out and inspected without a
// board attached.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/shlex"

	"bl602hal/glb"
)

var errNotSplit = errors.New("gpio block not split yet (run 'split' first)")

// handle is the mode-transition surface shared by every pin handle type.
// All six mode types satisfy it through their embedded core, which lets the
// console hold "whatever mode the pin is in right now" in one field.
type handle interface {
	Number() int
	IntoFloatingOutput() glb.OutputPin
	IntoPullUpOutput() glb.OutputPin
	IntoPullDownOutput() glb.OutputPin
	IntoFloatingInput() glb.InputPin
	IntoPullUpInput() glb.InputPin
	IntoPullDownInput() glb.InputPin
	IntoFloatingPwm() glb.PwmPin
	IntoPullUpPwm() glb.PwmPin
	IntoPullDownPwm() glb.PwmPin
	IntoUart() glb.UartPin
	IntoSpi() glb.SpiPin
	IntoI2c() glb.I2cPin
}

type pinSlot struct {
	mode string
	cur  handle
}

// Console owns the HAL handles on behalf of the operator and maps command
// lines onto them. It tracks exactly one live handle per pin, so the
// single-owner rule the HAL enforces is never tripped from the shell.
type Console struct {
	out   io.Writer
	parts *glb.Parts
	pins  [glb.NumPins]pinSlot
	muxes [glb.NumUartSignals]glb.UartMux
}

// New returns a console writing command output to out.
func New(out io.Writer) *Console {
	return &Console{out: out}
}

// Execute parses and runs one command line. Command output goes to the
// console's writer; usage and state errors come back as errors.
func (c *Console) Execute(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if len(args) == 0 {
		return nil
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()
		return nil
	case "split":
		return c.cmdSplit(args)
	case "mode":
		return c.cmdMode(args)
	case "set":
		return c.cmdSet(args)
	case "toggle":
		return c.cmdToggle(args)
	case "read":
		return c.cmdRead(args)
	case "filter":
		return c.cmdFilter(args)
	case "irq":
		return c.cmdIrq(args)
	case "mux":
		return c.cmdMux(args)
	case "pins":
		return c.cmdPins(args)
	case "drive":
		return c.cmdDrive(args)
	case "dump":
		return c.cmdDump(args)
	case "reset":
		return c.cmdReset(args)
	}
	return fmt.Errorf("unknown command %q (type 'help')", cmd)
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, "Available commands:")
	fmt.Fprintln(c.out, "  split                     - acquire the gpio block (once)")
	fmt.Fprintln(c.out, "  mode <pin> <mode>         - reconfigure a pin; modes:")
	fmt.Fprintln(c.out, "                              floating-input pull-up-input pull-down-input")
	fmt.Fprintln(c.out, "                              floating-output pull-up-output pull-down-output")
	fmt.Fprintln(c.out, "                              floating-pwm pull-up-pwm pull-down-pwm")
	fmt.Fprintln(c.out, "                              uart spi i2c")
	fmt.Fprintln(c.out, "  set <pin> high|low        - drive an output latch")
	fmt.Fprintln(c.out, "  toggle <pin>              - flip an output latch")
	fmt.Fprintln(c.out, "  read <pin>                - read input level (or output latch)")
	fmt.Fprintln(c.out, "  filter <pin> on|off       - schmitt-trigger input filter")
	fmt.Fprintln(c.out, "  irq <pin> enable|disable|clear|pending|sync|async")
	fmt.Fprintln(c.out, "  irq <pin> trigger <ev>    - negative-pulse positive-pulse")
	fmt.Fprintln(c.out, "                              negative-level positive-level")
	fmt.Fprintln(c.out, "  irq <pin> assert|deassert - simulate a pending interrupt")
	fmt.Fprintln(c.out, "  mux [<sig> <role>]        - show or set uart signal routing")
	fmt.Fprintln(c.out, "  pins                      - list every pin's mode and state")
	fmt.Fprintln(c.out, "  drive <pin> high|low      - simulate the external input level")
	fmt.Fprintln(c.out, "  dump                      - hex dump of the register block")
	fmt.Fprintln(c.out, "  reset                     - power-on reset of the simulation")
}

func usage(format string, a ...interface{}) error {
	return fmt.Errorf("usage: "+format, a...)
}

func (c *Console) slot(arg string) (*pinSlot, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n >= glb.NumPins {
		return nil, fmt.Errorf("bad pin %q (want 0..%d)", arg, glb.NumPins-1)
	}
	if c.parts == nil {
		return nil, errNotSplit
	}
	return &c.pins[n], nil
}

func (c *Console) cmdSplit(args []string) error {
	if len(args) != 0 {
		return usage("split")
	}
	parts, err := glb.Split()
	if err != nil {
		return err
	}
	c.parts = parts
	for i, pin := range parts.Pins() {
		c.pins[i] = pinSlot{mode: "floating-input", cur: pin}
	}
	c.muxes = parts.Muxes()
	fmt.Fprintf(c.out, "gpio block split: %d pins, %d uart signal routers\n",
		glb.NumPins, glb.NumUartSignals)
	return nil
}

func (c *Console) cmdMode(args []string) error {
	if len(args) != 2 {
		return usage("mode <pin> <mode>")
	}
	s, err := c.slot(args[0])
	if err != nil {
		return err
	}
	switch args[1] {
	case "floating-input":
		s.cur = s.cur.IntoFloatingInput()
	case "pull-up-input":
		s.cur = s.cur.IntoPullUpInput()
	case "pull-down-input":
		s.cur = s.cur.IntoPullDownInput()
	case "floating-output":
		s.cur = s.cur.IntoFloatingOutput()
	case "pull-up-output":
		s.cur = s.cur.IntoPullUpOutput()
	case "pull-down-output":
		s.cur = s.cur.IntoPullDownOutput()
	case "floating-pwm":
		s.cur = s.cur.IntoFloatingPwm()
	case "pull-up-pwm":
		s.cur = s.cur.IntoPullUpPwm()
	case "pull-down-pwm":
		s.cur = s.cur.IntoPullDownPwm()
	case "uart":
		s.cur = s.cur.IntoUart()
	case "spi":
		s.cur = s.cur.IntoSpi()
	case "i2c":
		s.cur = s.cur.IntoI2c()
	default:
		return fmt.Errorf("unknown mode %q (type 'help')", args[1])
	}
	s.mode = args[1]
	fmt.Fprintf(c.out, "pin %d -> %s\n", s.cur.Number(), s.mode)
	return nil
}

func (c *Console) output(s *pinSlot) (glb.OutputPin, error) {
	out, ok := s.cur.(glb.OutputPin)
	if !ok {
		return glb.OutputPin{}, fmt.Errorf("pin %d is %s, not an output", s.cur.Number(), s.mode)
	}
	return out, nil
}

func (c *Console) input(s *pinSlot) (glb.InputPin, error) {
	in, ok := s.cur.(glb.InputPin)
	if !ok {
		return glb.InputPin{}, fmt.Errorf("pin %d is %s, not an input", s.cur.Number(), s.mode)
	}
	return in, nil
}

func (c *Console) cmdSet(args []string) error {
	if len(args) != 2 || (args[1] != "high" && args[1] != "low") {
		return usage("set <pin> high|low")
	}
	s, err := c.slot(args[0])
	if err != nil {
		return err
	}
	out, err := c.output(s)
	if err != nil {
		return err
	}
	if args[1] == "high" {
		out.SetHigh()
	} else {
		out.SetLow()
	}
	fmt.Fprintf(c.out, "pin %d latch %s\n", out.Number(), args[1])
	return nil
}

func (c *Console) cmdToggle(args []string) error {
	if len(args) != 1 {
		return usage("toggle <pin>")
	}
	s, err := c.slot(args[0])
	if err != nil {
		return err
	}
	out, err := c.output(s)
	if err != nil {
		return err
	}
	out.Toggle()
	fmt.Fprintf(c.out, "pin %d latch %s\n", out.Number(), level(out.IsSetHigh()))
	return nil
}

func (c *Console) cmdRead(args []string) error {
	if len(args) != 1 {
		return usage("read <pin>")
	}
	s, err := c.slot(args[0])
	if err != nil {
		return err
	}
	switch h := s.cur.(type) {
	case glb.InputPin:
		fmt.Fprintf(c.out, "pin %d level %s\n", h.Number(), level(h.IsHigh()))
	case glb.OutputPin:
		fmt.Fprintf(c.out, "pin %d latch %s\n", h.Number(), level(h.IsSetHigh()))
	default:
		return fmt.Errorf("pin %d is %s, nothing to read", s.cur.Number(), s.mode)
	}
	return nil
}

func (c *Console) cmdFilter(args []string) error {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		return usage("filter <pin> on|off")
	}
	s, err := c.slot(args[0])
	if err != nil {
		return err
	}
	in, err := c.input(s)
	if err != nil {
		return err
	}
	if args[1] == "on" {
		in.EnableInputFilter()
	} else {
		in.DisableInputFilter()
	}
	fmt.Fprintf(c.out, "pin %d input filter %s\n", in.Number(), args[1])
	return nil
}

var eventNames = map[string]glb.Event{
	"negative-pulse": glb.NegativePulse,
	"positive-pulse": glb.PositivePulse,
	"negative-level": glb.NegativeLevel,
	"positive-level": glb.PositiveLevel,
}

func (c *Console) cmdIrq(args []string) error {
	if len(args) < 2 {
		return usage("irq <pin> <verb> (type 'help')")
	}
	s, err := c.slot(args[0])
	if err != nil {
		return err
	}
	in, err := c.input(s)
	if err != nil {
		return err
	}

	switch args[1] {
	case "enable":
		in.EnableInterrupt()
		fmt.Fprintf(c.out, "pin %d interrupt enabled\n", in.Number())
	case "disable":
		in.DisableInterrupt()
		fmt.Fprintf(c.out, "pin %d interrupt disabled\n", in.Number())
	case "clear":
		in.ClearPending()
		fmt.Fprintf(c.out, "pin %d interrupt cleared\n", in.Number())
	case "pending":
		fmt.Fprintf(c.out, "pin %d pending: %v\n", in.Number(), in.IsPending())
	case "sync":
		in.SetSamplingSynchronous()
		fmt.Fprintf(c.out, "pin %d sampling synchronous\n", in.Number())
	case "async":
		in.SetSamplingAsynchronous()
		fmt.Fprintf(c.out, "pin %d sampling asynchronous\n", in.Number())
	case "trigger":
		if len(args) != 3 {
			return usage("irq <pin> trigger <event>")
		}
		ev, ok := eventNames[args[2]]
		if !ok {
			return fmt.Errorf("unknown trigger event %q", args[2])
		}
		in.SetTriggerEvent(ev)
		fmt.Fprintf(c.out, "pin %d trigger %v\n", in.Number(), ev)
	case "assert":
		glb.SimSetPending(in.Number(), true)
		fmt.Fprintf(c.out, "pin %d interrupt asserted (simulated)\n", in.Number())
	case "deassert":
		glb.SimSetPending(in.Number(), false)
		fmt.Fprintf(c.out, "pin %d interrupt deasserted (simulated)\n", in.Number())
	default:
		return fmt.Errorf("unknown irq verb %q (type 'help')", args[1])
	}
	return nil
}

// routes maps role names onto the router's route methods, so one table
// covers all eight destinations.
var routes = map[string]func(glb.UartMux) glb.UartMux{
	"uart0-rts": glb.UartMux.RouteToUart0Rts,
	"uart0-cts": glb.UartMux.RouteToUart0Cts,
	"uart0-tx":  glb.UartMux.RouteToUart0Tx,
	"uart0-rx":  glb.UartMux.RouteToUart0Rx,
	"uart1-rts": glb.UartMux.RouteToUart1Rts,
	"uart1-cts": glb.UartMux.RouteToUart1Cts,
	"uart1-tx":  glb.UartMux.RouteToUart1Tx,
	"uart1-rx":  glb.UartMux.RouteToUart1Rx,
}

func (c *Console) cmdMux(args []string) error {
	if c.parts == nil {
		return errNotSplit
	}
	if len(args) == 0 {
		for _, m := range c.muxes {
			fmt.Fprintf(c.out, "signal %d -> %v\n", m.Signal(), m.Role())
		}
		return nil
	}
	if len(args) != 2 {
		return usage("mux [<signal> <role>]")
	}
	sig, err := strconv.Atoi(args[0])
	if err != nil || sig < 0 || sig >= glb.NumUartSignals {
		return fmt.Errorf("bad signal %q (want 0..%d)", args[0], glb.NumUartSignals-1)
	}
	route, ok := routes[args[1]]
	if !ok {
		return fmt.Errorf("unknown uart role %q", args[1])
	}
	c.muxes[sig] = route(c.muxes[sig])
	fmt.Fprintf(c.out, "signal %d -> %v\n", sig, c.muxes[sig].Role())
	return nil
}

func (c *Console) cmdPins(args []string) error {
	if len(args) != 0 {
		return usage("pins")
	}
	if c.parts == nil {
		return errNotSplit
	}
	for i := range c.pins {
		fmt.Fprintf(c.out, "pin %-2d  %-18s %s\n", i, c.pins[i].mode, describe(c.pins[i].cur))
	}
	return nil
}

func describe(h handle) string {
	switch h := h.(type) {
	case glb.InputPin:
		return fmt.Sprintf("%v, level %s", h.Pull(), level(h.IsHigh()))
	case glb.OutputPin:
		return fmt.Sprintf("%v, latch %s", h.Pull(), level(h.IsSetHigh()))
	case glb.PwmPin:
		return h.Pull().String()
	case glb.UartPin:
		return fmt.Sprintf("signal %d", h.Signal())
	case glb.SpiPin:
		return h.Function().String()
	case glb.I2cPin:
		return h.Function().String()
	}
	return "?"
}

func (c *Console) cmdDrive(args []string) error {
	if len(args) != 2 || (args[1] != "high" && args[1] != "low") {
		return usage("drive <pin> high|low")
	}
	s, err := c.slot(args[0])
	if err != nil {
		return err
	}
	glb.SimSetInput(s.cur.Number(), args[1] == "high")
	fmt.Fprintf(c.out, "pin %d external level %s (simulated)\n", s.cur.Number(), args[1])
	return nil
}

func (c *Console) cmdDump(args []string) error {
	if len(args) != 0 {
		return usage("dump")
	}
	for _, r := range glb.SimSnapshot() {
		fmt.Fprintf(c.out, "%-20s 0x%03X  %08X\n", r.Name, r.Offset, r.Value)
	}
	return nil
}

func (c *Console) cmdReset(args []string) error {
	if len(args) != 0 {
		return usage("reset")
	}
	glb.SimReset()
	c.parts = nil
	c.pins = [glb.NumPins]pinSlot{}
	c.muxes = [glb.NumUartSignals]glb.UartMux{}
	fmt.Fprintln(c.out, "simulation reset to power-on state")
	return nil
}

func level(high bool) string {
	if high {
		return "high"
	}
	return "low"
}
