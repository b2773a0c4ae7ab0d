package glb

import "strconv"

// NumUartSignals is the number of internal UART signal channels.
const NumUartSignals = 8

// UartRole is a physical UART endpoint a signal channel can be routed to.
// The constant values are the selector codes written to the hardware.
type UartRole uint8

const (
	Uart0Rts UartRole = iota
	Uart0Cts // hardware reset value
	Uart0Tx
	Uart0Rx
	Uart1Rts
	Uart1Cts
	Uart1Tx
	Uart1Rx
)

func (r UartRole) String() string {
	names := [...]string{
		"uart0-rts", "uart0-cts", "uart0-tx", "uart0-rx",
		"uart1-rts", "uart1-cts", "uart1-tx", "uart1-rx",
	}
	if int(r) < len(names) {
		return names[r]
	}
	return "uart-role(" + strconv.Itoa(int(r)) + ")"
}

type muxState struct {
	sig uint8
	gen uint32
}

var muxStates [NumUartSignals]muxState

func init() {
	for i := range muxStates {
		muxStates[i].sig = uint8(i)
	}
}

// UartMux routes one internal UART signal channel to a physical UART role.
// Like pins, re-routing consumes the handle and reissues it under the new
// role; the role is tracked by the handle, never read back from hardware.
type UartMux struct {
	s    *muxState
	gen  uint32
	role UartRole
}

// Signal returns the signal channel index (0..7) this router owns.
func (m UartMux) Signal() int {
	return int(m.s.sig)
}

// Role returns the UART role the channel is currently routed to.
func (m UartMux) Role() UartRole {
	return m.role
}

func (m UartMux) check() {
	if m.gen != m.s.gen {
		panic("glb: revoked handle used for uart signal " + strconv.Itoa(int(m.s.sig)))
	}
}

func (m UartMux) selField() field {
	return field{reg: regUartSigSel0, shift: 4 * m.s.sig, width: 3}
}

func (m UartMux) routeTo(role UartRole) UartMux {
	m.check()
	modify(fv(m.selField(), uint32(role)))
	m.s.gen++
	return UartMux{s: m.s, gen: m.s.gen, role: role}
}

// RouteToUart0Rts routes the channel to UART0's RTS line.
func (m UartMux) RouteToUart0Rts() UartMux { return m.routeTo(Uart0Rts) }

// RouteToUart0Cts routes the channel to UART0's CTS line.
func (m UartMux) RouteToUart0Cts() UartMux { return m.routeTo(Uart0Cts) }

// RouteToUart0Tx routes the channel to UART0's TX line.
func (m UartMux) RouteToUart0Tx() UartMux { return m.routeTo(Uart0Tx) }

// RouteToUart0Rx routes the channel to UART0's RX line.
func (m UartMux) RouteToUart0Rx() UartMux { return m.routeTo(Uart0Rx) }

// RouteToUart1Rts routes the channel to UART1's RTS line.
func (m UartMux) RouteToUart1Rts() UartMux { return m.routeTo(Uart1Rts) }

// RouteToUart1Cts routes the channel to UART1's CTS line.
func (m UartMux) RouteToUart1Cts() UartMux { return m.routeTo(Uart1Cts) }

// RouteToUart1Tx routes the channel to UART1's TX line.
func (m UartMux) RouteToUart1Tx() UartMux { return m.routeTo(Uart1Tx) }

// RouteToUart1Rx routes the channel to UART1's RX line.
func (m UartMux) RouteToUart1Rx() UartMux { return m.routeTo(Uart1Rx) }
