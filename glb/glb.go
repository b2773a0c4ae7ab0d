// Package glb gives exclusively-owned, mode-tagged access to the BL602 GLB
// register block: the 23 GPIO pins, the 8 internal UART signal routers and
// the clock-configuration region.
//
// Split hands the block out exactly once as a set of handles. Each handle
// type encodes what its pin is currently configured to do, so operations a
// mode does not support do not exist on that handle type and fail to
// compile. A mode transition revokes the old handle and returns a fresh one
// under the new mode; going through a revoked handle panics.
//
// On the bl602 build tag the package talks to the real block at 0x40000000;
// on every other target it runs against an in-memory register file so the
// package tests and host tooling work without hardware.
package glb

import (
	"errors"
	"sync"
)

// ErrAlreadySplit is returned by Split once the register block has been
// handed out.
var ErrAlreadySplit = errors.New("glb: register block already split")

// ClkCfg owns the clock-configuration region of the block. It carries no
// operations here; it exists so that exactly one owner holds that region.
type ClkCfg struct {
	_ struct{}
}

// Parts is the full set of handles Split distributes: every pin in the
// floating-input hardware reset state and every UART signal router in the
// UART0-CTS reset state.
type Parts struct {
	Pin0  InputPin
	Pin1  InputPin
	Pin2  InputPin
	Pin3  InputPin
	Pin4  InputPin
	Pin5  InputPin
	Pin6  InputPin
	Pin7  InputPin
	Pin8  InputPin
	Pin9  InputPin
	Pin10 InputPin
	Pin11 InputPin
	Pin12 InputPin
	Pin13 InputPin
	Pin14 InputPin
	Pin15 InputPin
	Pin16 InputPin
	Pin17 InputPin
	Pin18 InputPin
	Pin19 InputPin
	Pin20 InputPin
	Pin21 InputPin
	Pin22 InputPin

	UartMux0 UartMux
	UartMux1 UartMux
	UartMux2 UartMux
	UartMux3 UartMux
	UartMux4 UartMux
	UartMux5 UartMux
	UartMux6 UartMux
	UartMux7 UartMux

	ClkCfg ClkCfg
}

var (
	splitMu   sync.Mutex
	splitDone bool
)

// Split consumes the GLB register-block singleton and returns its parts.
// It succeeds exactly once; every later call returns ErrAlreadySplit, so no
// two Parts can alias the same register region. Split writes nothing to the
// hardware: the issued handles describe the block's reset state.
func Split() (*Parts, error) {
	splitMu.Lock()
	defer splitMu.Unlock()
	if splitDone {
		return nil, ErrAlreadySplit
	}
	splitDone = true

	p := &Parts{}
	pins := []*InputPin{
		&p.Pin0, &p.Pin1, &p.Pin2, &p.Pin3, &p.Pin4, &p.Pin5, &p.Pin6,
		&p.Pin7, &p.Pin8, &p.Pin9, &p.Pin10, &p.Pin11, &p.Pin12, &p.Pin13,
		&p.Pin14, &p.Pin15, &p.Pin16, &p.Pin17, &p.Pin18, &p.Pin19,
		&p.Pin20, &p.Pin21, &p.Pin22,
	}
	for i, pin := range pins {
		s := &pinStates[i]
		*pin = InputPin{pinCore{s: s, gen: s.gen}, Floating}
	}
	muxes := []*UartMux{
		&p.UartMux0, &p.UartMux1, &p.UartMux2, &p.UartMux3,
		&p.UartMux4, &p.UartMux5, &p.UartMux6, &p.UartMux7,
	}
	for i, mux := range muxes {
		s := &muxStates[i]
		*mux = UartMux{s: s, gen: s.gen, role: Uart0Cts}
	}
	return p, nil
}

// Pins returns copies of the 23 pin handles in index order, for callers
// that need to walk pins numerically. The copies alias the same physical
// pins as the named fields; a transition through either copy revokes the
// other.
func (p *Parts) Pins() [NumPins]InputPin {
	return [NumPins]InputPin{
		p.Pin0, p.Pin1, p.Pin2, p.Pin3, p.Pin4, p.Pin5, p.Pin6, p.Pin7,
		p.Pin8, p.Pin9, p.Pin10, p.Pin11, p.Pin12, p.Pin13, p.Pin14,
		p.Pin15, p.Pin16, p.Pin17, p.Pin18, p.Pin19, p.Pin20, p.Pin21,
		p.Pin22,
	}
}

// Muxes returns copies of the 8 UART signal routers in channel order.
func (p *Parts) Muxes() [NumUartSignals]UartMux {
	return [NumUartSignals]UartMux{
		p.UartMux0, p.UartMux1, p.UartMux2, p.UartMux3,
		p.UartMux4, p.UartMux5, p.UartMux6, p.UartMux7,
	}
}
