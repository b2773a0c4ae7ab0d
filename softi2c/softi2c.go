// Package softi2c bit-bangs an I2C master over two GPIO pin handles, timed
// by the mcycle delay provider. It implements the tinygo.org/x/drivers I2C
// interface, which opens the drivers catalogue to BL602 boards without a
// hardware I2C driver.
//
// SDA emulates an open-drain line by switching its pin between output-low
// and pull-up-input, so a peripheral can pull the line during acknowledge
// and data slots. SCL is driven push-pull; clock stretching is not
// supported.
package softi2c

import (
	"errors"

	"tinygo.org/x/drivers"

	"bl602hal/delay"
	"bl602hal/glb"
)

// ErrNack is returned when the peripheral leaves SDA high during an
// acknowledge slot.
var ErrNack = errors.New("softi2c: not acknowledged")

// Bus is a single-master software I2C bus.
type Bus struct {
	scl    glb.OutputPin
	sdaOut *glb.OutputPin // non-nil while the master drives SDA low
	sdaIn  *glb.InputPin  // non-nil while SDA is released
	d      delay.McycleDelay
	halfUs uint64 // half clock period in microseconds
}

var _ drivers.I2C = (*Bus)(nil)

// New builds a bus from an SCL output handle and a released (pull-up
// input) SDA handle. busHz is the target clock rate; it is rounded to the
// microsecond half-period the delay provider can express, never above the
// requested rate's period. The handles are owned by the bus afterwards.
func New(scl glb.OutputPin, sda glb.InputPin, d delay.McycleDelay, busHz uint32) *Bus {
	half := uint64(500_000) / uint64(busHz)
	if half == 0 {
		half = 1
	}
	scl.SetHigh()
	sdaCopy := sda
	return &Bus{scl: scl, sdaIn: &sdaCopy, d: d, halfUs: half}
}

// Tx performs a combined I2C transaction on the 7-bit address addr: a write
// of w (when non-empty), a read into r (when non-empty) under a repeated
// start, and a stop.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if len(w) > 0 || len(r) == 0 {
		b.start()
		if err := b.writeByte(byte(addr << 1)); err != nil {
			b.stop()
			return err
		}
		for _, c := range w {
			if err := b.writeByte(c); err != nil {
				b.stop()
				return err
			}
		}
	}
	if len(r) > 0 {
		b.start()
		if err := b.writeByte(byte(addr<<1) | 1); err != nil {
			b.stop()
			return err
		}
		for i := range r {
			r[i] = b.readByte(i != len(r)-1)
		}
	}
	b.stop()
	return nil
}

func (b *Bus) tick() {
	b.d.DelayMicroseconds(b.halfUs)
}

func (b *Bus) sdaLow() {
	if b.sdaIn != nil {
		out := b.sdaIn.IntoFloatingOutput()
		b.sdaOut, b.sdaIn = &out, nil
	}
	b.sdaOut.SetLow()
}

func (b *Bus) sdaRelease() {
	if b.sdaOut != nil {
		in := b.sdaOut.IntoPullUpInput()
		b.sdaIn, b.sdaOut = &in, nil
	}
}

func (b *Bus) sdaRead() bool {
	b.sdaRelease()
	return b.sdaIn.IsHigh()
}

// start issues a (repeated) start: SDA falls while SCL is high.
func (b *Bus) start() {
	b.sdaRelease()
	b.scl.SetHigh()
	b.tick()
	b.sdaLow()
	b.tick()
	b.scl.SetLow()
	b.tick()
}

// stop releases the bus: SDA rises while SCL is high.
func (b *Bus) stop() {
	b.sdaLow()
	b.tick()
	b.scl.SetHigh()
	b.tick()
	b.sdaRelease()
	b.tick()
}

func (b *Bus) writeBit(bit bool) {
	if bit {
		b.sdaRelease()
	} else {
		b.sdaLow()
	}
	b.tick()
	b.scl.SetHigh()
	b.tick()
	b.scl.SetLow()
}

func (b *Bus) readBit() bool {
	b.sdaRelease()
	b.tick()
	b.scl.SetHigh()
	b.tick()
	bit := b.sdaRead()
	b.scl.SetLow()
	return bit
}

// writeByte shifts out one byte MSB-first and samples the acknowledge slot.
func (b *Bus) writeByte(v byte) error {
	for i := 7; i >= 0; i-- {
		b.writeBit(v>>uint(i)&1 == 1)
	}
	if b.readBit() {
		return ErrNack
	}
	return nil
}

// readByte shifts in one byte MSB-first, then acknowledges it (or not, for
// the final byte of a read).
func (b *Bus) readByte(ack bool) byte {
	var v byte
	for i := 0; i < 8; i++ {
		v <<= 1
		if b.readBit() {
			v |= 1
		}
	}
	b.writeBit(!ack)
	return v
}
