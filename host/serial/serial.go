//go:build !bl602

// Package serial is the host side of the board link: it opens the USB-UART
// bridge a BL602 dev board enumerates as and exposes it behind a small Port
// interface so the console can also run against a mock in tests.
package serial

import (
	"io"
)

// Port represents a serial port interface.
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate (115200 is the usual BL602 application UART rate)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns a default configuration for a board console link
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100, // 100ms read timeout
	}
}
