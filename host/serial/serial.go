// Package serial opens the byte stream between a host tool and a target
// board emitting trace frames.
package serial

import (
	"io"
)

// Port is the stream a monitor reads trace frames from. The abstraction
// keeps the native implementation swappable for a mock in tests.
type Port interface {
	io.ReadWriteCloser

	// Flush discards any buffered but unsent data.
	Flush() error
}

// Config holds port parameters.
type Config struct {
	// Device is the path, e.g. "/dev/ttyACM0" or "COM3".
	Device string

	// Baud rate. USB CDC targets ignore it.
	Baud int

	// ReadTimeout in milliseconds; 0 blocks.
	ReadTimeout int
}

// DefaultConfig returns the usual monitor settings for a device path.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
