// Package serial reads the firmware's debug and trace output from a serial
// port.
package serial

import (
	"fmt"
	"io"
)

// Port is the read side of a firmware debug link
type Port interface {
	io.ReadCloser

	// Flush drops bytes received but not yet read
	Flush() error
}

// Config selects the device carrying the firmware debug UART
type Config struct {
	Device string // e.g. /dev/ttyACM0
	Baud   int    // USB CDC ignores this
}

// DefaultConfig returns the configuration matching the firmware debug UART
func DefaultConfig(device string) *Config {
	return &Config{
		Device: device,
		Baud:   115200,
	}
}

// Follow discards whatever the port buffered before it was opened, so a
// half line from an earlier run is not parsed, then runs the monitor on it.
func (m *Monitor) Follow(p Port, fn func(Trace)) error {
	if err := p.Flush(); err != nil {
		return fmt.Errorf("flushing port: %w", err)
	}
	return m.Run(p, fn)
}
