package serial

import (
	"errors"
	"fmt"

	"github.com/tarm/serial"
)

var errNoConfig = errors.New("serial config is nil")

// OpenPort opens the device named by cfg. Reads block until data arrives.
func OpenPort(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, errNoConfig
	}

	port, err := serial.OpenPort(&serial.Config{
		Name: cfg.Device,
		Baud: cfg.Baud,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.Device, err)
	}
	return port, nil
}
