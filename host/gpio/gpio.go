// Package gpio provides core.GPIODriver implementations for Linux single
// board computers, so the motion core can run with a software tick source.
package gpio

import (
	"fmt"
	"io"
	"time"

	"grubstep/core"
)

// MaxPins bounds the GPIO numbers a driver accepts. Pin tables are fixed
// arrays, written by ConfigureOutput before an axis begins and only read
// from the tick callback afterwards.
const MaxPins = 64

// Driver is a GPIO driver holding host resources
type Driver interface {
	core.GPIODriver
	core.Delayer
	io.Closer
}

// Names lists the drivers Open accepts
var Names = []string{"periph", "rpio", "sim"}

// Open returns the named driver
func Open(name string) (Driver, error) {
	switch name {
	case "periph":
		return NewPeriphDriver()
	case "rpio":
		return NewRPIODriver()
	case "sim":
		return NewSimDriver(), nil
	default:
		return nil, fmt.Errorf("unknown GPIO driver %q", name)
	}
}

func checkPin(pin core.GPIOPin) error {
	if pin >= MaxPins {
		return fmt.Errorf("GPIO %d out of range", pin)
	}
	return nil
}

// spinMicros busy-waits; sleeping would hand the thread to the scheduler
// for far longer than a driver setup time.
func spinMicros(us uint32) {
	deadline := time.Now().Add(time.Duration(us) * time.Microsecond)
	for time.Now().Before(deadline) {
	}
}
