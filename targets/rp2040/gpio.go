//go:build rp2040

package main

import (
	"errors"
	"machine"
	"time"

	"grubstep/core"

	"tinygo.org/x/drivers/delay"
)

// RP2040 has GPIO0-GPIO29
const numPins = 30

var errInvalidPin = errors.New("invalid GPIO pin")

// RPGPIODriver implements core.GPIODriver and core.Delayer for RP2040
type RPGPIODriver struct {
	// Track configured pins so SetPin never reconfigures from the tick callback
	configured [numPins]bool
}

// NewRPGPIODriver creates a new RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{}
}

// ConfigureOutput configures a pin as a digital output
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if pin >= numPins {
		return errInvalidPin
	}
	if d.configured[pin] {
		// Already configured, this is OK
		return nil
	}

	// Pins map directly to GPIO numbers
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.configured[pin] = true
	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	if pin >= numPins || !d.configured[pin] {
		return errInvalidPin
	}
	machine.Pin(pin).Set(value)
	return nil
}

// DelayMicros busy-waits for the stepper driver's dir-to-step setup time
func (d *RPGPIODriver) DelayMicros(us uint32) {
	delay.Sleep(time.Duration(us) * time.Microsecond)
}
