//go:build avr

package main

import (
	"errors"
	"machine"
	"time"

	"grubstep/core"

	"tinygo.org/x/drivers/delay"
)

// ATmega328P: PD0-PD7 are pins 0-7, PB0-PB5 8-13, PC0-PC5 16-21.
// Pin numbers match the Arduino Uno digital pins up to D13.
const numPins = 24

var errInvalidPin = errors.New("invalid GPIO pin")

// AVRGPIODriver implements core.GPIODriver and core.Delayer
type AVRGPIODriver struct {
	configured [numPins]bool
}

func NewAVRGPIODriver() *AVRGPIODriver {
	return &AVRGPIODriver{}
}

func (d *AVRGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if pin >= numPins {
		return errInvalidPin
	}
	if !d.configured[pin] {
		machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
		d.configured[pin] = true
	}
	return nil
}

func (d *AVRGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	if pin >= numPins || !d.configured[pin] {
		return errInvalidPin
	}
	machine.Pin(pin).Set(value)
	return nil
}

func (d *AVRGPIODriver) DelayMicros(us uint32) {
	delay.Sleep(time.Duration(us) * time.Microsecond)
}
