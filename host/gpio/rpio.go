package gpio

import (
	"fmt"

	"grubstep/core"

	"github.com/stianeikeland/go-rpio/v4"
)

// RPIODriver drives Raspberry Pi pins through /dev/gpiomem with go-rpio
type RPIODriver struct {
	configured [MaxPins]bool
}

// NewRPIODriver maps the GPIO registers
func NewRPIODriver() (*RPIODriver, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("rpio: %w", err)
	}
	return &RPIODriver{}, nil
}

func (d *RPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	if !d.configured[pin] {
		p := rpio.Pin(pin)
		p.Output()
		p.Low()
		d.configured[pin] = true
	}
	return nil
}

func (d *RPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	if pin >= MaxPins || !d.configured[pin] {
		return fmt.Errorf("rpio: GPIO %d not configured", pin)
	}
	if value {
		rpio.Pin(pin).High()
	} else {
		rpio.Pin(pin).Low()
	}
	return nil
}

func (d *RPIODriver) DelayMicros(us uint32) {
	spinMicros(us)
}

// Close drives configured pins low and unmaps the registers
func (d *RPIODriver) Close() error {
	for i, ok := range d.configured {
		if ok {
			rpio.Pin(i).Low()
			d.configured[i] = false
		}
	}
	return rpio.Close()
}
