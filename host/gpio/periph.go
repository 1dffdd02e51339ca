package gpio

import (
	"fmt"
	"strconv"

	"grubstep/core"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// PeriphDriver drives pins through periph.io, which covers most Linux
// boards with a GPIO character device or a memory mapped controller.
type PeriphDriver struct {
	pins [MaxPins]gpio.PinIO
}

// NewPeriphDriver initialises the periph host drivers
func NewPeriphDriver() (*PeriphDriver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph: %w", err)
	}
	return &PeriphDriver{}, nil
}

// ConfigureOutput looks the pin up by GPIO number and drives it low
func (d *PeriphDriver) ConfigureOutput(pin core.GPIOPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	if d.pins[pin] != nil {
		return nil
	}
	p := gpioreg.ByName(strconv.Itoa(int(pin)))
	if p == nil {
		return fmt.Errorf("periph: no GPIO %d", pin)
	}
	if err := p.Out(gpio.Low); err != nil {
		return fmt.Errorf("periph: GPIO %d: %w", pin, err)
	}
	d.pins[pin] = p
	return nil
}

func (d *PeriphDriver) SetPin(pin core.GPIOPin, value bool) error {
	if pin >= MaxPins || d.pins[pin] == nil {
		return fmt.Errorf("periph: GPIO %d not configured", pin)
	}
	return d.pins[pin].Out(gpio.Level(value))
}

func (d *PeriphDriver) DelayMicros(us uint32) {
	spinMicros(us)
}

// Close halts every configured pin
func (d *PeriphDriver) Close() error {
	var first error
	for i, p := range d.pins {
		if p == nil {
			continue
		}
		if err := p.Halt(); err != nil && first == nil {
			first = fmt.Errorf("periph: GPIO %d: %w", i, err)
		}
		d.pins[i] = nil
	}
	return first
}
