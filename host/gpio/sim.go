package gpio

import (
	"fmt"
	"sync/atomic"

	"grubstep/core"
)

// SimDriver keeps pin levels in memory and counts rising edges, for running
// the motion core without hardware.
type SimDriver struct {
	configured [MaxPins]atomic.Bool
	levels     [MaxPins]atomic.Bool
	rises      [MaxPins]atomic.Uint64
}

func NewSimDriver() *SimDriver {
	return &SimDriver{}
}

func (d *SimDriver) ConfigureOutput(pin core.GPIOPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	d.configured[pin].Store(true)
	return nil
}

func (d *SimDriver) SetPin(pin core.GPIOPin, value bool) error {
	if pin >= MaxPins || !d.configured[pin].Load() {
		return fmt.Errorf("sim: GPIO %d not configured", pin)
	}
	if d.levels[pin].Swap(value) != value && value {
		d.rises[pin].Add(1)
	}
	return nil
}

func (d *SimDriver) DelayMicros(us uint32) {}

// Level returns the last level written to pin
func (d *SimDriver) Level(pin core.GPIOPin) bool {
	if pin >= MaxPins {
		return false
	}
	return d.levels[pin].Load()
}

// Rises returns the number of low to high transitions on pin
func (d *SimDriver) Rises(pin core.GPIOPin) uint64 {
	if pin >= MaxPins {
		return 0
	}
	return d.rises[pin].Load()
}

func (d *SimDriver) Close() error {
	return nil
}
