package ticker_test

import (
	"testing"
	"time"

	"grubstep/core"
	"grubstep/host/gpio"
	"grubstep/host/ticker"
)

// TestSoftwareMotion runs a real axis on the software tick source
func TestSoftwareMotion(t *testing.T) {
	if testing.Short() {
		t.Skip("runs in real time")
	}

	sim := gpio.NewSimDriver()
	tk := ticker.New(time.Millisecond)
	defer tk.Close()

	core.SetGPIODriver(sim)
	core.SetClockDriver(ticker.NewClock())
	core.SetTimerDriver(tk)

	settings := core.DefaultSettings()
	axis := core.NewAxis()
	if err := axis.Begin(settings); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	axis.DriveTo(0.1)
	deadline := time.Now().Add(10 * time.Second)
	for !axis.IsIdle() {
		if time.Now().After(deadline) {
			t.Fatalf("Axis not idle, at step %d", axis.GetStepPosition())
		}
		axis.Update()
		time.Sleep(time.Millisecond)
	}

	if got := axis.GetStepPosition(); got != 20 {
		t.Errorf("Expected step position 20, got %d", got)
	}
	if got := sim.Rises(settings.StepPin); got != 20 {
		t.Errorf("Expected 20 step pulses, got %d", got)
	}
	if sim.Level(settings.EnabledPin) != settings.EnabledPolarity {
		t.Error("Enable pin not at the enabled polarity")
	}
}
