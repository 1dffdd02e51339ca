package core

import (
	"testing"
)

func TestAxisChainOrder(t *testing.T) {
	newTestRig(t)

	if FirstAxis() != nil {
		t.Fatal("Expected empty chain")
	}

	x := NewAxis()
	y := NewAxis()
	z := NewAxis()

	if FirstAxis() != x || x.Next() != y || y.Next() != z || z.Next() != nil {
		t.Error("Chain is not in construction order")
	}
	for i, a := range []*Axis{x, y, z} {
		if a.Index() != uint8(i) {
			t.Errorf("Expected index %d, got %d", i, a.Index())
		}
	}
	if AxisCount() != 3 {
		t.Errorf("Expected 3 axes, got %d", AxisCount())
	}
}

func TestRegisterAxisTwice(t *testing.T) {
	newTestRig(t)

	x := NewAxis()
	y := NewAxis()
	registerAxis(x)
	registerAxis(y)

	if AxisCount() != 2 {
		t.Errorf("Expected 2 axes, got %d", AxisCount())
	}
	if FirstAxis() != x || x.Next() != y || y.Next() != nil {
		t.Error("Duplicate registration changed the chain")
	}
}

func TestTickServicesAllAxes(t *testing.T) {
	r := newTestRig(t)

	sx := testSettings()
	sy := testSettings()
	sy.StepPin, sy.DirectionPin, sy.EnabledPin = 2, 3, 4
	sy.StepsPerRotation = 400

	x := r.begin(sx)
	y := r.begin(sy)

	x.DriveTo(0.1)
	y.DriveTo(-0.2)
	r.runUntilIdle(10000, x, y)

	if got := x.GetStepPosition(); got != 20 {
		t.Errorf("x: expected step position 20, got %d", got)
	}
	if got := y.GetStepPosition(); got != -80 {
		t.Errorf("y: expected step position -80, got %d", got)
	}
	if got := r.netSteps(sx.StepPin); got != 20 {
		t.Errorf("x: expected net 20 pulses, got %d", got)
	}
	if got := r.netSteps(sy.StepPin); got != -80 {
		t.Errorf("y: expected net -80 pulses, got %d", got)
	}
}

func TestTickClock(t *testing.T) {
	r := newTestRig(t)
	r.begin(testSettings())

	r.pump(TicksPerSecond)
	if got := (TickClock{}).Micros(); got != 1000000 {
		t.Errorf("Expected 1000000us after one second of ticks, got %d", got)
	}

	r.pump(TicksPerSecond / 2)
	if got := (TickClock{}).Micros(); got != 1500000 {
		t.Errorf("Expected 1500000us, got %d", got)
	}
}

func TestTickRateDividesSourceClocks(t *testing.T) {
	testCases := map[string]uint32{
		"rp2040 system clock": 125000000,
		"avr timer1 /8":       16000000 / 8,
	}
	for name, hz := range testCases {
		if hz%TicksPerSecond != 0 {
			t.Errorf("%s: %dHz is not a whole multiple of %d ticks per second", name, hz, TicksPerSecond)
		}
	}
}
