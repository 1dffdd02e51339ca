//go:build avr

package main

import (
	"grubstep/core"
)

// Axes on D8-D10 (default pins) and D2-D4
var (
	axisX = core.NewAxis()
	axisY = core.NewAxis()
)

// updateMicros is the planner period
const updateMicros = 1000

func main() {
	InitDebugUART()
	core.SetDebugWriter(DebugPrintln)
	core.SetDebugEnabled(true)

	clock := core.TickClock{}
	core.SetGPIODriver(NewAVRGPIODriver())
	core.SetClockDriver(clock)
	core.SetTimerDriver(Timer1Ticker{})

	sx := core.DefaultSettings()
	sy := sx
	sy.StepPin, sy.DirectionPin, sy.EnabledPin = 2, 3, 4

	if err := axisX.Begin(sx); err != nil {
		halt("x: " + err.Error())
	}
	if err := axisY.Begin(sy); err != nil {
		halt("y: " + err.Error())
	}

	axisX.DriveTo(0.5)
	axisY.DriveTo(-0.5)

	last := clock.Micros()
	for {
		now := clock.Micros()
		if now-last < updateMicros {
			continue
		}
		last = now

		axisX.Update()
		axisY.Update()

		if axisX.IsIdle() {
			axisX.DriveTo(-axisX.GetTargetPosition())
		}
		if axisY.IsIdle() {
			axisY.DriveTo(-axisY.GetTargetPosition())
		}
	}
}

// halt reports a fatal setup error and stops
func halt(msg string) {
	DebugPrintln(msg)
	for {
	}
}
