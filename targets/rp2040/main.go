//go:build rp2040

package main

import (
	"time"

	"grubstep/core"
)

// Two axes on GPIO2-4 and GPIO5-7
var (
	axisX = core.NewAxis()
	axisY = core.NewAxis()
)

// updateInterval is the planner period
const updateInterval = time.Millisecond

var (
	// Debug counters
	updateErrors uint32
)

func main() {
	InitDebugUART()
	core.SetDebugWriter(DebugPrintln)
	core.SetDebugEnabled(debugEnabled)
	core.InitAsyncDebug()

	core.SetGPIODriver(NewRPGPIODriver())
	core.SetClockDriver(RPClock{})
	core.SetTimerDriver(NewPIOTicker(0))

	sx := core.DefaultSettings()
	sx.StepPin, sx.DirectionPin, sx.EnabledPin = 2, 3, 4
	sx.DirectionSetupMicros = 5

	sy := sx
	sy.StepPin, sy.DirectionPin, sy.EnabledPin = 5, 6, 7
	sy.MaximumVelocity = 2.0
	sy.MaximumAcceleration = 4.0

	if err := axisX.Begin(sx); err != nil {
		halt("x: " + err.Error())
	}
	if err := axisY.Begin(sy); err != nil {
		halt("y: " + err.Error())
	}

	// Sweep both axes back and forth between two positions
	axisX.DriveTo(1)
	axisY.DriveTo(-2)

	for {
		// Recover from panics in the main loop to prevent a firmware crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					updateErrors++
					core.DumpFrames()
				}
			}()

			axisX.Update()
			axisY.Update()

			if axisX.IsIdle() {
				axisX.DriveTo(-axisX.GetTargetPosition())
			}
			if axisY.IsIdle() {
				axisY.DriveTo(-axisY.GetTargetPosition())
			}
		}()

		time.Sleep(updateInterval)
	}
}

// halt reports a fatal setup error and parks the core
func halt(msg string) {
	for {
		DebugPrintln(msg)
		time.Sleep(time.Second)
	}
}
