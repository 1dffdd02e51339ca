package core

import "math"

// tick runs once per timer tick for each axis, with interrupts masked.
//
// Ticks alternate between two roles. A raise tick may start a step pulse:
// the step pin goes high and the position moves one step in the published
// direction. The tick after a pulse always lowers the pin again, so every
// pulse is one tick wide and rising edges are at least two ticks apart.
func (a *Axis) tick() {
	if !a.begun {
		return
	}

	if a.ticksSinceLastStep != math.MaxUint32 {
		a.ticksSinceLastStep++
	}

	if !a.tickPolarity {
		_ = a.gpio.SetPin(a.settings.StepPin, false)
		a.tickPolarity = true
		return
	}

	if !a.movementEnabled.Load() || a.currentPositionSteps == a.targetPositionSteps {
		return
	}

	if a.ticksSinceLastStep < a.ticksPerStep.Load() {
		return
	}

	_ = a.gpio.SetPin(a.settings.StepPin, true)
	if a.stepDirection.Load() {
		a.currentPositionSteps++
	} else {
		a.currentPositionSteps--
	}
	a.ticksSinceLastStep = 0
	a.tickPolarity = false
}
