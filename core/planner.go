package core

import (
	"math"
)

// Phase is the branch the planner took on its last Update
type Phase uint8

const (
	PhaseIdle       Phase = iota // Update has not run
	PhaseStop                    // At target, velocity zeroed
	PhaseStart                   // Standing, or moving away from the target
	PhaseAccelerate              // Moving toward the target with room to speed up
	PhaseDecelerate              // Moving toward the target, braking
	PhaseFinal                   // Braking floored at the creep velocity
)

func (p Phase) String() string {
	switch p {
	case PhaseStop:
		return "Stop"
	case PhaseStart:
		return "Start up motor / Switch direction"
	case PhaseAccelerate:
		return "Accelerate towards destination"
	case PhaseDecelerate:
		return "Decelerate to stop"
	case PhaseFinal:
		return "Final steps"
	default:
		return "Idle"
	}
}

// minTicksPerStep keeps one low tick between pulses
const minTicksPerStep = 2

// Update advances the velocity profile by the time elapsed since the last
// call and publishes the resulting step rate and direction. Call it from
// the main loop, typically every millisecond or so.
func (a *Axis) Update() {
	if !a.begun {
		return
	}

	now := nowMicros()
	dt := float32(now-a.lastFrameTime) / 1e6

	state := disableInterrupts()
	current := a.currentPositionSteps
	target := a.targetPositionSteps
	restoreInterrupts(state)

	s := &a.settings
	deltaSteps := target - current
	direction := signInt(deltaSteps)
	deltaPosition := float32(deltaSteps) / s.StepsPerRotation
	dv := s.MaximumAcceleration * dt

	switch {
	case deltaSteps == 0:
		a.currentVelocity = 0
		a.phase = PhaseStop

	case a.currentVelocity == 0 || sign(a.currentVelocity) != direction:
		a.currentVelocity += direction * dv
		a.phase = PhaseStart

	default:
		timeUntilStop := abs(a.currentVelocity) / s.MaximumAcceleration
		timeUntilArrive := deltaPosition / a.currentVelocity

		if timeUntilArrive > timeUntilStop {
			a.currentVelocity += direction * dv
			a.phase = PhaseAccelerate
		} else {
			a.currentVelocity -= direction * dv
			a.phase = PhaseDecelerate

			// Braking never stalls or reverses short of the target.
			creep := a.creepVelocity()
			if a.currentVelocity*direction < creep {
				a.currentVelocity = direction * creep
				a.phase = PhaseFinal
			}
		}
	}

	if abs(a.currentVelocity) > s.MaximumVelocity {
		a.currentVelocity = sign(a.currentVelocity) * s.MaximumVelocity
	}

	a.publish()
	a.lastFrameTime = now

	recordFrame(a, now, current, target)
	if traceCompiled {
		tracePlanner(now, a.phase)
	}
}

// creepVelocity is the speed from which the axis can stop within one step
func (a *Axis) creepVelocity() float32 {
	return float32(math.Sqrt(float64(a.settings.MaximumAcceleration / a.settings.StepsPerRotation)))
}

// publish hands the current velocity to the tick callback as a direction
// and an interval in ticks.
func (a *Axis) publish() {
	forward := a.currentVelocity > 0
	if forward != a.stepDirection.Load() {
		// Pin and latch change together, so every counted step matches the
		// level on the direction pin.
		state := disableInterrupts()
		_ = a.gpio.SetPin(a.settings.DirectionPin, forward)
		if setup := a.settings.DirectionSetupMicros; setup > 0 {
			if d, ok := a.gpio.(Delayer); ok {
				d.DelayMicros(setup)
			}
		}
		a.stepDirection.Store(forward)
		restoreInterrupts(state)
	}

	stepsPerSecond := abs(a.GetVelocitySteps())
	if !(stepsPerSecond > 0) {
		a.movementEnabled.Store(false)
		return
	}

	a.ticksPerStep.Store(ticksForRate(stepsPerSecond))
	a.movementEnabled.Store(true)
}

// ticksForRate converts a positive step rate into whole ticks between
// rising edges, clamped to what the tick callback can produce.
func ticksForRate(stepsPerSecond float32) uint32 {
	ticks := float32(TicksPerSecond) / stepsPerSecond
	if ticks >= float32(math.MaxUint32) {
		return math.MaxUint32
	}
	if ticks < minTicksPerStep {
		return minTicksPerStep
	}
	return uint32(ticks)
}

// GetTicksPerStep returns the interval last published to the tick callback
func (a *Axis) GetTicksPerStep() uint32 {
	return a.ticksPerStep.Load()
}

// GetStepDirection returns the direction last published, true = forward
func (a *Axis) GetStepDirection() bool {
	return a.stepDirection.Load()
}

// Phase returns the branch taken by the last Update
func (a *Axis) Phase() Phase {
	return a.phase
}

func sign(v float32) float32 {
	if v > 0 {
		return 1
	} else if v < 0 {
		return -1
	}
	return 0
}

func signInt(v int64) float32 {
	if v > 0 {
		return 1
	} else if v < 0 {
		return -1
	}
	return 0
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
