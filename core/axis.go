package core

// Step/direction axis with a trapezoidal velocity profile.
// Positions are in rotations unless a name says steps.

import (
	"errors"
	"math"
	"sync/atomic"
)

// Settings configures one axis. It is copied by Begin and not changed after.
type Settings struct {
	StepPin      GPIOPin // Step pulse output pin
	DirectionPin GPIOPin // Direction output pin, high = forward
	EnabledPin   GPIOPin // Driver enable output pin

	EnabledPolarity bool // Level written to EnabledPin to enable the driver

	StepsPerRotation    float32 // Steps in one rotation
	MaximumVelocity     float32 // Rotations per second
	MaximumAcceleration float32 // Rotations per second squared

	// DirectionSetupMicros is held after a direction change before the
	// next step may follow, if the GPIO driver implements Delayer.
	DirectionSetupMicros uint32
}

var (
	ErrInvalidSettings = errors.New("axis settings must be positive and finite")
	ErrAlreadyBegun    = errors.New("axis already begun")
)

// DefaultSettings returns settings for a 1.8 degree motor on pins 8, 9 and 10.
func DefaultSettings() Settings {
	return Settings{
		StepPin:             8,
		DirectionPin:        9,
		EnabledPin:          10,
		EnabledPolarity:     false,
		StepsPerRotation:    360.0 / 1.8,
		MaximumVelocity:     1.0,
		MaximumAcceleration: 1.0,
	}
}

// Validate checks the motion limits.
func (s *Settings) Validate() error {
	for _, v := range [...]float32{s.StepsPerRotation, s.MaximumVelocity, s.MaximumAcceleration} {
		if !(v > 0) || math.IsInf(float64(v), 1) {
			return ErrInvalidSettings
		}
	}
	return nil
}

// Axis represents a single stepper motor driven through step and direction pins
type Axis struct {
	settings Settings
	gpio     GPIODriver
	index    uint8
	begun    bool

	// Owned by the tick callback
	tickPolarity       bool // true: next tick may raise the step pin
	ticksSinceLastStep uint32

	// Published by the planner, read by the tick callback
	ticksPerStep    atomic.Uint32
	stepDirection   atomic.Bool // true = forward
	movementEnabled atomic.Bool

	// Written by the tick callback; other access is masked
	currentPositionSteps int64
	targetPositionSteps  int64

	// Planner state
	targetPosition  float32
	currentVelocity float32
	lastFrameTime   uint32
	phase           Phase

	next *Axis
}

// NewAxis creates an axis and appends it to the axis chain. Axes are meant
// to be package level variables, created before the timer is installed.
func NewAxis() *Axis {
	a := &Axis{
		tickPolarity: true,
	}
	a.ticksPerStep.Store(10000)
	a.index = uint8(AxisCount())
	registerAxis(a)
	return a
}

// Begin stores the settings, configures the pins and installs the shared
// timer if no other axis has.
func (a *Axis) Begin(settings Settings) error {
	if a.begun {
		return ErrAlreadyBegun
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if clockDriver == nil {
		return ErrNoClock
	}

	gpio := MustGPIO()
	for _, pin := range [...]GPIOPin{settings.StepPin, settings.DirectionPin, settings.EnabledPin} {
		if err := gpio.ConfigureOutput(pin); err != nil {
			return err
		}
	}
	if err := gpio.SetPin(settings.StepPin, false); err != nil {
		return err
	}
	if err := gpio.SetPin(settings.DirectionPin, false); err != nil {
		return err
	}
	if err := gpio.SetPin(settings.EnabledPin, settings.EnabledPolarity); err != nil {
		return err
	}

	if err := installTimer(); err != nil {
		return err
	}

	a.settings = settings
	a.gpio = gpio
	a.lastFrameTime = nowMicros()

	state := disableInterrupts()
	a.begun = true
	restoreInterrupts(state)
	return nil
}

// Settings returns the settings passed to Begin
func (a *Axis) Settings() Settings {
	return a.settings
}

// Index returns the position of the axis in the chain
func (a *Axis) Index() uint8 {
	return a.index
}

// DriveTo sets a new target position. The planner picks it up on the next
// Update; the tick callback sees the new step target at once.
//
// Targets are in steps of the settings given to Begin, so DriveTo before
// Begin is ignored, as is a NaN or infinite position. Positions beyond the
// int64 step range are clamped to it.
func (a *Axis) DriveTo(position float32) {
	if !a.begun || math.IsNaN(float64(position)) || math.IsInf(float64(position), 0) {
		return
	}
	steps := rotationsToSteps(position, a.settings.StepsPerRotation)

	state := disableInterrupts()
	a.targetPosition = position
	a.targetPositionSteps = steps
	restoreInterrupts(state)
}

// Stop retargets the axis at its current position. No further steps are
// emitted and the next Update brings the velocity to zero.
func (a *Axis) Stop() {
	state := disableInterrupts()
	a.targetPositionSteps = a.currentPositionSteps
	steps := a.currentPositionSteps
	restoreInterrupts(state)

	a.targetPosition = a.stepsToRotations(steps)
}

// GetPosition returns the current position in rotations
func (a *Axis) GetPosition() float32 {
	return a.stepsToRotations(a.GetStepPosition())
}

// GetTargetPosition returns the last position passed to DriveTo
func (a *Axis) GetTargetPosition() float32 {
	return a.targetPosition
}

// GetStepPosition returns the current position in steps
func (a *Axis) GetStepPosition() int64 {
	state := disableInterrupts()
	steps := a.currentPositionSteps
	restoreInterrupts(state)
	return steps
}

// GetTargetStepPosition returns the target position in steps
func (a *Axis) GetTargetStepPosition() int64 {
	state := disableInterrupts()
	steps := a.targetPositionSteps
	restoreInterrupts(state)
	return steps
}

// GetVelocity returns the commanded velocity in rotations per second
func (a *Axis) GetVelocity() float32 {
	return a.currentVelocity
}

// GetVelocitySteps returns the commanded velocity in steps per second
func (a *Axis) GetVelocitySteps() float32 {
	return a.currentVelocity * a.settings.StepsPerRotation
}

// TareStepPosition redefines the current position. The target is unchanged,
// so a moving axis carries on toward it from the new origin.
func (a *Axis) TareStepPosition(stepPosition int64) {
	state := disableInterrupts()
	a.currentPositionSteps = stepPosition
	restoreInterrupts(state)
}

// IsIdle returns true once the axis is at its target and the planner has
// brought the velocity to zero
func (a *Axis) IsIdle() bool {
	state := disableInterrupts()
	atTarget := a.currentPositionSteps == a.targetPositionSteps
	restoreInterrupts(state)
	return atTarget && a.currentVelocity == 0
}

// Enable drives the enable pin to the configured polarity
func (a *Axis) Enable() error {
	if !a.begun {
		return nil
	}
	return a.gpio.SetPin(a.settings.EnabledPin, a.settings.EnabledPolarity)
}

// Disable drives the enable pin to the inverse of the configured polarity
func (a *Axis) Disable() error {
	if !a.begun {
		return nil
	}
	return a.gpio.SetPin(a.settings.EnabledPin, !a.settings.EnabledPolarity)
}

func (a *Axis) stepsToRotations(steps int64) float32 {
	if a.settings.StepsPerRotation == 0 {
		return 0
	}
	return float32(steps) / a.settings.StepsPerRotation
}

func rotationsToSteps(position, stepsPerRotation float32) int64 {
	steps := math.Round(float64(position) * float64(stepsPerRotation))
	switch {
	case steps >= math.MaxInt64:
		return math.MaxInt64
	case steps <= math.MinInt64:
		return math.MinInt64
	}
	return int64(steps)
}
