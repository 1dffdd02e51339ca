package core

import (
	"testing"
)

type pinWrite struct {
	tick  int
	pin   GPIOPin
	level bool
}

type stepEdge struct {
	tick    int
	forward bool // direction pin level at the rising edge
}

// MockGPIODriver records every write against the tick counter of its rig
type MockGPIODriver struct {
	rig        *testRig
	configured map[GPIOPin]bool
	levels     map[GPIOPin]bool
	writes     []pinWrite
	edges      map[GPIOPin][]stepEdge
	dirFor     map[GPIOPin]GPIOPin // step pin -> direction pin
	delays     []uint32

	failPin GPIOPin
	failErr error
}

func (m *MockGPIODriver) ConfigureOutput(pin GPIOPin) error {
	if m.failErr != nil && pin == m.failPin {
		return m.failErr
	}
	m.configured[pin] = true
	return nil
}

func (m *MockGPIODriver) SetPin(pin GPIOPin, value bool) error {
	if dir, ok := m.dirFor[pin]; ok && value && !m.levels[pin] {
		m.edges[pin] = append(m.edges[pin], stepEdge{tick: m.rig.ticks, forward: m.levels[dir]})
	}
	m.levels[pin] = value
	m.writes = append(m.writes, pinWrite{tick: m.rig.ticks, pin: pin, level: value})
	return nil
}

func (m *MockGPIODriver) DelayMicros(us uint32) {
	m.delays = append(m.delays, us)
}

// pinWrites returns the writes to one pin, in order
func (m *MockGPIODriver) pinWrites(pin GPIOPin) []pinWrite {
	var out []pinWrite
	for _, w := range m.writes {
		if w.pin == pin {
			out = append(out, w)
		}
	}
	return out
}

type MockClock struct {
	us uint32
}

func (c *MockClock) Micros() uint32 {
	return c.us
}

// MockTimer captures the tick callback so tests can pump it by hand
type MockTimer struct {
	rate     uint32
	callback func()
	installs int
	err      error
}

func (m *MockTimer) InstallPeriodicTimer(tickRateHz uint32, callback func()) error {
	if m.err != nil {
		return m.err
	}
	m.rate = tickRateHz
	m.callback = callback
	m.installs++
	return nil
}

const ticksPerFrame = TicksPerSecond / 1000

type testRig struct {
	t     *testing.T
	gpio  *MockGPIODriver
	clock *MockClock
	timer *MockTimer
	ticks int
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	resetCore()
	t.Cleanup(resetCore)

	r := &testRig{t: t}
	r.gpio = &MockGPIODriver{
		rig:        r,
		configured: make(map[GPIOPin]bool),
		levels:     make(map[GPIOPin]bool),
		edges:      make(map[GPIOPin][]stepEdge),
		dirFor:     make(map[GPIOPin]GPIOPin),
	}
	r.clock = &MockClock{}
	r.timer = &MockTimer{}

	SetGPIODriver(r.gpio)
	SetClockDriver(r.clock)
	SetTimerDriver(r.timer)
	return r
}

// resetCore puts the package globals back to their initial state
func resetCore() {
	firstAxis = nil
	timerInstalled = false
	timerDriver = nil
	clockDriver = nil
	gpioDriver = nil
	tickMicros = 0
	tickMicrosRest = 0
	frameEnabled = false
	ClearFrames()
	debugEnabled = false
	debugPrintln = func(string) {}
	debugChan = nil
}

// begin creates an axis, begins it and watches its step pin for edges
func (r *testRig) begin(s Settings) *Axis {
	r.t.Helper()
	a := NewAxis()
	if err := a.Begin(s); err != nil {
		r.t.Fatalf("Begin failed: %v", err)
	}
	r.gpio.dirFor[s.StepPin] = s.DirectionPin
	return a
}

func (r *testRig) pump(n int) {
	for i := 0; i < n; i++ {
		r.ticks++
		r.timer.callback()
	}
}

// frame advances the clock by one millisecond, runs the planner for each
// axis, then runs the ticks of that millisecond.
func (r *testRig) frame(axes ...*Axis) {
	r.clock.us += 1000
	for _, a := range axes {
		a.Update()
	}
	r.pump(ticksPerFrame)
}

func (r *testRig) frames(n int, axes ...*Axis) {
	for i := 0; i < n; i++ {
		r.frame(axes...)
	}
}

// runUntilIdle runs frames until every axis is idle and returns how many ran
func (r *testRig) runUntilIdle(limit int, axes ...*Axis) int {
	r.t.Helper()
	for n := 1; n <= limit; n++ {
		r.frame(axes...)
		idle := true
		for _, a := range axes {
			if !a.IsIdle() {
				idle = false
			}
		}
		if idle {
			return n
		}
	}
	r.t.Fatalf("Axes not idle after %d frames", limit)
	return 0
}

// netSteps sums the rising edges on a step pin, +1 forward and -1 reverse
func (r *testRig) netSteps(stepPin GPIOPin) int64 {
	var n int64
	for _, e := range r.gpio.edges[stepPin] {
		if e.forward {
			n++
		} else {
			n--
		}
	}
	return n
}

func testSettings() Settings {
	return DefaultSettings()
}
