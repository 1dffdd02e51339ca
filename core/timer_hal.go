package core

import "errors"

// TimerDriver installs the periodic tick source. Implementations arrange for
// callback to run tickRateHz times per second in interrupt context (or, on a
// host, with the interrupt mask held).
type TimerDriver interface {
	InstallPeriodicTimer(tickRateHz uint32, callback func()) error
}

// ClockDriver is the monotonic microsecond clock read by the planner.
// The counter may wrap; elapsed times are computed with unsigned subtraction.
type ClockDriver interface {
	Micros() uint32
}

var (
	timerDriver    TimerDriver
	clockDriver    ClockDriver
	timerInstalled bool

	ErrNoTimer = errors.New("timer driver not configured")
	ErrNoClock = errors.New("clock driver not configured")
)

// SetTimerDriver registers the periodic tick source.
func SetTimerDriver(d TimerDriver) {
	timerDriver = d
}

// SetClockDriver registers the microsecond clock.
func SetClockDriver(d ClockDriver) {
	clockDriver = d
}

// installTimer starts the shared tick source the first time any axis begins.
func installTimer() error {
	if timerInstalled {
		return nil
	}
	if timerDriver == nil {
		return ErrNoTimer
	}
	if err := timerDriver.InstallPeriodicTimer(TicksPerSecond, Tick); err != nil {
		return err
	}
	timerInstalled = true
	return nil
}

// nowMicros reads the registered clock.
func nowMicros() uint32 {
	return clockDriver.Micros()
}

// Tick-derived clock, for boards without a free running microsecond timer.
const (
	tickMicrosWhole = 1000000 / TicksPerSecond
	tickMicrosFrac  = 1000000 % TicksPerSecond
)

var (
	tickMicros     uint32
	tickMicrosRest uint32
)

// advanceTickClock runs once per tick with interrupts masked.
func advanceTickClock() {
	tickMicros += tickMicrosWhole
	tickMicrosRest += tickMicrosFrac
	if tickMicrosRest >= TicksPerSecond {
		tickMicrosRest -= TicksPerSecond
		tickMicros++
	}
}

// TickClock is a ClockDriver counting elapsed ticks of the installed timer.
// It only advances once the timer is running.
type TickClock struct{}

// Micros returns the microseconds elapsed since the timer was installed.
func (TickClock) Micros() uint32 {
	state := disableInterrupts()
	us := tickMicros
	restoreInterrupts(state)
	return us
}
