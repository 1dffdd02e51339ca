// Package ticker provides a software tick source and clock for running the
// motion core on a Linux host.
package ticker

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrRunning  = errors.New("ticker already running")
	ErrTickRate = errors.New("tick rate must be positive")
)

// DefaultWake is how often the ticker goroutine wakes to run due ticks
const DefaultWake = time.Millisecond

// Ticker implements core.TimerDriver. The OS cannot wake a goroutine at tick
// rates of tens of kHz, so it wakes every Wake interval and runs all ticks
// that fell due since the last wake, back to back. Pulse counts and
// ordering are exact; pulse timing has Wake granularity.
type Ticker struct {
	wake time.Duration

	mu      sync.Mutex
	running bool
	done    chan struct{}
	wg      sync.WaitGroup
	ticks   uint64
}

// New creates a ticker that wakes every wake interval
func New(wake time.Duration) *Ticker {
	if wake <= 0 {
		wake = DefaultWake
	}
	return &Ticker{wake: wake}
}

// InstallPeriodicTimer starts the ticker goroutine
func (t *Ticker) InstallPeriodicTimer(tickRateHz uint32, callback func()) error {
	if tickRateHz == 0 {
		return ErrTickRate
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrRunning
	}
	t.running = true
	t.done = make(chan struct{})

	t.wg.Add(1)
	go t.run(tickRateHz, callback, t.done)
	return nil
}

func (t *Ticker) run(rate uint32, callback func(), done <-chan struct{}) {
	defer t.wg.Done()

	tk := time.NewTicker(t.wake)
	defer tk.Stop()

	start := time.Now()
	var ran uint64
	for {
		select {
		case <-done:
			return
		case now := <-tk.C:
			due := DueTicks(now.Sub(start), rate)
			for ; ran < due; ran++ {
				callback()
			}
			t.mu.Lock()
			t.ticks = ran
			t.mu.Unlock()
		}
	}
}

// Ticks returns the number of callbacks run so far
func (t *Ticker) Ticks() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticks
}

// Close stops the ticker goroutine and waits for it to exit
func (t *Ticker) Close() error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	t.running = false
	close(t.done)
	t.mu.Unlock()

	t.wg.Wait()
	return nil
}

// DueTicks returns how many ticks at rate fall within elapsed
func DueTicks(elapsed time.Duration, rate uint32) uint64 {
	if elapsed <= 0 {
		return 0
	}
	whole := uint64(elapsed / time.Second)
	rest := uint64(elapsed % time.Second)
	return whole*uint64(rate) + rest*uint64(rate)/uint64(time.Second)
}

// Clock implements core.ClockDriver on the monotonic clock
type Clock struct {
	start time.Time
}

// NewClock starts a clock at zero
func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

// Micros returns microseconds since NewClock, wrapping at 2^32
func (c *Clock) Micros() uint32 {
	return uint32(time.Since(c.start).Microseconds())
}
