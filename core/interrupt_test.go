//go:build !tinygo

package core

import (
	"testing"
	"time"
)

func TestWithInterruptsDisabledReleasesOnPanic(t *testing.T) {
	func() {
		defer func() { _ = recover() }()
		WithInterruptsDisabled(func() { panic("boom") })
	}()

	done := make(chan struct{})
	go func() {
		state := disableInterrupts()
		restoreInterrupts(state)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Interrupt mask still held after panic")
	}
}

func TestWithInterruptsDisabledMasksTick(t *testing.T) {
	r := newTestRig(t)
	r.begin(testSettings())

	done := make(chan struct{})
	WithInterruptsDisabled(func() {
		go func() {
			Tick()
			close(done)
		}()
		select {
		case <-done:
			t.Error("Tick ran inside a masked section")
		case <-time.After(50 * time.Millisecond):
		}
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Tick did not run after the mask was released")
	}
}
