//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x28 // Raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// RPClock reads the RP2040 1MHz hardware timer. It runs from reset, so the
// planner has a clock before the tick source is installed.
type RPClock struct{}

// Micros returns the low 32 bits of the microsecond counter
func (RPClock) Micros() uint32 {
	return timerRAWL.Get()
}

