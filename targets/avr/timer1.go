//go:build avr

package main

import (
	"device/avr"
	"errors"
	"runtime/interrupt"
)

// Timer1 in CTC mode clocked at F_CPU/8 (2MHz on a 16MHz part). The
// compare value is one less than the number of timer counts per tick.
const (
	timer1Clock    = 16000000 / 8
	timer1MaxCount = 0x10000
)

var (
	errTickRate = errors.New("tick rate out of range for Timer1")

	// timer1Callback is read by the interrupt handler
	timer1Callback func()
)

// Timer1Ticker implements core.TimerDriver on the 16-bit Timer1
type Timer1Ticker struct{}

// InstallPeriodicTimer starts Timer1 compare match A interrupts at tickRateHz
func (Timer1Ticker) InstallPeriodicTimer(tickRateHz uint32, callback func()) error {
	if tickRateHz == 0 || timer1Clock%tickRateHz != 0 {
		return errTickRate
	}
	counts := timer1Clock / tickRateHz
	if counts < 2 || counts > timer1MaxCount {
		return errTickRate
	}
	compare := uint16(counts - 1)

	timer1Callback = callback

	state := interrupt.Disable()

	avr.TCCR1A.Set(0)
	avr.TCCR1B.Set(0)
	avr.TCNT1H.Set(0)
	avr.TCNT1L.Set(0)

	// 16-bit registers: high byte first
	avr.OCR1AH.Set(uint8(compare >> 8))
	avr.OCR1AL.Set(uint8(compare))

	interrupt.New(avr.IRQ_TIMER1_COMPA, handleTimer1)
	avr.TIMSK1.SetBits(avr.TIMSK1_OCIE1A)

	// CTC on OCR1A, /8 prescaler
	avr.TCCR1B.Set(avr.TCCR1B_WGM12 | avr.TCCR1B_CS11)

	interrupt.Restore(state)
	return nil
}

// handleTimer1 runs in interrupt context
func handleTimer1(interrupt.Interrupt) {
	if timer1Callback != nil {
		timer1Callback()
	}
}
