//go:build rp2040

package main

import (
	"device/rp"
	"errors"
	"machine"
	"runtime/interrupt"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// The tick source is a one instruction PIO program, `irq nowait 0`, run with
// the state machine clock divided down to the tick rate. Each execution
// raises PIO IRQ flag 0, routed to the PIO0_IRQ_0 interrupt.
const (
	pioIRQNowait0 = 0xc000 // irq nowait 0
	pioTickFlag   = 1 << 0
)

var (
	errTickerClaimed = errors.New("PIO state machine already claimed")
	errTickRate      = errors.New("tick rate out of range for PIO divider")

	// tickCallback is read by the interrupt handler
	tickCallback func()
)

// PIOTicker implements core.TimerDriver on PIO0
type PIOTicker struct {
	pio *rp2pio.PIO
	sm  rp2pio.StateMachine
}

// NewPIOTicker uses state machine smNum of PIO0
func NewPIOTicker(smNum uint8) *PIOTicker {
	return &PIOTicker{
		pio: rp2pio.PIO0,
		sm:  rp2pio.PIO0.StateMachine(smNum),
	}
}

// InstallPeriodicTimer loads the program and starts raising ticks
func (t *PIOTicker) InstallPeriodicTimer(tickRateHz uint32, callback func()) error {
	whole, frac, err := tickerClkDiv(machine.CPUFrequency(), tickRateHz)
	if err != nil {
		return err
	}

	// Claim the state machine first
	if !t.sm.TryClaim() {
		return errTickerClaimed
	}

	program := []uint16{pioIRQNowait0}
	offset, err := t.pio.AddProgram(program, -1)
	if err != nil {
		return err
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetWrap(offset, offset)
	cfg.SetClkDivIntFrac(whole, frac)
	t.sm.Init(offset, cfg)

	tickCallback = callback

	t.pio.ClearIRQ(pioTickFlag)
	rp.PIO0.IRQ0_INTE.SetBits(rp.PIO0_IRQ0_INTE_SM0)
	intr := interrupt.New(rp.IRQ_PIO0_IRQ_0, handlePIOTick)
	intr.SetPriority(0x00) // Highest priority
	intr.Enable()

	t.sm.SetEnabled(true)
	return nil
}

// handlePIOTick runs in interrupt context
func handlePIOTick(interrupt.Interrupt) {
	rp2pio.PIO0.ClearIRQ(pioTickFlag)
	if tickCallback != nil {
		tickCallback()
	}
}

// tickerClkDiv splits cpuHz/tickHz into the 16.8 fixed point PIO divider,
// one program instruction per tick.
func tickerClkDiv(cpuHz, tickHz uint32) (whole uint16, frac uint8, err error) {
	if tickHz == 0 {
		return 0, 0, errTickRate
	}
	div := (uint64(cpuHz) << 8) / uint64(tickHz)
	if div < 1<<8 || div>>8 > 0xffff {
		return 0, 0, errTickRate
	}
	return uint16(div >> 8), uint8(div), nil
}
