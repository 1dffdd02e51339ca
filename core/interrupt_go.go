//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// hostMask stands in for the interrupt enable flag when the core runs under
// a regular Go runtime: the tick callback holds it, so do the masked
// sections of the main loop. It is not reentrant.
var hostMask sync.Mutex

// disableInterrupts masks the host tick callback
func disableInterrupts() State {
	hostMask.Lock()
	return 0
}

// restoreInterrupts releases the host tick callback
func restoreInterrupts(state State) {
	hostMask.Unlock()
}
