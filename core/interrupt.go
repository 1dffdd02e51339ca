package core

// WithInterruptsDisabled runs fn with the tick callback masked. The mask is
// restored on every exit path, including a panic in fn. Calls do not nest.
func WithInterruptsDisabled(fn func()) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	fn()
}
