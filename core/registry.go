package core

// Axes form an intrusive chain in construction order so a single tick
// callback can service all of them. Registration happens during package
// initialisation, before any timer is installed, and is not guarded.
var firstAxis *Axis

// FirstAxis returns the head of the axis chain, or nil if none exist
func FirstAxis() *Axis {
	return firstAxis
}

// Next returns the axis constructed after a, or nil at the end of the chain
func (a *Axis) Next() *Axis {
	return a.next
}

// registerAxis appends a to the tail of the chain. An axis that is already
// linked is left where it is.
func registerAxis(a *Axis) {
	if firstAxis == nil {
		firstAxis = a
		return
	}

	current := firstAxis
	for {
		if current == a {
			return
		}
		if current.next == nil {
			break
		}
		current = current.next
	}

	current.next = a
}

// AxisCount returns the number of registered axes
func AxisCount() int {
	n := 0
	for a := firstAxis; a != nil; a = a.next {
		n++
	}
	return n
}

// Tick is the periodic timer callback. It walks every registered axis in
// construction order with interrupts masked.
func Tick() {
	state := disableInterrupts()
	advanceTickClock()
	for a := firstAxis; a != nil; a = a.next {
		a.tick()
	}
	restoreInterrupts(state)
}
