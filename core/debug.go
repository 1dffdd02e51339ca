package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Frame captures one planner update for post-mortem analysis
type Frame struct {
	Axis         uint8  // Axis index in the chain
	Phase        Phase  // Branch taken
	Clock        uint32 // Microsecond clock at the update
	Position     int64  // Step position seen by the planner
	Target       int64  // Target step position
	TicksPerStep uint32 // Interval published, 0 while movement is disabled
}

const (
	FrameRingSize = 32 // Keep last 32 planner frames
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Planner frame ring buffer (non-blocking, for post-mortem)
	frameRing     [FrameRingSize]Frame
	frameRingHead uint8
	frameEnabled  bool

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16) // Buffer 16 messages
	go debugOutputWorker()
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
// Blocks if debug is enabled (use DebugAsync for non-blocking)
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Returns immediately even if channel is full (drops message)
func DebugAsync(msg string) {
	if debugChan != nil {
		select {
		case debugChan <- msg:
		default:
			// Channel full, drop message
		}
	}
}

// tracePlanner writes the planner trace line: time in seconds, then the phase.
func tracePlanner(now uint32, phase Phase) {
	if !debugEnabled {
		return
	}
	line := "[PLAN] " + formatMicros(now) + " " + phase.String()
	if debugChan != nil {
		DebugAsync(line)
		return
	}
	DebugPrintln(line)
}

// SetFrameRecording enables or disables capture of planner frames
func SetFrameRecording(enabled bool) {
	frameEnabled = enabled
}

// recordFrame captures a planner update in the ring buffer
func recordFrame(a *Axis, now uint32, current, target int64) {
	if !frameEnabled {
		return
	}
	f := Frame{
		Axis:     a.index,
		Phase:    a.phase,
		Clock:    now,
		Position: current,
		Target:   target,
	}
	if a.movementEnabled.Load() {
		f.TicksPerStep = a.ticksPerStep.Load()
	}
	idx := frameRingHead
	frameRing[idx] = f
	frameRingHead = (idx + 1) % FrameRingSize
}

// Frames returns the recorded planner frames, oldest first
func Frames() []Frame {
	frames := make([]Frame, 0, FrameRingSize)
	start := frameRingHead
	for i := uint8(0); i < FrameRingSize; i++ {
		f := frameRing[(start+i)%FrameRingSize]
		if f.Phase == PhaseIdle {
			continue // Empty slot
		}
		frames = append(frames, f)
	}
	return frames
}

// DumpFrames outputs the frame ring buffer (call on shutdown/error)
func DumpFrames() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[FRAMES] === Planner Frame Dump ===")
	for _, f := range Frames() {
		debugPrintln("[FRAMES] axis=" + itoa(int(f.Axis)) +
			" t=" + formatMicros(f.Clock) +
			" pos=" + i64toa(f.Position) +
			" target=" + i64toa(f.Target) +
			" ticks=" + utoa(f.TicksPerStep) +
			" " + f.Phase.String())
	}
	debugPrintln("[FRAMES] === End Dump ===")
}

// ClearFrames clears the frame buffer
func ClearFrames() {
	for i := range frameRing {
		frameRing[i] = Frame{}
	}
	frameRingHead = 0
}
