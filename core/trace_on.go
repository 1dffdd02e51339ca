//go:build grubstep_trace

package core

// traceCompiled keeps the planner trace in the build.
const traceCompiled = true
