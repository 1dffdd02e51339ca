//go:build !grubstep_trace

package core

// traceCompiled drops the planner trace from the build; add the
// grubstep_trace tag to keep it.
const traceCompiled = false
