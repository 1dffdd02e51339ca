package serial

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Trace is one tagged line of firmware output, e.g.
//
//	[PLAN] 1.234 Accelerate towards destination
type Trace struct {
	Tag     string  // Text between the brackets, e.g. PLAN
	Seconds float64 // Firmware clock, when the line carries one
	HasTime bool
	Message string
}

var errNotTagged = errors.New("line has no [TAG] prefix")

// ParseTrace splits a firmware line into its tag, time and message
func ParseTrace(line string) (Trace, error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "[") {
		return Trace{}, errNotTagged
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return Trace{}, errNotTagged
	}

	t := Trace{Tag: line[1:end]}
	rest := strings.TrimSpace(line[end+1:])

	first, message, _ := strings.Cut(rest, " ")
	if seconds, err := strconv.ParseFloat(first, 64); err == nil {
		t.Seconds = seconds
		t.HasTime = true
		t.Message = message
	} else {
		t.Message = rest
	}
	return t, nil
}

// Monitor reads firmware lines and hands traces with a matching tag to a
// callback. An empty tag matches everything.
type Monitor struct {
	Tag string

	// Untagged receives lines without a tag, if set
	Untagged func(line string)

	counts map[string]int
}

// NewMonitor creates a monitor for tag
func NewMonitor(tag string) *Monitor {
	return &Monitor{
		Tag:    tag,
		counts: make(map[string]int),
	}
}

// Run reads r until EOF or error
func (m *Monitor) Run(r io.Reader, fn func(Trace)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		t, err := ParseTrace(line)
		if err != nil {
			if m.Untagged != nil && strings.TrimSpace(line) != "" {
				m.Untagged(line)
			}
			continue
		}
		if m.Tag != "" && t.Tag != m.Tag {
			continue
		}
		m.counts[t.Message]++
		fn(t)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading trace: %w", err)
	}
	return nil
}

// Counts returns how many matching traces carried each message
func (m *Monitor) Counts() map[string]int {
	return m.counts
}
