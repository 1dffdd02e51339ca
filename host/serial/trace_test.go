package serial

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTrace(t *testing.T) {
	testCases := []struct {
		line     string
		expected Trace
	}{
		{
			"[PLAN] 1.234 Accelerate towards destination\r\n",
			Trace{Tag: "PLAN", Seconds: 1.234, HasTime: true, Message: "Accelerate towards destination"},
		},
		{
			"[PLAN] 0.001 Stop",
			Trace{Tag: "PLAN", Seconds: 0.001, HasTime: true, Message: "Stop"},
		},
		{
			"[FRAMES] === Planner Frame Dump ===",
			Trace{Tag: "FRAMES", Message: "=== Planner Frame Dump ==="},
		},
	}

	for _, tc := range testCases {
		got, err := ParseTrace(tc.line)
		if err != nil {
			t.Errorf("ParseTrace(%q) failed: %v", tc.line, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseTrace(%q): expected %+v, got %+v", tc.line, tc.expected, got)
		}
	}

	for _, line := range []string{"", "hello", "[PLAN 1.0 Stop"} {
		if _, err := ParseTrace(line); err == nil {
			t.Errorf("ParseTrace(%q): expected error", line)
		}
	}
}

func TestMonitor(t *testing.T) {
	input := strings.Join([]string{
		"=== grubstep RP2040 ===",
		"[PLAN] 0.001 Start up motor / Switch direction",
		"[PLAN] 0.002 Accelerate towards destination",
		"[FRAMES] axis=0 t=0.002 pos=0 target=200 ticks=6666 Stop",
		"",
		"[PLAN] 0.003 Accelerate towards destination",
	}, "\r\n")

	m := NewMonitor("PLAN")
	var untagged []string
	m.Untagged = func(line string) { untagged = append(untagged, line) }

	var traces []Trace
	if err := m.Run(strings.NewReader(input), func(tr Trace) { traces = append(traces, tr) }); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(traces) != 3 {
		t.Fatalf("Expected 3 PLAN traces, got %d", len(traces))
	}
	if traces[2].Seconds != 0.003 {
		t.Errorf("Expected last trace at 0.003, got %v", traces[2].Seconds)
	}
	if got := m.Counts()["Accelerate towards destination"]; got != 2 {
		t.Errorf("Expected 2 accelerate traces, got %d", got)
	}
	if len(untagged) != 1 || untagged[0] != "=== grubstep RP2040 ===" {
		t.Errorf("Unexpected untagged lines %q", untagged)
	}
}

type bufferedPort struct {
	*strings.Reader
	stale    string
	flushes  int
	flushErr error
}

func (p *bufferedPort) Flush() error {
	p.flushes++
	if p.flushErr != nil {
		return p.flushErr
	}
	p.stale = ""
	return nil
}

func (p *bufferedPort) Close() error { return nil }

func TestFollowFlushesFirst(t *testing.T) {
	port := &bufferedPort{
		Reader: strings.NewReader("[PLAN] 0.001 Stop\n"),
		stale:  "tor towards destination\n",
	}

	var traces []Trace
	m := NewMonitor("PLAN")
	if err := m.Follow(port, func(tr Trace) { traces = append(traces, tr) }); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if port.flushes != 1 || port.stale != "" {
		t.Errorf("Expected one flush before reading, got %d", port.flushes)
	}
	if len(traces) != 1 || traces[0].Message != "Stop" {
		t.Errorf("Unexpected traces %+v", traces)
	}
}

func TestFollowFlushError(t *testing.T) {
	port := &bufferedPort{
		Reader:   strings.NewReader("[PLAN] 0.001 Stop\n"),
		flushErr: errors.New("device gone"),
	}

	called := false
	err := NewMonitor("PLAN").Follow(port, func(Trace) { called = true })
	if !errors.Is(err, port.flushErr) {
		t.Errorf("Expected flush error, got %v", err)
	}
	if called {
		t.Error("Traces read after a failed flush")
	}
}

func TestOpenPortNilConfig(t *testing.T) {
	if _, err := OpenPort(nil); err != errNoConfig {
		t.Errorf("Expected errNoConfig, got %v", err)
	}
}
