package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync/atomic"
	"time"

	"grubstep/host/serial"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud   = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	prefix = flag.String("prefix", "PLAN", "Trace tag to show, empty for all")
	all    = flag.Bool("all", false, "Also show untagged lines")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Monitoring %s at %d baud...\n", *device, *baud)
	port, err := serial.OpenPort(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Closing the port ends the read loop
	var closing atomic.Bool
	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt)
	go func() {
		<-interrupted
		closing.Store(true)
		port.Close()
	}()

	m := serial.NewMonitor(*prefix)
	if *all {
		m.Untagged = func(line string) { fmt.Println(line) }
	}

	start := time.Now()
	var phase serial.Trace
	err = m.Follow(port, func(t serial.Trace) {
		// The planner traces every update; show phase changes only
		if t.HasTime && t.Tag == phase.Tag && t.Message == phase.Message {
			return
		}
		if t.HasTime && phase.HasTime {
			fmt.Printf("%10.3f [%s] %s (previous phase %.3fs)\n", t.Seconds, t.Tag, t.Message, t.Seconds-phase.Seconds)
		} else {
			fmt.Printf("%10.3f [%s] %s\n", t.Seconds, t.Tag, t.Message)
		}
		phase = t
	})

	printSummary(m.Counts(), time.Since(start))
	if err != nil && !closing.Load() {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printSummary(counts map[string]int, elapsed time.Duration) {
	messages := make([]string, 0, len(counts))
	for msg := range counts {
		messages = append(messages, msg)
	}
	sort.Strings(messages)

	fmt.Printf("\nTrace summary after %v:\n", elapsed.Round(time.Second))
	for _, msg := range messages {
		fmt.Printf("  %8d  %s\n", counts[msg], msg)
	}
}
