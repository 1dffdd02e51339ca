package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"grubstep/core"
	"grubstep/host/config"
	"grubstep/host/gpio"
	"grubstep/host/ticker"
)

var (
	configFile = flag.String("config", "axes.conf", "Axis configuration file")
	driver     = flag.String("driver", "periph", "GPIO driver: "+strings.Join(gpio.Names, ", "))
	update     = flag.Duration("update", time.Millisecond, "Planner update interval")
	wake       = flag.Duration("wake", ticker.DefaultWake, "Tick source wake interval")
	timeout    = flag.Duration("timeout", time.Minute, "Give up if the axes are still moving after this long")
	verbose    = flag.Bool("verbose", false, "Print planner trace and frame dump")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] name=rotations...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	moves, err := parseMoves(args)
	if err != nil {
		return err
	}

	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.name
	}
	axes, err := config.Load(*configFile, names...)
	if err != nil {
		return err
	}

	drv, err := gpio.Open(*driver)
	if err != nil {
		return err
	}
	defer drv.Close()

	tk := ticker.New(*wake)
	defer tk.Close()

	core.SetGPIODriver(drv)
	core.SetClockDriver(ticker.NewClock())
	core.SetTimerDriver(tk)
	core.SetDebugWriter(func(s string) { fmt.Println(s) })
	core.SetDebugEnabled(*verbose)
	core.SetFrameRecording(*verbose)

	// Every axis joins the chain before the first Begin starts the ticker
	motors := make([]*core.Axis, len(axes))
	for i := range axes {
		motors[i] = core.NewAxis()
	}
	for i, a := range axes {
		if err := motors[i].Begin(a.Settings); err != nil {
			return fmt.Errorf("%s: %w", a.Name, err)
		}
	}

	for i, m := range moves {
		fmt.Printf("%s: driving to %g rotations\n", m.name, m.target)
		motors[i].DriveTo(m.target)
	}

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	start := time.Now()
	err = drive(motors, interrupted)
	elapsed := time.Since(start)

	for i, a := range axes {
		m := motors[i]
		fmt.Printf("%s: position %g rotations (%d steps)", a.Name, m.GetPosition(), m.GetStepPosition())
		if sim, ok := drv.(*gpio.SimDriver); ok {
			fmt.Printf(", %d pulses", sim.Rises(a.Settings.StepPin))
		}
		fmt.Println()
		if dErr := m.Disable(); dErr != nil && err == nil {
			err = fmt.Errorf("%s: %w", a.Name, dErr)
		}
	}
	fmt.Printf("Finished in %v\n", elapsed.Round(time.Millisecond))

	if *verbose {
		core.DumpFrames()
	}
	return err
}

var errTimeout = errors.New("axes still moving at timeout")

// drive runs the planner until every axis is idle. An interrupt stops the
// axes and lets them settle.
func drive(motors []*core.Axis, interrupted <-chan os.Signal) error {
	tick := time.NewTicker(*update)
	defer tick.Stop()
	deadline := time.After(*timeout)

	for {
		select {
		case <-interrupted:
			fmt.Println("Interrupted, stopping")
			for _, m := range motors {
				m.Stop()
			}
		case <-deadline:
			for _, m := range motors {
				m.Stop()
			}
			return errTimeout
		case <-tick.C:
			idle := true
			for _, m := range motors {
				m.Update()
				if !m.IsIdle() {
					idle = false
				}
			}
			if idle {
				return nil
			}
		}
	}
}

type move struct {
	name   string
	target float32
}

// parseMoves reads name=rotations arguments
func parseMoves(args []string) ([]move, error) {
	if len(args) == 0 {
		return nil, errors.New("no moves given, expected name=rotations")
	}
	moves := make([]move, 0, len(args))
	seen := make(map[string]bool)
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid move %q, expected name=rotations", arg)
		}
		if seen[name] {
			return nil, fmt.Errorf("axis %s given twice", name)
		}
		seen[name] = true
		target, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		moves = append(moves, move{name: name, target: float32(target)})
	}
	return moves, nil
}
