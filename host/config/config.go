// Package config reads axis settings from an ini-style configuration file.
package config

import (
	"fmt"

	"grubstep/core"

	"github.com/aamcrae/config"
)

// Axis is one named axis section of a configuration file.
type Axis struct {
	Name     string
	Settings core.Settings
}

// Load reads the named axis sections from file, in the order given.
func Load(file string, names ...string) ([]Axis, error) {
	conf, err := config.ParseFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	axes := make([]Axis, 0, len(names))
	for _, name := range names {
		s, err := Settings(conf, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		axes = append(axes, Axis{Name: name, Settings: s})
	}
	return axes, nil
}

// Settings reads and validates the settings for one axis. Keys left out
// keep the core.DefaultSettings values, except pins which is required.
// Sample config:
//
//	[x]                  # axis name
//	pins=8,9,10          # step, direction, enable GPIOs
//	enable=0             # level that enables the driver
//	steps=200            # steps per rotation
//	velocity=1.0         # rotations per second
//	acceleration=1.0     # rotations per second squared
//	setup=5              # direction setup time, microseconds
func Settings(conf *config.Config, name string) (core.Settings, error) {
	settings := core.DefaultSettings()

	s := conf.GetSection(name)
	if s == nil {
		return settings, fmt.Errorf("no config for %s", name)
	}

	var step, dir, enable int
	n, err := s.Parse("pins", "%d,%d,%d", &step, &dir, &enable)
	if err != nil {
		return settings, fmt.Errorf("%s: pins: %w", name, err)
	}
	if n != 3 {
		return settings, fmt.Errorf("%s: pins: argument count", name)
	}
	for _, pin := range []int{step, dir, enable} {
		if pin < 0 {
			return settings, fmt.Errorf("%s: pins: negative GPIO %d", name, pin)
		}
	}
	settings.StepPin = core.GPIOPin(step)
	settings.DirectionPin = core.GPIOPin(dir)
	settings.EnabledPin = core.GPIOPin(enable)

	if has(s, "enable") {
		var polarity int
		if err := parseOne(s, "enable", "%d", &polarity); err != nil {
			return settings, fmt.Errorf("%s: %w", name, err)
		}
		settings.EnabledPolarity = polarity != 0
	}

	floats := []struct {
		key string
		dst *float32
	}{
		{"steps", &settings.StepsPerRotation},
		{"velocity", &settings.MaximumVelocity},
		{"acceleration", &settings.MaximumAcceleration},
	}
	for _, f := range floats {
		if !has(s, f.key) {
			continue
		}
		var v float64
		if err := parseOne(s, f.key, "%f", &v); err != nil {
			return settings, fmt.Errorf("%s: %w", name, err)
		}
		*f.dst = float32(v)
	}

	if has(s, "setup") {
		var setup int
		if err := parseOne(s, "setup", "%d", &setup); err != nil {
			return settings, fmt.Errorf("%s: %w", name, err)
		}
		if setup < 0 {
			return settings, fmt.Errorf("%s: setup: negative delay", name)
		}
		settings.DirectionSetupMicros = uint32(setup)
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("%s: %w", name, err)
	}
	return settings, nil
}

// section is the part of a config section used here
type section interface {
	GetArg(key string) (string, error)
	Parse(key, format string, args ...interface{}) (int, error)
}

func has(s section, key string) bool {
	_, err := s.GetArg(key)
	return err == nil
}

func parseOne(s section, key, format string, arg interface{}) error {
	n, err := s.Parse(key, format, arg)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if n != 1 {
		return fmt.Errorf("%s: argument count", key)
	}
	return nil
}
