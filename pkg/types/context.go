package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDevice is returned for a device the diagnoser has no profile for.
var ErrUnknownDevice = errors.New("unknown device")

// Device is the kind of equipment being diagnosed.
type Device string

const (
	DevicePrinter Device = "printer"
	DeviceScanner Device = "scanner"
)

// ParseDevice accepts a device name in any case.
func ParseDevice(s string) (Device, error) {
	switch d := Device(strings.ToLower(strings.TrimSpace(s))); d {
	case DevicePrinter, DeviceScanner:
		return d, nil
	}
	return "", fmt.Errorf("%w %q (want %s or %s)", ErrUnknownDevice, s, DevicePrinter, DeviceScanner)
}

// DiagnosticContext is one diagnosis request: the device and the crisp
// measurements the user supplied, keyed by input variable name.
type DiagnosticContext struct {
	Device       Device             `json:"device" yaml:"device"`
	Measurements map[string]float64 `json:"measurements" yaml:"measurements"`
}

// Preset is a named, reproducible diagnostic situation.
type Preset struct {
	Name         string             `json:"name" yaml:"name"`
	Description  string             `json:"description,omitempty" yaml:"description,omitempty"`
	Device       Device             `json:"device" yaml:"device"`
	Measurements map[string]float64 `json:"measurements" yaml:"measurements"`

	// Expect is the component expected to rank first, or empty when the
	// situation should be diagnosed as normal.
	Expect string `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// Context converts the preset into a diagnosis request.
func (p Preset) Context() DiagnosticContext {
	m := make(map[string]float64, len(p.Measurements))
	for k, v := range p.Measurements {
		m[k] = v
	}
	return DiagnosticContext{Device: p.Device, Measurements: m}
}
