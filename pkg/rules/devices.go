package rules

import (
	"fmt"
	"sort"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

// Profile describes what is measured on a device and which risks matter for
// it. Inputs the device cannot measure are pinned to healthy stub values so
// that the shared rule base still produces every output.
type Profile struct {
	Device  types.Device
	Inputs  []string
	Outputs []string
	Stubs   map[string]float64
}

var profiles = map[types.Device]Profile{
	types.DevicePrinter: {
		Device:  types.DevicePrinter,
		Inputs:  []string{Time, Queue, Quality},
		Outputs: []string{RiskSpooler, RiskNetwork, RiskDriver, RiskHardware},
		Stubs:   map[string]float64{Connection: 100},
	},
	types.DeviceScanner: {
		Device:  types.DeviceScanner,
		Inputs:  []string{Time, Connection},
		Outputs: []string{RiskTwain, RiskCable},
		Stubs:   map[string]float64{Queue: 0, Quality: 10},
	},
}

// ProfileFor returns the profile of a device.
func ProfileFor(d types.Device) (Profile, error) {
	p, ok := profiles[d]
	if !ok {
		return Profile{}, fmt.Errorf("%w: no profile for %q", types.ErrUnknownDevice, d)
	}
	return p, nil
}

// Profiles returns every profile, ordered by device name.
func Profiles() []Profile {
	out := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Device < out[j].Device })
	return out
}

// Complete merges measurements with the device stubs into a full input set.
// A measurement of an input the device does not have is an error. Missing
// device inputs are left out, so the engine reports them.
func (p Profile) Complete(measurements map[string]float64) (map[string]float64, error) {
	accepted := make(map[string]bool, len(p.Inputs))
	for _, name := range p.Inputs {
		accepted[name] = true
	}

	inputs := make(map[string]float64, len(p.Inputs)+len(p.Stubs))
	for name, v := range measurements {
		if !accepted[name] {
			return nil, fmt.Errorf("%s does not measure %q (accepts %v)", p.Device, name, p.Inputs)
		}
		inputs[name] = v
	}
	for name, v := range p.Stubs {
		inputs[name] = v
	}
	return inputs, nil
}

// Relevant reports whether output is a risk of this device.
func (p Profile) Relevant(output string) bool {
	for _, o := range p.Outputs {
		if o == output {
			return true
		}
	}
	return false
}

var labels = map[string]string{
	RiskSpooler:  "Spooler",
	RiskNetwork:  "Network",
	RiskDriver:   "Driver",
	RiskHardware: "Hardware",
	RiskTwain:    "TWAIN",
	RiskCable:    "Cable",
}

// Label is the display name of a risk output.
func Label(output string) string {
	if l, ok := labels[output]; ok {
		return l
	}
	return output
}
