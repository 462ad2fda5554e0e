package rules

import (
	"fmt"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

// Presets returns the built-in reference situations. Each one names the
// component expected to rank first, or none when the device is healthy.
func Presets() []types.Preset {
	return []types.Preset{
		{
			Name:         "queue-stuck",
			Description:  "Full queue and jobs time out",
			Device:       types.DevicePrinter,
			Measurements: map[string]float64{Time: 115, Queue: 49, Quality: 10},
			Expect:       RiskSpooler,
		},
		{
			Name:         "garbled-output",
			Description:  "Job prints instantly but the page is garbage",
			Device:       types.DevicePrinter,
			Measurements: map[string]float64{Time: 2, Queue: 0, Quality: 1},
			Expect:       RiskDriver,
		},
		{
			Name:         "network-lag",
			Description:  "Perfect print that arrives late",
			Device:       types.DevicePrinter,
			Measurements: map[string]float64{Time: 90, Queue: 5, Quality: 10},
			Expect:       RiskNetwork,
		},
		{
			Name:         "faded-print",
			Description:  "Idle printer producing pale pages",
			Device:       types.DevicePrinter,
			Measurements: map[string]float64{Time: 20, Queue: 0, Quality: 4},
			Expect:       RiskHardware,
		},
		{
			Name:         "printer-ok",
			Description:  "Everything works",
			Device:       types.DevicePrinter,
			Measurements: map[string]float64{Time: 5, Queue: 2, Quality: 10},
		},
		{
			Name:         "cable-break",
			Description:  "Scanner link is gone",
			Device:       types.DeviceScanner,
			Measurements: map[string]float64{Time: 60, Connection: 0},
			Expect:       RiskCable,
		},
		{
			Name:         "twain-hang",
			Description:  "Stable link but the scanner never answers",
			Device:       types.DeviceScanner,
			Measurements: map[string]float64{Time: 115, Connection: 100},
			Expect:       RiskTwain,
		},
		{
			Name:         "interference",
			Description:  "Flaky link and slow scans",
			Device:       types.DeviceScanner,
			Measurements: map[string]float64{Time: 80, Connection: 50},
			Expect:       RiskCable,
		},
		{
			Name:         "scanner-ok",
			Description:  "Everything works",
			Device:       types.DeviceScanner,
			Measurements: map[string]float64{Time: 5, Connection: 100},
		},
	}
}

// FindPreset looks a preset up by name.
func FindPreset(presets []types.Preset, name string) (types.Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return types.Preset{}, fmt.Errorf("unknown preset %q", name)
}
