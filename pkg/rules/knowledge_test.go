package rules

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/engine"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

func build(t *testing.T) *engine.RuleBase {
	t.Helper()
	return MustBuild(engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func compute(t *testing.T, rb *engine.RuleBase, inputs map[string]float64) map[string]float64 {
	t.Helper()
	sim := engine.NewSimulation(rb)
	require.NoError(t, sim.SetInputs(inputs))
	require.NoError(t, sim.Compute())
	out, err := sim.Outputs()
	require.NoError(t, err)
	return out
}

func TestBuild(t *testing.T) {
	rb := build(t)

	assert.Empty(t, rb.Unreachable())

	var inputs []string
	for _, v := range rb.Inputs() {
		inputs = append(inputs, v.Name())
	}
	assert.Equal(t, []string{Time, Queue, Quality, Connection}, inputs)

	var outputs []string
	for _, v := range rb.Outputs() {
		outputs = append(outputs, v.Name())
		assert.Equal(t, riskLevels, v.TermNames())
	}
	assert.Equal(t, Outputs, outputs)

	names := make(map[string]bool)
	for _, r := range rb.Rules() {
		names[r.ID()] = true
	}
	for _, prefix := range []string{"spooler", "network", "driver", "hardware", "twain", "cable"} {
		assert.True(t, names[prefix+"-quiet"], "%s has no quiet rule", prefix)
		assert.True(t, names[prefix+"-low"], "%s has no low rule", prefix)
	}
	assert.True(t, names["scanner-responsive"])
}

func TestInstantGarbagePointsAtDriver(t *testing.T) {
	out := compute(t, build(t), map[string]float64{Time: 2, Queue: 0, Quality: 1, Connection: 100})

	driver := out[RiskDriver]
	assert.InDelta(t, 87.854, driver, 1e-3)
	for _, other := range []string{RiskSpooler, RiskNetwork, RiskHardware} {
		assert.Greater(t, driver, 2*out[other], "driver should dominate %s (%.2f)", other, out[other])
	}
}

func TestLostConnectionIsCriticalCable(t *testing.T) {
	rb := build(t)

	points, err := rb.Curve(RiskCable, Critical)
	require.NoError(t, err)
	curve := make([]float64, len(points))
	for i, p := range points {
		curve[i] = p.Degree
	}
	v, _ := rb.Variable(RiskCable)
	want, ok := engine.Centroid(v.Universe(), curve)
	require.True(t, ok)
	assert.InDelta(t, 92.0, want, 1e-9)

	for _, tm := range []float64{0, 30, 60, 90, 120} {
		out := compute(t, rb, map[string]float64{Time: tm, Queue: 0, Quality: 10, Connection: 0})
		assert.InDelta(t, want, out[RiskCable], 1e-9, "time=%v", tm)
	}
}

func TestEveryOutputIsDefined(t *testing.T) {
	if testing.Short() {
		t.Skip("grid sweep")
	}
	rb := build(t)

	for tm := 0.0; tm <= 120; tm += 10 {
		for queue := 0.0; queue <= 50; queue += 10 {
			for quality := 0.0; quality <= 10; quality++ {
				for conn := 0.0; conn <= 100; conn += 20 {
					in := map[string]float64{Time: tm, Queue: queue, Quality: quality, Connection: conn}
					sim := engine.NewSimulation(rb)
					require.NoError(t, sim.SetInputs(in))
					require.NoError(t, sim.Compute(), "inputs %v", in)

					out, err := sim.Outputs()
					require.NoError(t, err)
					for name, v := range out {
						assert.GreaterOrEqual(t, v, 0.0, "%s at %v", name, in)
						assert.LessOrEqual(t, v, 100.0, "%s at %v", name, in)
					}
				}
			}
		}
	}
}

func TestPresets(t *testing.T) {
	rb := build(t)

	for _, p := range Presets() {
		t.Run(p.Name, func(t *testing.T) {
			profile, err := ProfileFor(p.Device)
			require.NoError(t, err)
			inputs, err := profile.Complete(p.Measurements)
			require.NoError(t, err)

			result, err := engine.Analyze(rb, inputs)
			require.NoError(t, err)

			var top types.Hypothesis
			found := false
			for _, h := range result.Hypotheses {
				if profile.Relevant(h.Component) {
					top, found = h, true
					break
				}
			}
			require.True(t, found)

			if p.Expect == "" {
				assert.Less(t, top.Risk, types.RiskNormalCeiling, "top is %s", top.Component)
				return
			}
			assert.Equal(t, p.Expect, top.Component, "risk %.2f", top.Risk)
			assert.GreaterOrEqual(t, top.Risk, types.RiskNormalCeiling)
		})
	}
}

func TestFindPreset(t *testing.T) {
	p, err := FindPreset(Presets(), "twain-hang")
	require.NoError(t, err)
	assert.Equal(t, types.DeviceScanner, p.Device)

	_, err = FindPreset(Presets(), "nope")
	assert.Error(t, err)
}
