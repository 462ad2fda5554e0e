package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/fuzzy"
)

func TestCentroid(t *testing.T) {
	u := fuzzy.MustSpan(0, 100, 1)

	t.Run("symmetric triangle", func(t *testing.T) {
		mf := fuzzy.Triangular(48, 50, 52)
		curve := make([]float64, u.Len())
		Implicate(u, mf, 1, curve)

		c, ok := Centroid(u, curve)
		require.True(t, ok)
		assert.Equal(t, 50.0, c)
	})

	t.Run("clipped symmetric triangle", func(t *testing.T) {
		mf := fuzzy.Triangular(20, 40, 60)
		curve := make([]float64, u.Len())
		Implicate(u, mf, 0.5, curve)

		c, ok := Centroid(u, curve)
		require.True(t, ok)
		assert.InDelta(t, 40.0, c, 1e-9)
	})

	t.Run("empty curve", func(t *testing.T) {
		_, ok := Centroid(u, make([]float64, u.Len()))
		assert.False(t, ok)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, ok := Centroid(u, []float64{1, 1})
		assert.False(t, ok)
	})
}

func TestImplicate(t *testing.T) {
	u := fuzzy.MustSpan(0, 10, 1)
	agg := make([]float64, u.Len())

	Implicate(u, fuzzy.Triangular(0, 5, 10), 0.6, agg)
	assert.Equal(t, 0.6, agg[5], "clipped at the firing level")
	assert.Equal(t, 0.2, agg[1])

	Implicate(u, fuzzy.Triangular(5, 10, 10), 0.9, agg)
	assert.Equal(t, 0.9, agg[10])
	assert.Equal(t, 0.6, agg[5], "aggregation keeps the pointwise maximum")

	before := append([]float64(nil), agg...)
	Implicate(u, fuzzy.Triangular(0, 0, 10), 0, agg)
	assert.Equal(t, before, agg, "a zero level contributes nothing")
}

func TestFiringStrength(t *testing.T) {
	rb := climate(t)
	f := rb.fuzzify(map[string]float64{"temp": 90, "humidity": 20})

	assert.InDelta(t, 0.8, FiringStrength(Is("temp", "hot"), f), 1e-12)
	assert.InDelta(t, 0.8, FiringStrength(Or(Is("temp", "hot"), Is("humidity", "wet")), f), 1e-12)
	assert.InDelta(t, 0.2, FiringStrength(And(Is("temp", "hot"), Is("humidity", "wet")), f), 1e-12)
}

func TestRuleOrderInvariance(t *testing.T) {
	forward := climateRules()
	reversed := make([]Rule, len(forward))
	for i, r := range forward {
		reversed[len(forward)-1-i] = r
	}

	a := climate(t)
	b, err := NewRuleBase(a.Inputs(), a.Outputs(), reversed, quiet)
	require.NoError(t, err)

	for _, in := range []map[string]float64{
		{"temp": 10, "humidity": 0},
		{"temp": 20, "humidity": 60},
		{"temp": 90, "humidity": 100},
	} {
		ra, ua := a.defuzzify(a.infer(in).curves)
		rb, ub := b.defuzzify(b.infer(in).curves)
		require.Empty(t, ua)
		require.Empty(t, ub)
		assert.Equal(t, ra, rb, "inputs %v", in)
	}
}

func TestWeightedConsequent(t *testing.T) {
	rb, err := NewRuleBase(
		[]*fuzzy.Variable{temperature()},
		[]*fuzzy.Variable{level(t, "fan")},
		[]Rule{NewRule("half", Is("temp", "warm"), Then("fan", "mid").Weighted(0.5))},
		quiet)
	require.NoError(t, err)

	sim := NewSimulation(rb)
	require.NoError(t, sim.SetInput("temp", 50))
	require.NoError(t, sim.Compute())

	curve, err := sim.AggregatedCurve("fan")
	require.NoError(t, err)
	require.Len(t, curve, 101)
	assert.Equal(t, 0.5, curve[50].Degree)
	assert.Equal(t, 0.0, curve[0].Degree)

	out, err := sim.Output("fan")
	require.NoError(t, err)
	assert.InDelta(t, 50, out, 1e-9)
}
