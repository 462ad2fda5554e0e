package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/fuzzy"
)

func TestSimulation_Lifecycle(t *testing.T) {
	sim := NewSimulation(climate(t))
	assert.Equal(t, StateUninitialized, sim.State())

	_, err := sim.Output("fan")
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, sim.SetInput("temp", 50))
	assert.Equal(t, StateInputsSet, sim.State())

	require.NoError(t, sim.SetInput("humidity", 0))
	require.NoError(t, sim.Compute())
	assert.Equal(t, StateComputed, sim.State())

	fan, err := sim.Output("fan")
	require.NoError(t, err)
	assert.InDelta(t, 50, fan, 1e-9)

	require.NoError(t, sim.SetInput("temp", 90))
	assert.Equal(t, StateInputsSet, sim.State())
	_, err = sim.Output("fan")
	assert.ErrorIs(t, err, ErrInvalidState, "outputs are stale after an input change")

	sim.Reset()
	assert.Equal(t, StateUninitialized, sim.State())
	_, ok := sim.Input("temp")
	assert.False(t, ok)
}

func TestSimulation_MissingInputs(t *testing.T) {
	sim := NewSimulation(climate(t))

	err := sim.Compute()
	var missing *MissingInputError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"temp", "humidity"}, missing.Variables)
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.Equal(t, StateUninitialized, sim.State())
}

func TestSimulation_RejectsBadInputs(t *testing.T) {
	sim := NewSimulation(climate(t))

	assert.ErrorIs(t, sim.SetInput("pressure", 1), ErrUnknownVariable)
	assert.ErrorIs(t, sim.SetInput("fan", 1), ErrUnknownVariable, "outputs cannot be set")

	err := sim.SetInput("temp", math.NaN())
	var invalid *InvalidValueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "temp", invalid.Variable)
	assert.ErrorIs(t, sim.SetInput("temp", math.Inf(1)), ErrInvalidValue)

	assert.Equal(t, StateUninitialized, sim.State())

	err = sim.SetInputs(map[string]float64{"temp": 10, "humidity": math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, ok := sim.Input("temp")
	assert.False(t, ok, "SetInputs applies nothing when an entry is invalid")
}

func TestSimulation_ClampsInputs(t *testing.T) {
	sim := NewSimulation(climate(t))

	require.NoError(t, sim.SetInputs(map[string]float64{"temp": 500, "humidity": -20}))
	v, ok := sim.Input("temp")
	require.True(t, ok)
	assert.Equal(t, 100.0, v)
	v, _ = sim.Input("humidity")
	assert.Equal(t, 0.0, v)

	require.NoError(t, sim.Compute())
	clamped, err := sim.Outputs()
	require.NoError(t, err)

	require.NoError(t, sim.SetInputs(map[string]float64{"temp": 100, "humidity": 0}))
	require.NoError(t, sim.Compute())
	bounds, err := sim.Outputs()
	require.NoError(t, err)
	assert.Equal(t, bounds, clamped)
}

func TestSimulation_Idempotent(t *testing.T) {
	sim := NewSimulation(climate(t))
	require.NoError(t, sim.SetInputs(map[string]float64{"temp": 20, "humidity": 60}))

	require.NoError(t, sim.Compute())
	first, err := sim.Outputs()
	require.NoError(t, err)

	require.NoError(t, sim.Compute())
	second, err := sim.Outputs()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSimulation_UndefinedOutputKeepsState(t *testing.T) {
	rb, err := NewRuleBase(
		[]*fuzzy.Variable{temperature()},
		[]*fuzzy.Variable{level(t, "fan")},
		[]Rule{NewRule("hot", Is("temp", "hot"), Then("fan", "high"))},
		quiet)
	require.NoError(t, err)

	sim := NewSimulation(rb)
	require.NoError(t, sim.SetInput("temp", 0))

	err = sim.Compute()
	var undefined *UndefinedOutputError
	require.True(t, errors.As(err, &undefined))
	assert.Equal(t, []string{"fan"}, undefined.Variables)
	assert.ErrorIs(t, err, ErrUndefinedOutput)
	assert.Equal(t, StateInputsSet, sim.State())

	_, err = sim.Output("fan")
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = sim.Activations()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSimulation_UnreachableOutputIsUndefined(t *testing.T) {
	rb, err := NewRuleBase(
		[]*fuzzy.Variable{temperature()},
		[]*fuzzy.Variable{level(t, "fan"), level(t, "light")},
		[]Rule{NewRule("fan", Is("temp", "warm"), Then("fan", "mid"))},
		quiet)
	require.NoError(t, err)

	sim := NewSimulation(rb)
	require.NoError(t, sim.SetInput("temp", 50))
	err = sim.Compute()
	var undefined *UndefinedOutputError
	require.True(t, errors.As(err, &undefined))
	assert.Equal(t, []string{"light"}, undefined.Variables)
}

func TestSimulation_Activations(t *testing.T) {
	sim := NewSimulation(climate(t))
	require.NoError(t, sim.SetInputs(map[string]float64{"temp": 90, "humidity": 0}))
	require.NoError(t, sim.Compute())

	acts, err := sim.Activations()
	require.NoError(t, err)
	require.Len(t, acts, 5)
	assert.Equal(t, "fan-low", acts[0].Rule)
	assert.Equal(t, 0.0, acts[0].Strength)
	assert.InDelta(t, 0.2, acts[1].Strength, 1e-12)
	assert.InDelta(t, 0.8, acts[2].Strength, 1e-12)

	_, err = sim.Output("temp")
	assert.ErrorIs(t, err, ErrUnknownVariable)
	_, err = sim.AggregatedCurve("temp")
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "inputs-set", StateInputsSet.String())
	assert.Equal(t, "computed", StateComputed.String())
	assert.Equal(t, "state(9)", State(9).String())
}
