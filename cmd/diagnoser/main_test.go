package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/diagnosis"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/fuzzy"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append([]string{"--log-level", "warn"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestDiagnoseCmd_JSON(t *testing.T) {
	out, _, err := run(t, "diagnose", "--device", "printer", "--time", "2", "--queue", "0", "--quality", "1", "--json")
	require.NoError(t, err)

	var r diagnosis.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, types.VerdictFault, r.Verdict)
	assert.Equal(t, "risk_driver", r.Cause)
	assert.Len(t, r.Risks, 4)
}

func TestDiagnoseCmd_Text(t *testing.T) {
	out, _, err := run(t, "diagnose", "-d", "scanner", "--time", "60", "--connection", "0", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "FAULT, most likely Cable")
	assert.Contains(t, out, "cable-critical")
}

func TestDiagnoseCmd_Errors(t *testing.T) {
	_, _, err := run(t, "diagnose", "--device", "fax", "--time", "1")
	assert.ErrorIs(t, err, types.ErrUnknownDevice)

	_, _, err = run(t, "diagnose", "--device", "scanner", "--time", "1", "--quality", "3")
	assert.ErrorIs(t, err, diagnosis.ErrUnsupportedInput)

	_, _, err = run(t, "diagnose", "--device", "printer", "--time", "1")
	assert.Error(t, err, "queue and quality are missing")
}

func TestPresetsCmd(t *testing.T) {
	out, _, err := run(t, "presets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "queue-stuck")
	assert.Contains(t, out, "scanner-ok")

	out, _, err = run(t, "presets", "run")
	require.NoError(t, err)
	assert.NotContains(t, out, "FAIL")

	out, _, err = run(t, "presets", "run", "twain-hang")
	require.NoError(t, err)
	assert.Contains(t, out, "TWAIN")

	_, _, err = run(t, "presets", "run", "nope")
	assert.Error(t, err)
}

func TestPresetsCmd_FromConfig(t *testing.T) {
	dir := t.TempDir()
	presets := filepath.Join(dir, "presets.yaml")
	require.NoError(t, os.WriteFile(presets, []byte(`
presets:
  - name: wrong-guess
    device: scanner
    measurements: {time: 60, connection: 0}
    expect: risk_twain
`), 0644))
	cfg := filepath.Join(dir, "diagnoser.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("presets_file: "+presets+"\n"), 0644))

	out, _, err := run(t, "--config", cfg, "presets", "run")
	assert.Error(t, err)
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "wrong-guess")
}

func TestCurveCmd(t *testing.T) {
	out, _, err := run(t, "curve", "connection", "stable", "--json")
	require.NoError(t, err)

	var curves map[string][]fuzzy.Point
	require.NoError(t, json.Unmarshal([]byte(out), &curves))
	require.Len(t, curves["stable"], 101)
	assert.Equal(t, 1.0, curves["stable"][100].Degree)
	assert.Equal(t, 0.5, curves["stable"][90].Degree)

	out, _, err = run(t, "curve", "time", "--step", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "timeout")

	_, _, err = run(t, "curve", "pressure")
	assert.Error(t, err)
}

func TestMetricsFlag(t *testing.T) {
	_, errOut, err := run(t, "--metrics", "diagnose", "--device", "scanner", "--time", "5", "--connection", "100")
	require.NoError(t, err)
	assert.Contains(t, errOut, `diagnoser_diagnoses_total{device="scanner",verdict="normal"} 1`)
}
