// Package config loads the diagnoser configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/rules"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

// Config is the whole configuration file.
type Config struct {
	Log     LogConfig       `yaml:"log"`
	Cache   CacheConfig     `yaml:"cache"`
	Batch   BatchConfig     `yaml:"batch"`
	Verdict ThresholdConfig `yaml:"verdict"`

	// PresetsFile replaces the built-in presets when set.
	PresetsFile string `yaml:"presets_file,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type CacheConfig struct {
	// Size is the number of results kept per process; 0 disables the cache.
	Size int `yaml:"size" validate:"gte=0,lte=100000"`
}

type BatchConfig struct {
	// Concurrency bounds batch diagnosis.
	Concurrency int `yaml:"concurrency" validate:"gte=1,lte=64"`
}

type ThresholdConfig struct {
	NormalCeiling float64 `yaml:"normal_ceiling" validate:"gte=0,lte=100"`
	WarningFloor  float64 `yaml:"warning_floor" validate:"gte=0,lte=100"`
	AlarmFloor    float64 `yaml:"alarm_floor" validate:"gte=0,lte=100,gtfield=WarningFloor"`
}

// Types converts the thresholds to their runtime form.
func (t ThresholdConfig) Types() types.Thresholds {
	return types.Thresholds{
		NormalCeiling: t.NormalCeiling,
		WarningFloor:  t.WarningFloor,
		AlarmFloor:    t.AlarmFloor,
	}
}

// Default returns the configuration used when no file is given.
func Default() Config {
	d := types.DefaultThresholds()
	return Config{
		Log:   LogConfig{Level: "info", Format: "text"},
		Cache: CacheConfig{Size: 256},
		Batch: BatchConfig{Concurrency: 4},
		Verdict: ThresholdConfig{
			NormalCeiling: d.NormalCeiling,
			WarningFloor:  d.WarningFloor,
			AlarmFloor:    d.AlarmFloor,
		},
	}
}

var validate = validator.New()

// Validate checks field ranges.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s: failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := decodeStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeStrict rejects keys that do not map to a field. An empty document
// leaves v untouched.
func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

type presetFile struct {
	Presets []types.Preset `yaml:"presets"`
}

// LoadPresets reads a list of presets from YAML:
//
//	presets:
//	  - name: queue-stuck
//	    device: printer
//	    measurements: {time: 115, queue: 49, quality: 10}
//	    expect: risk_spooler
func LoadPresets(path string) ([]types.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the presets file: %w", err)
	}

	var f presetFile
	if err := decodeStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(f.Presets) == 0 {
		return nil, fmt.Errorf("%s: no presets", path)
	}

	seen := make(map[string]bool, len(f.Presets))
	for i, p := range f.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("%s: preset %d has no name", path, i+1)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%s: preset %q declared twice", path, p.Name)
		}
		seen[p.Name] = true
		d, err := types.ParseDevice(string(p.Device))
		if err != nil {
			return nil, fmt.Errorf("%s: preset %q: %w", path, p.Name, err)
		}
		f.Presets[i].Device = d
		if err := checkPreset(f.Presets[i]); err != nil {
			return nil, fmt.Errorf("%s: preset %q: %w", path, p.Name, err)
		}
	}
	return f.Presets, nil
}

// checkPreset matches measurements and the expected cause against the
// device profile.
func checkPreset(p types.Preset) error {
	profile, err := rules.ProfileFor(p.Device)
	if err != nil {
		return err
	}
	if _, err := profile.Complete(p.Measurements); err != nil {
		return err
	}
	if p.Expect != "" && !profile.Relevant(p.Expect) {
		return fmt.Errorf("expect %q is not a %s risk (one of %v)", p.Expect, p.Device, profile.Outputs)
	}
	return nil
}
