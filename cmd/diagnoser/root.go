package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/config"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/diagnosis"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/engine"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/logging"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/rules"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

// app carries what every subcommand needs once the root has initialized.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath  string
	logLevel    string
	showMetrics bool

	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	svc      *diagnosis.Service
	presets  []types.Preset
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "diagnoser",
		Short: "Fuzzy fault diagnosis for printers and scanners",
		Long: `Ranks the likely causes of a printer or scanner fault from a few
crisp measurements using a Mamdani fuzzy rule base.

Examples:
  diagnoser diagnose --device printer --time 2 --queue 0 --quality 1
  diagnoser diagnose --device scanner --time 60 --connection 0 --json
  diagnoser presets run
  diagnoser curve connection`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.init() },
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.showMetrics && a.registry != nil {
				a.printMetrics()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Override the log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.showMetrics, "metrics", false,
		"Print collected metrics to stderr on exit")

	root.AddCommand(newDiagnoseCmd(a), newPresetsCmd(a), newCurveCmd(a))
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.logger, err = logging.New(a.errOut, level, cfg.Log.Format)
	if err != nil {
		return err
	}

	rb, err := rules.Build(engine.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("build rule base: %w", err)
	}

	a.registry = prometheus.NewRegistry()
	a.svc, err = diagnosis.New(rb,
		diagnosis.WithLogger(a.logger),
		diagnosis.WithThresholds(cfg.Verdict.Types()),
		diagnosis.WithCacheSize(cfg.Cache.Size),
		diagnosis.WithConcurrency(cfg.Batch.Concurrency),
		diagnosis.WithMetrics(diagnosis.NewMetrics(a.registry)),
	)
	if err != nil {
		return err
	}

	a.presets = rules.Presets()
	if cfg.PresetsFile != "" {
		if a.presets, err = config.LoadPresets(cfg.PresetsFile); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printMetrics writes every non-zero sample as "name{labels} value".
func (a *app) printMetrics() {
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Warn("gather metrics", "error", err)
		return
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, f := range families {
		for _, m := range f.GetMetric() {
			fmt.Fprintf(a.errOut, "%s%s %g\n", f.GetName(), labelString(m.GetLabel()), sampleValue(f.GetType(), m))
		}
	}
}

func labelString(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	s := "{"
	for i, p := range pairs {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%s=%q", p.GetName(), p.GetValue())
	}
	return s + "}"
}

func sampleValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM:
		return float64(m.GetHistogram().GetSampleCount())
	default:
		return 0
	}
}
