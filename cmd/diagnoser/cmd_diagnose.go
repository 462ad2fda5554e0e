package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/diagnosis"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/rules"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

func newDiagnoseCmd(a *app) *cobra.Command {
	var (
		device     string
		jsonOutput bool
		explain    bool
		values     = map[string]*float64{
			rules.Time:       new(float64),
			rules.Queue:      new(float64),
			rules.Quality:    new(float64),
			rules.Connection: new(float64),
		}
	)

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Diagnose one device from its measurements",
		Long: `Diagnose one device. Only the measurements given on the command line
are used; inputs the device does not have are pinned to healthy values.

Printer inputs: --time, --queue, --quality
Scanner inputs: --time, --connection`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := types.ParseDevice(device)
			if err != nil {
				return err
			}
			dc := types.DiagnosticContext{Device: d, Measurements: map[string]float64{}}
			for name, v := range values {
				if cmd.Flags().Changed(name) {
					dc.Measurements[name] = *v
				}
			}

			r, err := a.svc.Diagnose(cmd.Context(), dc)
			if err != nil {
				return err
			}
			if jsonOutput {
				return a.writeJSON(r)
			}
			printReport(a, r, explain)
			return nil
		},
	}

	cmd.Flags().StringVarP(&device, "device", "d", string(types.DevicePrinter),
		"Device type: printer or scanner")
	cmd.Flags().Float64Var(values[rules.Time], rules.Time, 0,
		"Job response time in seconds (0-120)")
	cmd.Flags().Float64Var(values[rules.Queue], rules.Queue, 0,
		"Jobs waiting in the queue (0-50)")
	cmd.Flags().Float64Var(values[rules.Quality], rules.Quality, 0,
		"Print quality from 0 (garbage) to 10")
	cmd.Flags().Float64Var(values[rules.Connection], rules.Connection, 0,
		"Link quality in percent (0-100)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&explain, "explain", false, "List the rules behind each risk")
	return cmd
}

func printReport(a *app, r diagnosis.Report, explain bool) {
	fmt.Fprintf(a.out, "Device:  %s\n", r.Device)
	if r.Verdict == types.VerdictNormal {
		fmt.Fprintf(a.out, "Verdict: NORMAL (max risk %.1f%%)\n\n", r.MaxRisk)
	} else {
		fmt.Fprintf(a.out, "Verdict: FAULT, most likely %s (%.1f%%)\n\n", r.CauseLabel, r.MaxRisk)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCOMPONENT\tRISK\tLEVEL\tBAND")
	for _, h := range r.Risks {
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\t%s\n", h.Rank, rules.Label(h.Component), h.Risk, h.Level, h.Band)
	}
	w.Flush()

	if !explain {
		return
	}
	for _, h := range r.Risks {
		if len(h.Evidence) == 0 {
			continue
		}
		fmt.Fprintf(a.out, "\n%s:\n  %s\n", rules.Label(h.Component), strings.Join(h.Evidence, "\n  "))
	}
}
