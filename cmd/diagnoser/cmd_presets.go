package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/rules"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

func newPresetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List or replay reference situations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDEVICE\tMEASUREMENTS\tEXPECT")
			for _, p := range a.presets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Device, formatMeasurements(p.Measurements), expectLabel(p))
			}
			return w.Flush()
		},
	}

	var jsonOutput bool
	run := &cobra.Command{
		Use:   "run [NAME]",
		Short: "Diagnose every preset, or only NAME, and check the expected cause",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := a.presets
			if len(args) == 1 {
				p, err := rules.FindPreset(a.presets, args[0])
				if err != nil {
					return err
				}
				presets = []types.Preset{p}
			}

			outcomes, err := a.svc.RunPresets(cmd.Context(), presets)
			if err != nil {
				return err
			}
			if jsonOutput {
				if err := a.writeJSON(outcomes); err != nil {
					return err
				}
			} else {
				w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "RESULT\tNAME\tVERDICT\tCAUSE\tMAX RISK")
				for _, o := range outcomes {
					result := "PASS"
					if !o.Pass {
						result = "FAIL"
					}
					cause := "-"
					if o.Report.Cause != "" {
						cause = o.Report.CauseLabel
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\n", result, o.Preset.Name, o.Report.Verdict, cause, o.Report.MaxRisk)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			failed := 0
			for _, o := range outcomes {
				if !o.Pass {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d presets did not match", failed, len(outcomes))
			}
			return nil
		},
	}
	run.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.AddCommand(list, run)
	return cmd
}

func formatMeasurements(m map[string]float64) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, m[name])
	}
	return strings.Join(parts, " ")
}

func expectLabel(p types.Preset) string {
	if p.Expect == "" {
		return "normal"
	}
	return rules.Label(p.Expect)
}
