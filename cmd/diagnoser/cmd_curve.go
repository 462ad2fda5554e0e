package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/fuzzy"
)

func newCurveCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		step       int
	)

	cmd := &cobra.Command{
		Use:   "curve VARIABLE [TERM]",
		Short: "Print the membership curve of one term or of every term",
		Long: `Samples membership functions over the variable's universe.

Examples:
  diagnoser curve connection stable
  diagnoser curve time --step 10
  diagnoser curve risk_cable --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rb := a.svc.RuleBase()
			v, ok := rb.Variable(args[0])
			if !ok {
				return fmt.Errorf("unknown variable %q", args[0])
			}
			terms := v.TermNames()
			if len(args) == 2 {
				terms = []string{args[1]}
			}

			curves := make(map[string][]fuzzy.Point, len(terms))
			for _, term := range terms {
				points, err := rb.Curve(v.Name(), term)
				if err != nil {
					return err
				}
				curves[term] = points
			}
			if jsonOutput {
				return a.writeJSON(curves)
			}

			if step < 1 {
				step = 1
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprint(w, "x\t")
			for _, term := range terms {
				fmt.Fprintf(w, "%s\t", term)
			}
			fmt.Fprintln(w)
			for i := 0; i < v.Universe().Len(); i += step {
				fmt.Fprintf(w, "%g\t", v.Universe().At(i))
				for _, term := range terms {
					fmt.Fprintf(w, "%.3f\t", curves[term][i].Degree)
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().IntVar(&step, "step", 5, "Print every STEP-th sample")
	return cmd
}
