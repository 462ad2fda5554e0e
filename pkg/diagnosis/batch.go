package diagnosis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

// DiagnoseAll diagnoses every request with bounded concurrency. Reports are
// returned in request order. The first failure cancels the remaining work
// and is returned together with its request index.
func (s *Service) DiagnoseAll(ctx context.Context, reqs []types.DiagnosticContext) ([]Report, error) {
	reports := make([]Report, len(reqs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			r, err := s.Diagnose(gCtx, req)
			if err != nil {
				return fmt.Errorf("request %d (%s): %w", i, req.Device, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// PresetOutcome is the result of replaying one preset.
type PresetOutcome struct {
	Preset types.Preset `json:"preset" yaml:"preset"`
	Report Report       `json:"report" yaml:"report"`

	// Pass reports whether the diagnosis matched the preset's expectation.
	Pass bool `json:"pass" yaml:"pass"`
}

// RunPresets replays presets and checks each against its expected cause.
func (s *Service) RunPresets(ctx context.Context, presets []types.Preset) ([]PresetOutcome, error) {
	reqs := make([]types.DiagnosticContext, len(presets))
	for i, p := range presets {
		reqs[i] = p.Context()
	}

	reports, err := s.DiagnoseAll(ctx, reqs)
	if err != nil {
		return nil, err
	}

	outcomes := make([]PresetOutcome, len(presets))
	for i, p := range presets {
		outcomes[i] = PresetOutcome{Preset: p, Report: reports[i], Pass: Matches(p, reports[i])}
	}
	return outcomes, nil
}

// Matches reports whether r is the diagnosis p expects: a fault with the
// expected cause, or a normal verdict when p expects none.
func Matches(p types.Preset, r Report) bool {
	if p.Expect == "" {
		return r.Verdict == types.VerdictNormal
	}
	return r.Verdict == types.VerdictFault && r.Cause == p.Expect
}
