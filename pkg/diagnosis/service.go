// Package diagnosis turns device measurements into ranked fault reports on
// top of the fuzzy engine.
package diagnosis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/engine"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/rules"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

// ErrUnsupportedInput is returned when a measurement does not belong to the
// device being diagnosed.
var ErrUnsupportedInput = errors.New("unsupported input")

// Service diagnoses printers and scanners. It is safe for concurrent use;
// every diagnosis runs in its own Session over the shared rule base.
type Service struct {
	rb          *engine.RuleBase
	logger      *slog.Logger
	thresholds  types.Thresholds
	metrics     *Metrics
	cache       *resultCache
	cacheSize   int
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithThresholds(t types.Thresholds) Option {
	return func(s *Service) { s.thresholds = t }
}

// WithCacheSize bounds the result cache; 0 disables it.
func WithCacheSize(n int) Option {
	return func(s *Service) { s.cacheSize = n }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithConcurrency bounds DiagnoseAll.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New creates a Service over rb.
func New(rb *engine.RuleBase, opts ...Option) (*Service, error) {
	if rb == nil {
		return nil, fmt.Errorf("diagnosis: nil rule base")
	}
	s := &Service{
		rb:          rb,
		logger:      slog.Default(),
		thresholds:  types.DefaultThresholds(),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}

	cache, err := newResultCache(s.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("diagnosis: cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

// RuleBase returns the rule base the service evaluates.
func (s *Service) RuleBase() *engine.RuleBase { return s.rb }

// Diagnose runs one diagnosis. Identical requests are answered from the
// cache when it is enabled.
func (s *Service) Diagnose(ctx context.Context, dc types.DiagnosticContext) (Report, error) {
	if err := ctx.Err(); err != nil {
		s.fail(dc.Device, err)
		return Report{}, err
	}

	sess, err := s.NewSession(dc.Device)
	if err != nil {
		s.fail(dc.Device, err)
		return Report{}, err
	}
	for name, v := range dc.Measurements {
		if err := sess.Set(name, v); err != nil {
			s.fail(dc.Device, err)
			return Report{}, err
		}
	}

	key := cacheKey(sess.device, sess.inputs())
	if r, ok := s.cache.get(key); ok {
		s.metrics.cache.WithLabelValues("hit").Inc()
		r.Session = sess.ID
		r.Cached = true
		s.metrics.diagnoses.WithLabelValues(string(r.Device), string(r.Verdict)).Inc()
		return r, nil
	}
	if s.cache != nil {
		s.metrics.cache.WithLabelValues("miss").Inc()
	}

	r, err := sess.Run(ctx)
	if err != nil {
		return Report{}, err
	}
	s.cache.add(key, r)
	return r, nil
}

// fail records a failed diagnosis.
func (s *Service) fail(device types.Device, err error) {
	kind := errorKind(err)
	s.metrics.errors.WithLabelValues(kind).Inc()
	s.logger.Warn("diagnosis failed", "device", device, "kind", kind, "error", err)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, engine.ErrMissingInput):
		return "missing_input"
	case errors.Is(err, engine.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, engine.ErrUndefinedOutput):
		return "undefined_output"
	case errors.Is(err, engine.ErrUnknownVariable), errors.Is(err, ErrUnsupportedInput):
		return "unsupported_input"
	case errors.Is(err, types.ErrUnknownDevice):
		return "unknown_device"
	default:
		return "internal"
	}
}

// Session is one diagnostic run: a device profile and its own engine
// instance. A Session must not be shared between goroutines.
type Session struct {
	ID string

	svc     *Service
	device  types.Device
	profile rules.Profile
	sim     *engine.Simulation
}

// NewSession starts a session for device with the device stubs applied.
func (s *Service) NewSession(device types.Device) (*Session, error) {
	profile, err := rules.ProfileFor(device)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		ID:      uuid.NewString(),
		svc:     s,
		device:  device,
		profile: profile,
		sim:     engine.NewSimulation(s.rb),
	}
	if err := sess.applyStubs(); err != nil {
		return nil, err
	}
	s.logger.Debug("session started", "session", sess.ID, "device", device)
	return sess, nil
}

func (sess *Session) applyStubs() error {
	stubs, err := sess.profile.Complete(nil)
	if err != nil {
		return err
	}
	return sess.sim.SetInputs(stubs)
}

// Device returns the device being diagnosed.
func (sess *Session) Device() types.Device { return sess.device }

// Set records one measurement. Only inputs the device measures are accepted.
func (sess *Session) Set(name string, value float64) error {
	for _, in := range sess.profile.Inputs {
		if in == name {
			return sess.sim.SetInput(name, value)
		}
	}
	return fmt.Errorf("%w: %s does not measure %q", ErrUnsupportedInput, sess.device, name)
}

// Reset clears the measurements, keeping the stubs.
func (sess *Session) Reset() error {
	sess.sim.Reset()
	return sess.applyStubs()
}

// inputs returns every value currently set, stubs included.
func (sess *Session) inputs() map[string]float64 {
	out := make(map[string]float64)
	for _, v := range sess.svc.rb.Inputs() {
		if x, ok := sess.sim.Input(v.Name()); ok {
			out[v.Name()] = x
		}
	}
	return out
}

// Run computes the session and builds its report.
func (sess *Session) Run(ctx context.Context) (Report, error) {
	s := sess.svc
	if err := ctx.Err(); err != nil {
		s.fail(sess.device, err)
		return Report{}, err
	}

	start := time.Now()
	err := sess.sim.Compute()
	s.metrics.compute.Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(sess.device, err)
		return Report{}, err
	}

	result, err := engine.Rank(sess.sim)
	if err != nil {
		s.fail(sess.device, err)
		return Report{}, err
	}

	r := buildReport(sess.device, sess.profile.Relevant, rules.Label, sess.inputs(), result, s.thresholds)
	r.Session = sess.ID
	s.metrics.diagnoses.WithLabelValues(string(r.Device), string(r.Verdict)).Inc()
	s.logger.Info("diagnosis complete",
		"session", sess.ID,
		"device", r.Device,
		"verdict", r.Verdict,
		"cause", r.Cause,
		"max_risk", r.MaxRisk,
	)
	return r, nil
}
