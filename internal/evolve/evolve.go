// Package evolve drives the per-step pipeline: inner boundary tracking,
// the implicit diffusion step, observable updates, outer boundary
// tracking, then bookkeeping and a snapshot. The loop itself is
// context-aware with per-step error capture and metrics/observer
// hooks, the same shape as a generic simulation run loop, but driving
// a diffusion.Solver instead of an explicit stepper.
package evolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/lisdanil/freddi/internal/boundary"
	"github.com/lisdanil/freddi/internal/diffusion"
	"github.com/lisdanil/freddi/internal/diskstate"
	"github.com/lisdanil/freddi/internal/metrics"
	"github.com/lisdanil/freddi/internal/nstar"
	"github.com/lisdanil/freddi/internal/observables"
)

// Wind is a simplified uniform mass-loss term distributed evenly over
// the active window's torque equation as a constant source C(h), a
// documented approximation of a fuller windA/windB/windC model,
// exercising the same A/B/C interface.
type Wind struct {
	Rate float64 // cgs, >=0; 0 disables wind entirely
}

// Snapshot is one step's recorded integral and (optionally) full-field
// output, consumed by internal/output.
type Snapshot struct {
	StepIndex int
	T         float64
	MdotIn    float64
	MdotOut   float64
	Lx        float64

	FullData bool
	H, R, F, Sigma, Height, Tph []float64
	First, Last                int
}

// Observer receives every snapshot as it is produced, for live
// reporting (analogous to sim.Observer.OnStep).
type Observer interface {
	OnStep(ds *diskstate.State, snap Snapshot)
}

// Result accumulates a run's snapshots and non-fatal per-step errors,
// mirroring sim.Result's Errors slice.
type Result struct {
	Snapshots  []Snapshot
	Errors     []error
	StepsTaken int
}

// Loop owns one evolution's mutable state and the solvers/trackers it
// drives every step.
type Loop struct {
	ds       *diskstate.State
	diff     *diffusion.Solver
	obsCfg   observables.Config
	outerCfg boundary.OuterConfig
	ns       *nstar.Config
	nsd      *nstar.Derived
	wind     Wind
	mdotOut  float64
	fIn      float64
	fullData bool

	metrics   []metrics.Metric
	observers []Observer
}

// Config bundles the constructor arguments for New, grouped to keep
// the signature from sprawling across every run parameter.
type Config struct {
	DiskState *diskstate.State
	Diffusion diffusion.Config
	Obs       observables.Config
	Outer     boundary.OuterConfig
	NS        *nstar.Config
	NSD       *nstar.Derived
	Wind      Wind
	MdotOut   float64 // <= 0
	FIn       float64
	FullData  bool
}

// New constructs a Loop ready to Run.
func New(cfg Config) *Loop {
	l := &Loop{
		ds:       cfg.DiskState,
		diff:     diffusion.New(cfg.Diffusion),
		obsCfg:   cfg.Obs,
		outerCfg: cfg.Outer,
		ns:       cfg.NS,
		nsd:      cfg.NSD,
		wind:     cfg.Wind,
		mdotOut:  cfg.MdotOut,
		fIn:      cfg.FIn,
		fullData: cfg.FullData,
	}
	l.ds.MdotOut = cfg.MdotOut
	return l
}

func (l *Loop) AddMetric(m metrics.Metric)   { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer)       { l.observers = append(l.observers, o) }
func (l *Loop) State() *diskstate.State      { return l.ds }
func (l *Loop) Metrics() []metrics.Metric    { return l.metrics }

// Run advances from t=0 to t=totalTime in fixed substeps of tau,
// returning every snapshot taken plus any non-fatal errors.
// DiskExhausted and solver divergence are fatal: Run stops and returns
// the error alongside the partial Result.
func (l *Loop) Run(ctx context.Context, tau, totalTime float64) (*Result, error) {
	if tau <= 0 || totalTime <= 0 {
		return nil, fmt.Errorf("evolve: tau and totalTime must be > 0")
	}
	steps := int(totalTime / tau)
	result := &Result{Snapshots: make([]Snapshot, 0, steps+1)}

	for _, m := range l.metrics {
		m.Reset()
	}

	result.Snapshots = append(result.Snapshots, l.snapshot())

	for step := 1; step <= steps; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		innerRes, err := boundary.Inner(l.ds, l.ns, l.nsd)
		if err != nil {
			result.Errors = append(result.Errors, &diskstate.StepError{Step: step, Time: l.ds.T, Wrapped: err})
			return result, err
		}

		windAt := l.windTerms()
		if err := l.diff.Step(l.ds, step, l.ds.T, tau, l.fIn, l.mdotOut, windAt); err != nil {
			result.Errors = append(result.Errors, err)
			return result, err
		}

		rawMdotIn := l.ds.MdotIn()
		effMdotIn := innerRes.Fp * rawMdotIn
		observables.Update(l.ds, l.obsCfg, effMdotIn)

		if err := boundary.Outer(l.ds, l.outerCfg); err != nil {
			wrapped := &diskstate.StepError{Step: step, Time: l.ds.T, Wrapped: err}
			result.Errors = append(result.Errors, wrapped)
			if errors.Is(err, diskstate.ErrDiskExhausted) {
				return result, wrapped
			}
		}

		l.ds.MdotInPrev = effMdotIn
		if effMdotIn > l.ds.MdotPeak {
			l.ds.MdotPeak = effMdotIn
		}
		l.ds.T += tau
		l.ds.StepIndex = step

		for _, m := range l.metrics {
			m.Observe(l.ds, l.ds.T)
		}

		snap := l.snapshot()
		result.Snapshots = append(result.Snapshots, snap)
		for _, obs := range l.observers {
			obs.OnStep(l.ds, snap)
		}
		result.StepsTaken++
	}

	return result, nil
}

// windTerms builds the diffusion.Wind for the current step from the
// configured uniform wind rate, distributed over the active window.
func (l *Loop) windTerms() diffusion.Wind {
	if l.wind.Rate == 0 {
		return diffusion.Wind{}
	}
	n := l.ds.Grid.Len()
	c := make([]float64, n)
	window := l.ds.Last - l.ds.First + 1
	if window <= 0 {
		return diffusion.Wind{}
	}
	perPoint := -l.wind.Rate / float64(window)
	for i := l.ds.First; i <= l.ds.Last; i++ {
		c[i] = perPoint
	}
	return diffusion.Wind{C: c}
}

func (l *Loop) snapshot() Snapshot {
	snap := Snapshot{
		StepIndex: l.ds.StepIndex,
		T:         l.ds.T,
		MdotIn:    l.ds.MdotIn(),
		MdotOut:   l.mdotOut,
		Lx:        observables.Lx(l.ds, l.obsCfg),
		FullData:  l.fullData,
		First:     l.ds.First,
		Last:      l.ds.Last,
	}
	if l.fullData {
		snap.H = append([]float64(nil), l.ds.Grid.H...)
		snap.R = append([]float64(nil), l.ds.Grid.R...)
		snap.F = append([]float64(nil), l.ds.F...)
		snap.Sigma = append([]float64(nil), l.ds.Sigma...)
		snap.Height = append([]float64(nil), l.ds.Height...)
		snap.Tph = append([]float64(nil), l.ds.Tph...)
	}
	return snap
}
