// Package diffusion implements the fully implicit, non-uniform-grid
// finite-volume step that advances the torque profile F(h,t). The
// discretization and the Thomas tridiagonal solve are derived directly
// from the governing diffusion equation and its boundary conditions,
// not transliterated from an upstream implementation.
//
// Scratch buffers are allocated once per Solver and reused across
// Step calls rather than reallocated every step.
package diffusion

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/lisdanil/freddi/internal/diskstate"
)

// Config bounds the nonlinear fixed-point iteration. Defaults are
// grounded on the reference CalculationArguments::eps of 1e-6.
type Config struct {
	Eps     float64
	MaxIter int
}

// DefaultConfig returns the reference-grounded defaults.
func DefaultConfig() Config {
	return Config{Eps: 1e-6, MaxIter: 100}
}

// Wind carries the per-grid-point source coefficients A(h)*F + B(h)*dF/dh
// + C(h) of the diffusion equation's right-hand side. A nil field is
// treated as all-zero (no wind).
type Wind struct {
	A, B, C []float64
}

func (w Wind) at(i int) (a, b, c float64) {
	if w.A != nil {
		a = w.A[i]
	}
	if w.B != nil {
		b = w.B[i]
	}
	if w.C != nil {
		c = w.C[i]
	}
	return
}

// Solver advances one DiskState by one substep of the nonlinear
// diffusion equation.
type Solver struct {
	cfg Config

	// scratch, grown on demand and reused across Step calls.
	a, b, c, d, iterate []float64
}

// New constructs a Solver with the given iteration bounds.
func New(cfg Config) *Solver {
	return &Solver{cfg: cfg}
}

func (s *Solver) ensureScratch(n int) {
	if len(s.a) >= n {
		return
	}
	s.a = make([]float64, n)
	s.b = make([]float64, n)
	s.c = make([]float64, n)
	s.d = make([]float64, n)
	s.iterate = make([]float64, n)
}

// Step advances ds.F by tau, holding the opacity law, grid and active
// window fixed, with inner Dirichlet condition F[first]=fIn and outer
// Neumann flux condition F[last]-F[last-1] = -mdotOut*(h[last]-h[last-1])
// closing the system's last row directly (no post-hoc extrapolation).
//
// Returns a *diskstate.StepError wrapping diskstate.ErrSolverDivergence
// if the nonlinear iteration exceeds cfg.MaxIter, or
// diskstate.ErrDomain if F<0 persists after clipping.
func (s *Solver) Step(ds *diskstate.State, step int, t, tau, fIn, mdotOut float64, wind Wind) error {
	first, last := ds.First, ds.Last
	n := last - first + 1
	if n < 3 {
		return &diskstate.StepError{Step: step, Time: t, Wrapped: &diskstate.DomainError{
			Field: "window", Value: float64(n), Message: "active window too small to solve",
		}}
	}
	s.ensureScratch(n)

	copy(s.iterate, ds.F[first:last+1])
	fOld := ds.F[first : last+1 : last+1]

	var converged bool
	for iter := 0; iter < s.cfg.MaxIter; iter++ {
		s.assemble(ds, first, last, n, tau, fIn, mdotOut, wind, fOld)
		if err := thomas(s.a[:n], s.b[:n], s.c[:n], s.d[:n]); err != nil {
			return &diskstate.StepError{Step: step, Time: t, Wrapped: &diskstate.DomainError{
				Field: "thomas", Value: 0, Message: err.Error(),
			}}
		}

		maxDelta := 0.0
		for i := 0; i < n; i++ {
			v := s.d[i]
			if v < 0 {
				v = 0
			}
			delta := math.Abs(v - s.iterate[i])
			if delta > maxDelta {
				maxDelta = delta
			}
			s.iterate[i] = v
		}
		maxAbs := floats.Max(s.iterate[:n])
		if maxDelta <= s.cfg.Eps*math.Max(maxAbs, 1) {
			converged = true
			break
		}
	}
	if !converged {
		return &diskstate.StepError{Step: step, Time: t, Wrapped: diskstate.ErrSolverDivergence}
	}

	for i := 0; i < n; i++ {
		if s.d[i] < 0 {
			return &diskstate.StepError{Step: step, Time: t, Wrapped: &diskstate.DomainError{
				Field: "F", Value: s.d[i], Message: "negative torque persisted after clipping",
			}}
		}
	}
	copy(ds.F[first:last+1], s.iterate[:n])
	ds.Recompute()
	return nil
}

// assemble fills a,b,c,d (length n, row i corresponds to grid index
// first+i) from the current nonlinear iterate s.iterate.
func (s *Solver) assemble(ds *diskstate.State, first, last, n int, tau, fIn, mdotOut float64, wind Wind, fOld []float64) {
	h := ds.Grid.H
	law := ds.Opacity
	alpha := ds.Alpha

	// Row 0: Dirichlet F[first] = fIn.
	s.a[0], s.b[0], s.c[0], s.d[0] = 0, 1, 0, fIn

	for row := 1; row < n-1; row++ {
		i := first + row
		hm, h0, hp := h[i-1], h[i], h[i+1]
		dhM := h0 - hm
		dhP := hp - h0
		dhC := 0.5 * (dhM + dhP)

		dL := diffusivity(law, alpha, s.iterate[row-1], 0.5*(hm+h0))
		dR := diffusivity(law, alpha, s.iterate[row+1], 0.5*(h0+hp))

		aCoef := tau / dhC * dL / dhM
		cCoef := tau / dhC * dR / dhP

		windA, windB, windC := wind.at(i)
		bWind := tau * windB / (dhM + dhP)

		s.a[row] = -aCoef - bWind
		s.c[row] = -cCoef + bWind
		s.b[row] = 1 + aCoef + cCoef - tau*windA
		s.d[row] = fOld[row] + tau*windC
	}

	// Row n-1: Neumann flux condition closing the system.
	hLast, hPrev := h[last], h[last-1]
	s.a[n-1] = -1
	s.b[n-1] = 1
	s.c[n-1] = 0
	s.d[n-1] = -mdotOut * (hLast - hPrev)
}

// diffusivity returns D(F,h) = (dF/dW)^-1 = h^n * |F|^-m / D(alpha),
// floored away from F=0 to keep the scheme well posed near the inner
// edge where F can legitimately vanish.
func diffusivity(law interface {
	M() float64
	N() float64
	D(alpha float64) float64
}, alpha, f, h float64) float64 {
	const floor = 1e-6
	af := math.Abs(f)
	if af < floor {
		af = floor
	}
	return math.Pow(h, law.N()) * math.Pow(af, -law.M()) / law.D(alpha)
}

// thomas solves the tridiagonal system a[i]*x[i-1]+b[i]*x[i]+c[i]*x[i+1]=d[i]
// in place, overwriting d with the solution.
func thomas(a, b, c, d []float64) error {
	n := len(b)
	cp := make([]float64, n)
	dp := make([]float64, n)
	cp[0] = c[0] / b[0]
	dp[0] = d[0] / b[0]
	for i := 1; i < n; i++ {
		m := b[i] - a[i]*cp[i-1]
		if m == 0 {
			return errZeroPivot
		}
		cp[i] = c[i] / m
		dp[i] = (d[i] - a[i]*dp[i-1]) / m
	}
	d[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		d[i] = dp[i] - cp[i]*d[i+1]
	}
	return nil
}

type thomasError string

func (e thomasError) Error() string { return string(e) }

const errZeroPivot = thomasError("diffusion: zero pivot in Thomas elimination")
