// Package diskstate holds the evolver's sole piece of mutable state:
// the radial grid's active window, the viscous-torque profile F, and
// the derived vectors recomputed from it every step. Fields that were
// lazily cached upstream are recomputed eagerly here instead, trading
// a little redundant arithmetic for a state struct with no optional
// fields to invalidate.
package diskstate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/lisdanil/freddi/internal/grid"
	"github.com/lisdanil/freddi/internal/opacity"
)

// State is the complete mutable state of one disk evolution. A State
// owns every slice it holds; it is allocated once and reused in place
// for the lifetime of an evolution — the active window only contracts
// by moving First/Last, never by reallocating the underlying slices.
type State struct {
	Grid    *grid.Grid
	Opacity opacity.Law
	Alpha   float64

	// Active window into Grid; F is zero outside [First,Last].
	First, Last int

	// F is the viscous torque profile, one value per grid point.
	F []float64

	// Scalar state.
	T            float64
	StepIndex    int
	MdotOut      float64 // <= 0
	FIn          float64
	MdotInPrev   float64
	MdotPeak     float64

	// Derived vectors, eagerly recomputed every step.
	// W/Sigma/Height are filled by Recompute; TphVis/TphX/Tirr/Cirr/Qx/Tph
	// are filled by internal/observables.Update, which needs the
	// irradiation/colour-factor parameters that State itself does not
	// carry.
	W        []float64
	Sigma    []float64
	Height   []float64
	TphVis   []float64
	TphX     []float64
	Tirr     []float64
	Cirr     []float64
	Qx       []float64
	Tph      []float64
}

// New allocates a State over g with the given opacity law and initial F
// profile (must have length g.Len()). The active window starts as the
// full grid.
func New(g *grid.Grid, law opacity.Law, alpha float64, f0 []float64) *State {
	n := g.Len()
	s := &State{
		Grid:    g,
		Opacity: law,
		Alpha:   alpha,
		First:   0,
		Last:    n - 1,
		F:       make([]float64, n),
		W:       make([]float64, n),
		Sigma:   make([]float64, n),
		Height:  make([]float64, n),
		TphVis:  make([]float64, n),
		TphX:    make([]float64, n),
		Tirr:    make([]float64, n),
		Cirr:    make([]float64, n),
		Qx:      make([]float64, n),
		Tph:     make([]float64, n),
		MdotPeak: math.Inf(-1),
	}
	copy(s.F, f0)
	s.Recompute()
	return s
}

// Recompute fills W, Sigma, Height from the current F over [First,Last]
// and zeroes them outside that window. It does not touch the
// observables-owned vectors (TphVis, Tph, ...); callers invalidate those
// via internal/observables.Update after calling Recompute.
func (s *State) Recompute() {
	gm := s.Grid.GM
	for i := range s.F {
		if i < s.First || i > s.Last {
			s.W[i], s.Sigma[i], s.Height[i] = 0, 0, 0
			continue
		}
		h := s.Grid.H[i]
		s.W[i] = s.Opacity.WOfF(s.F[i], h, s.Alpha)
		s.Sigma[i] = s.Opacity.SigmaOfF(s.F[i], h, gm, s.Alpha)
		s.Height[i] = s.Opacity.HeightOfF(s.F[i], h, gm, s.Alpha)
	}
}

// MaxF returns max(F) over the active window.
func (s *State) MaxF() float64 {
	if s.Last < s.First {
		return 0
	}
	return floats.Max(s.F[s.First : s.Last+1])
}

// MdotIn is the accretion rate onto the compact object,
// (F[first+1]-F[first])/(h[first+1]-h[first]).
func (s *State) MdotIn() float64 {
	if s.First+1 > s.Last {
		return 0
	}
	h := s.Grid.H
	return (s.F[s.First+1] - s.F[s.First]) / (h[s.First+1] - h[s.First])
}

// Clone deep-copies the state, used by internal/evolve.Ensemble so that
// each parallel evolution owns its own State.
func (s *State) Clone() *State {
	c := *s
	c.F = append([]float64(nil), s.F...)
	c.W = append([]float64(nil), s.W...)
	c.Sigma = append([]float64(nil), s.Sigma...)
	c.Height = append([]float64(nil), s.Height...)
	c.TphVis = append([]float64(nil), s.TphVis...)
	c.TphX = append([]float64(nil), s.TphX...)
	c.Tirr = append([]float64(nil), s.Tirr...)
	c.Cirr = append([]float64(nil), s.Cirr...)
	c.Qx = append([]float64(nil), s.Qx...)
	c.Tph = append([]float64(nil), s.Tph...)
	return &c
}

// IsValid reports whether F contains no NaN/Inf within the active
// window.
func (s *State) IsValid() bool {
	for i := s.First; i <= s.Last; i++ {
		if math.IsNaN(s.F[i]) || math.IsInf(s.F[i], 0) {
			return false
		}
	}
	return true
}
