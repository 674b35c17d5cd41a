// Package initcond implements the initial-F(h) strategies: powerF,
// powerSigma, sinusF, quasistat, gaussF. Each produces F(h) at t=0 from
// a single shape parameter, with F0 optionally solved from a disk-mass
// or accretion-rate target by bisection. Dispatched by name through
// internal/registry.
package initcond

import (
	"fmt"
	"math"

	"github.com/lisdanil/freddi/internal/grid"
	"github.com/lisdanil/freddi/internal/opacity"
)

// Params bundles the optional per-variant and F0-derivation inputs.
type Params struct {
	F0         float64 // direct value; zero means "derive from Mdot0/Mdisk0"
	Mdot0      float64 // cgs, used when F0 is not set directly (takes precedence over Mdisk0)
	Mdisk0     float64 // cgs, used when neither F0 nor Mdot0 is set
	PowerOrder float64 // powerF, powerSigma
	GaussMu    float64 // gaussF, fraction of h_out
	GaussSigma float64 // gaussF, fraction of h_out
}

// Func produces F(h) given the grid, opacity law and viscosity alpha.
type Func func(g *grid.Grid, law opacity.Law, alpha float64, p Params) ([]float64, error)

// shape returns the dimensionless profile in [0,1] used by powerF,
// sinusF and gaussF before it is scaled by F0.
type shape func(x float64) float64

func buildShaped(g *grid.Grid, sh shape) []float64 {
	hIn, hOut := g.H[0], g.H[g.Len()-1]
	f := make([]float64, g.Len())
	for i, h := range g.H {
		x := (h - hIn) / (hOut - hIn)
		f[i] = sh(x)
	}
	return f
}

// PowerF implements F_i = F0 * ((h_i-h_in)/(h_out-h_in))^p.
func PowerF(g *grid.Grid, law opacity.Law, alpha float64, p Params) ([]float64, error) {
	shapeF := buildShaped(g, func(x float64) float64 { return math.Pow(x, p.PowerOrder) })
	return scaleToF0(g, law, alpha, p, shapeF)
}

// SinusF implements F_i = F0 * sin((h_i-h_in)/(h_out-h_in) * pi/2).
func SinusF(g *grid.Grid, law opacity.Law, alpha float64, p Params) ([]float64, error) {
	shapeF := buildShaped(g, func(x float64) float64 { return math.Sin(x * math.Pi / 2) })
	return scaleToF0(g, law, alpha, p, shapeF)
}

// GaussF implements F_i = F0 * exp(-(h_i-mu*h_out)^2/(2*(sigma*h_out)^2)),
// clipped to >= 0.
func GaussF(g *grid.Grid, law opacity.Law, alpha float64, p Params) ([]float64, error) {
	hOut := g.H[g.Len()-1]
	mu := p.GaussMu * hOut
	sigma := p.GaussSigma * hOut
	shapeF := make([]float64, g.Len())
	for i, h := range g.H {
		v := math.Exp(-(h - mu) * (h - mu) / (2 * sigma * sigma))
		if v < 0 {
			v = 0
		}
		shapeF[i] = v
	}
	return scaleToF0(g, law, alpha, p, shapeF)
}

// PowerSigma chooses F so that Sigma(h) is proportional to
// ((h-h_in)/(h_out-h_in))^p, inverting the opacity law pointwise.
func PowerSigma(g *grid.Grid, law opacity.Law, alpha float64, p Params) ([]float64, error) {
	hIn, hOut := g.H[0], g.H[g.Len()-1]
	m := law.M()
	f := make([]float64, g.Len())
	for i, h := range g.H {
		x := (h - hIn) / (hOut - hIn)
		sigmaShape := math.Pow(x, p.PowerOrder)
		// Sigma = W*(GM)^2/(4h^3), W = |F|^(1-m)*h^n/((1-m)D)
		// => F = [ Sigma * 4h^3/(GM)^2 * (1-m)*D / h^n ]^(1/(1-m))
		w := sigmaShape * 4 * h * h * h / (g.GM * g.GM) * (1 - m) * law.D(alpha) / math.Pow(h, law.N())
		if w < 0 {
			w = 0
		}
		f[i] = math.Pow(w, 1/(1-m))
	}
	return scaleSigmaShapeToF0(g, law, alpha, p, f)
}

// Quasistat returns the quasi-stationary solution of the stationary
// diffusion equation for the chosen opacity law: F(h) = F0 *
// (1-h_in/h), the standard Shakura-Sunyaev steady-disk profile.
func Quasistat(g *grid.Grid, law opacity.Law, alpha float64, p Params) ([]float64, error) {
	hIn := g.H[0]
	shapeF := make([]float64, g.Len())
	for i, h := range g.H {
		shapeF[i] = 1 - hIn/h
	}
	return scaleToF0(g, law, alpha, p, shapeF)
}

// scaleToF0 scales a [0,1]-ish shape by an F0 resolved from Params
// (direct value, or bisected against Mdot0/Mdisk0).
func scaleToF0(g *grid.Grid, law opacity.Law, alpha float64, p Params, shapeF []float64) ([]float64, error) {
	f0, err := resolveF0(g, law, alpha, p, shapeF)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(shapeF))
	for i, v := range shapeF {
		out[i] = f0 * v
	}
	return out, nil
}

// scaleSigmaShapeToF0 rescales an already-F-shaped profile (one whose
// Sigma is exactly the target shape at F0=1) to hit the requested F0,
// Mdot0 or Mdisk0 target by uniformly scaling F (Sigma scales as
// F^(1-m), so F *= k implies Sigma *= k^(1-m); we resolve k by the same
// bisection used elsewhere).
func scaleSigmaShapeToF0(g *grid.Grid, law opacity.Law, alpha float64, p Params, unitF []float64) ([]float64, error) {
	k, err := resolveF0(g, law, alpha, p, unitF)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(unitF))
	for i, v := range unitF {
		out[i] = k * v
	}
	return out, nil
}

// resolveF0 returns the scale factor k such that F = k*shape matches the
// requested target: direct F0, or Mdot0 (closed form, Mdot_in is linear
// in F near the inner edge), or Mdisk0 (nonlinear in F0 via the opacity
// law's Sigma relation, solved by bisection).
func resolveF0(g *grid.Grid, law opacity.Law, alpha float64, p Params, shapeF []float64) (float64, error) {
	if p.F0 != 0 {
		return p.F0, nil
	}
	if p.Mdot0 != 0 {
		slope := shapeF[1] - shapeF[0]
		if slope == 0 {
			return 0, fmt.Errorf("initcond: shape(h[1])=shape(h[0]), cannot derive F0 from Mdot0")
		}
		dh := g.H[1] - g.H[0]
		return p.Mdot0 * dh / slope, nil
	}
	if p.Mdisk0 != 0 {
		mass := func(k float64) float64 {
			return diskMass(g, law, alpha, k, shapeF)
		}
		k, err := bisect(mass, p.Mdisk0, 0, 1e40)
		if err != nil {
			return 0, fmt.Errorf("initcond: resolving F0 from Mdisk0: %w", err)
		}
		return k, nil
	}
	return 0, fmt.Errorf("initcond: one of F0, Mdot0 or Mdisk0 must be set")
}

// diskMass integrates 2*pi*R*Sigma(k*shape(h)) dR over the grid via the
// trapezoidal rule.
func diskMass(g *grid.Grid, law opacity.Law, alpha float64, k float64, shapeF []float64) float64 {
	total := 0.0
	for i := 0; i+1 < g.Len(); i++ {
		r0, r1 := g.R[i], g.R[i+1]
		s0 := law.SigmaOfF(k*shapeF[i], g.H[i], g.GM, alpha)
		s1 := law.SigmaOfF(k*shapeF[i+1], g.H[i+1], g.GM, alpha)
		y0 := 2 * math.Pi * r0 * s0
		y1 := 2 * math.Pi * r1 * s1
		total += 0.5 * (y0 + y1) * (r1 - r0)
	}
	return total
}

// bisect finds x in [lo,hi] such that f(x) == target, assuming f is
// monotone increasing, to a relative tolerance of 1e-8.
func bisect(f func(float64) float64, target, lo, hi float64) (float64, error) {
	flo, fhi := f(lo), f(hi)
	if (flo-target)*(fhi-target) > 0 {
		return 0, fmt.Errorf("bisect: target %g not bracketed by [%g,%g] -> [%g,%g]", target, lo, hi, flo, fhi)
	}
	for iter := 0; iter < 2000; iter++ {
		mid := 0.5 * (lo + hi)
		fm := f(mid)
		if math.Abs(fm-target) < 1e-8*math.Max(1, math.Abs(target)) {
			return mid, nil
		}
		if (fm-target)*(flo-target) <= 0 {
			hi = mid
			fhi = fm
		} else {
			lo = mid
			flo = fm
		}
	}
	return 0.5 * (lo + hi), nil
}
