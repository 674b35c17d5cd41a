// Package grid builds the time-invariant radial mesh the evolver
// advances F(h,t) on, sized and spaced by the Nx and gridscale
// parameters.
package grid

import (
	"fmt"
	"math"
)

// Scale selects how grid points are spaced in h between h_in and h_out.
type Scale string

const (
	Log    Scale = "log"
	Linear Scale = "linear"
)

// Grid is the fixed mesh in the specific-angular-momentum coordinate h,
// with its projection to physical radius R_i = h_i^2/GM. The grid never
// changes after construction; only the active window [first,last] that
// DiskState tracks over it migrates.
type Grid struct {
	H  []float64
	R  []float64
	GM float64
}

// New builds an Nx-point mesh between hIn and hOut (both > 0, hIn < hOut)
// spaced per scale.
func New(hIn, hOut float64, nx int, scale Scale, gm float64) (*Grid, error) {
	if nx < 3 {
		return nil, fmt.Errorf("grid: Nx must be >= 3, got %d", nx)
	}
	if !(hIn > 0 && hOut > hIn) {
		return nil, fmt.Errorf("grid: require 0 < h_in < h_out, got h_in=%g h_out=%g", hIn, hOut)
	}

	h := make([]float64, nx)
	switch scale {
	case Log:
		logIn, logOut := math.Log(hIn), math.Log(hOut)
		step := (logOut - logIn) / float64(nx-1)
		for i := range h {
			h[i] = math.Exp(logIn + step*float64(i))
		}
	case Linear:
		step := (hOut - hIn) / float64(nx-1)
		for i := range h {
			h[i] = hIn + step*float64(i)
		}
	default:
		return nil, fmt.Errorf("grid: unknown gridscale %q", scale)
	}
	// Guard against roundoff pushing the endpoints off their exact values.
	h[0] = hIn
	h[nx-1] = hOut

	r := make([]float64, nx)
	for i, hi := range h {
		r[i] = hi * hi / gm
	}

	return &Grid{H: h, R: r, GM: gm}, nil
}

// Len returns the number of mesh points.
func (g *Grid) Len() int { return len(g.H) }
