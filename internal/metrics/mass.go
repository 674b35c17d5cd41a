package metrics

import (
	"math"

	"github.com/lisdanil/freddi/internal/diskstate"
)

// MassConservation tracks the fractional drift of d/dt(disk mass) against
// 2*pi*(Mdot_in - Mdot_out) — the accreted term must carry the same
// 2*pi weighting as diskMass's R dR integral for the two to be
// comparable — and should hold within 1% absent wind losses.
type MassConservation struct {
	name         string
	initialMass  float64
	accreted     float64
	lastT        float64
	haveInitial  bool
	maxDrift     float64
}

func NewMassConservation() *MassConservation {
	return &MassConservation{name: "mass_conservation"}
}

func (m *MassConservation) Name() string { return m.name }

func (m *MassConservation) Observe(ds *diskstate.State, t float64) {
	mass := diskMass(ds)
	if !m.haveInitial {
		m.initialMass = mass
		m.lastT = t
		m.haveInitial = true
		return
	}
	dt := t - m.lastT
	m.lastT = t
	if dt > 0 {
		m.accreted += 2 * math.Pi * (ds.MdotIn() - ds.MdotOut) * dt
	}
	if m.initialMass == 0 {
		return
	}
	drift := math.Abs(mass+m.accreted-m.initialMass) / m.initialMass
	m.maxDrift = math.Max(m.maxDrift, drift)
}

func (m *MassConservation) Value() float64 { return m.maxDrift }

func (m *MassConservation) Reset() {
	m.initialMass, m.accreted, m.lastT, m.maxDrift = 0, 0, 0, 0
	m.haveInitial = false
}

// diskMass integrates 2*pi*R*Sigma dR over the active window via the
// trapezoidal rule.
func diskMass(ds *diskstate.State) float64 {
	g := ds.Grid
	total := 0.0
	for i := ds.First; i < ds.Last; i++ {
		r0, r1 := g.R[i], g.R[i+1]
		y0 := 2 * math.Pi * r0 * ds.Sigma[i]
		y1 := 2 * math.Pi * r1 * ds.Sigma[i+1]
		total += 0.5 * (y0 + y1) * (r1 - r0)
	}
	return total
}
