// Package geometry derives the binary/compact-object radii that bound the
// accretion disk grid: the innermost stable circular orbit and the
// Roche-lobe radii of both binary components.
//
// Grounded on _examples/original_source/cpp/include/arguments.hpp
// (BlackHoleFunctions, BinaryFunctions, BasicDiskBinaryArguments) and
// cpp/src/geometry.cpp.
package geometry

import (
	"math"

	"github.com/lisdanil/freddi/internal/units"
)

// KerrISCORadius returns the innermost stable circular orbit radius (cm)
// for a black hole of mass mx (grams) and dimensionless spin kerr
// (-1..1, prograde positive), via the Bardeen-Press-Teukolsky formula.
func KerrISCORadius(mx, kerr float64) float64 {
	rg := units.GravitationalConstant * mx / (units.SpeedOfLight * units.SpeedOfLight)
	return rg * kerrISCOInRg(kerr)
}

func kerrISCOInRg(a float64) float64 {
	z1 := 1 + math.Cbrt((1-a*a))*(math.Cbrt(1+a)+math.Cbrt(1-a))
	z2 := math.Sqrt(3*a*a + z1*z1)
	sign := 1.0
	if a < 0 {
		sign = -1.0
	}
	return 3 + z2 - sign*math.Sqrt((3-z1)*(3+z1+2*z2))
}

// RocheLobeVolumeRadius returns the radius (cm) of the sphere whose volume
// equals that of the Roche lobe of the component of mass mass1 orbiting a
// companion of mass mass2 on a circular orbit of given period (s), via the
// Eggleton (1983) approximation.
func RocheLobeVolumeRadius(mass1, mass2, period float64) float64 {
	a := semiaxis(mass1+mass2, period)
	return rocheLobeVolumeRadiusSemiaxis(mass1/mass2) * a
}

func semiaxis(totalMass, period float64) float64 {
	return math.Cbrt(units.GravitationalConstant * totalMass * period * period / (4 * math.Pi * math.Pi))
}

// rocheLobeVolumeRadiusSemiaxis is the Eggleton (1983) approximation for
// R_L/a as a function of the mass ratio q = mass1/mass2.
func rocheLobeVolumeRadiusSemiaxis(q float64) float64 {
	q23 := math.Cbrt(q * q)
	return 0.49 * q23 / (0.6*q23 + math.Log(1+math.Cbrt(q)))
}

// Binary holds the immutable geometric parameters of the compact-object
// binary and its accretion disk radial range.
//
// Grounded on BasicDiskBinaryArguments.
type Binary struct {
	Alpha  float64 // Shakura-Sunyaev viscosity parameter
	Mx     float64 // compact-object mass, g
	Kerr   float64 // dimensionless spin
	Period float64 // orbital period, s
	Mopt   float64 // companion mass, g
	Ropt   float64 // companion radius, cm
	Topt   float64 // companion effective temperature, K
	Rin    float64 // inner disk radius, cm
	Rout   float64 // outer disk radius, cm
	Risco  float64 // ISCO radius, cm
}

// Params bundles the overridable inputs to NewBinary; a zero value for any
// override means "derive the default".
type Params struct {
	Alpha         float64
	Mx, Kerr      float64
	Period        float64
	Mopt          float64
	Ropt          *float64
	Topt          float64
	Rin           *float64
	Rout          *float64
	Risco         *float64
}

// NewBinary constructs a Binary, deriving any unset radius from the
// Shakura-Sunyaev/Eggleton/Bardeen-Press-Teukolsky defaults.
func NewBinary(p Params) *Binary {
	risco := KerrISCORadius(p.Mx, p.Kerr)
	if p.Risco != nil {
		risco = *p.Risco
	}

	rin := risco
	if p.Rin != nil {
		rin = *p.Rin
	}

	// 0.9 factor: approximation to r_max from Paczynski (1977), matching
	// the convention of the reference implementation.
	rout := 0.9 * RocheLobeVolumeRadius(p.Mx, p.Mopt, p.Period)
	if p.Rout != nil {
		rout = *p.Rout
	}

	ropt := RocheLobeVolumeRadius(p.Mopt, p.Mx, p.Period)
	if p.Ropt != nil {
		ropt = *p.Ropt
	}

	return &Binary{
		Alpha:  p.Alpha,
		Mx:     p.Mx,
		Kerr:   p.Kerr,
		Period: p.Period,
		Mopt:   p.Mopt,
		Ropt:   ropt,
		Topt:   p.Topt,
		Rin:    rin,
		Rout:   rout,
		Risco:  risco,
	}
}

// GM returns G*Mx, the gravitational parameter of the compact object.
func (b *Binary) GM() float64 {
	return units.GravitationalConstant * b.Mx
}

// H converts a physical radius r (cm) to the specific angular momentum
// coordinate h = sqrt(GM*r).
func (b *Binary) H(r float64) float64 {
	return math.Sqrt(b.GM() * r)
}

// Omega returns the Keplerian angular velocity at radius r (cm), rad/s.
func (b *Binary) Omega(r float64) float64 {
	return math.Sqrt(b.GM() / (r * r * r))
}
