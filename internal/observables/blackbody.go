package observables

import (
	"math"

	"github.com/lisdanil/freddi/internal/units"
)

// planckNu is the Planck spectral radiance B_nu(T) per steradian,
// erg s^-1 cm^-2 Hz^-1 sr^-1.
func planckNu(nu, t float64) float64 {
	if t <= 0 {
		return 0
	}
	x := units.PlanckConstant * nu / (units.BoltzmannConstant * t)
	if x > 700 {
		return 0
	}
	return 2 * units.PlanckConstant * nu * nu * nu / (units.SpeedOfLight * units.SpeedOfLight) / (math.Exp(x) - 1)
}

// planckLambda is the Planck spectral radiance per unit wavelength,
// erg s^-1 cm^-2 cm^-1 sr^-1.
func planckLambda(lambda, t float64) float64 {
	if t <= 0 || lambda <= 0 {
		return 0
	}
	x := units.PlanckConstant * units.SpeedOfLight / (lambda * units.BoltzmannConstant * t)
	if x > 700 {
		return 0
	}
	return 2 * units.PlanckConstant * units.SpeedOfLight * units.SpeedOfLight / math.Pow(lambda, 5) / (math.Exp(x) - 1)
}

// simpson integrates f over [a,b] with n sub-intervals (n made even).
func simpson(f func(float64) float64, a, b float64, n int) float64 {
	if n%2 != 0 {
		n++
	}
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		x := a + float64(i)*h
		if i%2 == 0 {
			sum += 2 * f(x)
		} else {
			sum += 4 * f(x)
		}
	}
	return sum * h / 3
}
