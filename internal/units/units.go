// Package units holds the immutable physical-constant table consulted
// throughout the evolver. Constants are CGS unless noted.
package units

const (
	// GravitationalConstant is G, cm^3 g^-1 s^-2.
	GravitationalConstant = 6.674e-8

	// SpeedOfLight is c, cm/s.
	SpeedOfLight = 2.99792458e10

	// StefanBoltzmann is sigma_SB, erg cm^-2 s^-1 K^-4.
	StefanBoltzmann = 5.670374419e-5

	// SolarMass is M_sun, g.
	SolarMass = 1.98892e33

	// Parsec in cm.
	Parsec = 3.0856775814913673e18

	// Day in seconds.
	Day = 86400.0

	// PlanckConstant is h, erg s.
	PlanckConstant = 6.62607015e-27

	// BoltzmannConstant is k_B, erg/K.
	BoltzmannConstant = 1.380649e-16
)

// KevToHertz converts a photon energy in keV to a frequency in Hz via E=h*nu.
func KevToHertz(kev float64) float64 {
	const ergPerKev = 1.602176634e-9
	return kev * ergPerKev / PlanckConstant
}

// Photometric band central wavelengths (cm) and zero-point fluxes
// (erg s^-1 cm^-2 Hz^-1), standard Johnson-Cousins UBVRI plus 2MASS J.
const (
	LambdaU = 0.36e-4
	LambdaB = 0.44e-4
	LambdaV = 0.55e-4
	LambdaR = 0.64e-4
	LambdaI = 0.79e-4
	LambdaJ = 1.26e-4

	ZeroPointU = 1.81e-20
	ZeroPointB = 4.26e-20
	ZeroPointV = 3.64e-20
	ZeroPointR = 3.08e-20
	ZeroPointI = 2.55e-20
	ZeroPointJ = 1.60e-20
)
