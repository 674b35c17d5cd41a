// Package observables fills the derived-temperature and
// irradiation-flux vectors of a diskstate.State and computes integral
// quantities: X-ray luminosity and broadband magnitudes. It is kept
// separate from internal/diskstate to avoid an import cycle: diskstate
// owns the vector storage, observables owns the physics that fills it.
package observables

import (
	"math"

	"github.com/lisdanil/freddi/internal/diskstate"
	"github.com/lisdanil/freddi/internal/units"
)

// AngularDist selects the irradiation flux's angular dependence.
type AngularDist string

const (
	Plane     AngularDist = "plane"
	Isotropic AngularDist = "isotropic"
)

// Config bundles the irradiation and spectral parameters that Update
// and the integral quantities below need but diskstate.State does not
// carry.
type Config struct {
	ColourFactor    float64
	Cirr            float64
	Irrindex        float64
	AngularDistDisk AngularDist
	Emin, Emax      float64 // keV
	Inclination     float64 // radians
	Distance        float64 // cm

	Mx  float64 // compact-object mass, g
	Eta float64 // radiative efficiency GM/(Rin*c^2)
}

// Update recomputes TphVis, TphX, Tirr, Cirr, Qx and Tph over
// [ds.First, ds.Last], zeroing them elsewhere. Must be called after
// ds.Recompute() (which fills W/Sigma/Height) and after the current
// step's Mdot_in is known.
func Update(ds *diskstate.State, cfg Config, mdotIn float64) {
	g := ds.Grid
	rin := g.R[ds.First]
	for i := range ds.F {
		if i < ds.First || i > ds.Last {
			ds.TphVis[i], ds.TphX[i], ds.Tirr[i], ds.Cirr[i], ds.Qx[i], ds.Tph[i] = 0, 0, 0, 0, 0, 0
			continue
		}
		h := g.H[i]
		r := g.R[i]

		tphVis := tphVisAt(g.GM, h, ds.F[i])
		ds.TphVis[i] = tphVis

		tphX := cfg.ColourFactor * pageThorneTemperature(r, rin, cfg.Mx, mdotIn, cfg.Eta)
		ds.TphX[i] = tphX

		hOverR := 0.0
		if r > 0 {
			hOverR = ds.Height[i] / r
		}
		cirr := irradiationCoefficient(cfg, hOverR)
		ds.Cirr[i] = cirr

		qx := irradiationFlux(cirr, cfg.Eta, mdotIn, r)
		ds.Qx[i] = qx
		ds.Tirr[i] = math.Pow(qx/units.StefanBoltzmann, 0.25)

		ds.Tph[i] = math.Pow(math.Pow(tphVis, 4)+qx/units.StefanBoltzmann, 0.25)
	}
}

// tphVisAt implements Tph_vis = (GM/h^3.5 * 0.75*F/sigma_SB)^(1/4).
func tphVisAt(gm, h, f float64) float64 {
	if f < 0 {
		f = 0
	}
	val := gm / math.Pow(h, 3.5) * 0.75 * f / units.StefanBoltzmann
	if val < 0 {
		val = 0
	}
	return math.Pow(val, 0.25)
}

// pageThorneTemperature is a Page-Thorne-style effective X-ray
// photospheric temperature profile, scaled so T -> 0 at the inner edge
// and decaying as R^-3/4 further out; the exact Page & Thorne (1974)
// relativistic correction factor is not pinned by any retrievable
// source, so the no-torque-boundary Newtonian limit is used here as a
// documented approximation.
func pageThorneTemperature(r, rin, mx, mdotIn, eta float64) float64 {
	if r <= 0 || mdotIn <= 0 {
		return 0
	}
	gm := units.GravitationalConstant * mx
	boundaryTerm := 1 - math.Sqrt(rin/r)
	if boundaryTerm < 0 {
		boundaryTerm = 0
	}
	flux := 3 * gm * mdotIn / (8 * math.Pi * units.StefanBoltzmann * r * r * r) * boundaryTerm
	if flux < 0 {
		flux = 0
	}
	return math.Pow(flux, 0.25)
}

// irradiationCoefficient returns Cirr = C0 * (H/R)^irrindex, with C0
// halved in the isotropic case to account for the 2pi vs 4pi solid
// angle difference against the plane-parallel convention.
func irradiationCoefficient(cfg Config, hOverR float64) float64 {
	c0 := cfg.Cirr
	if cfg.AngularDistDisk == Isotropic {
		c0 *= 0.5
	}
	if hOverR <= 0 {
		if cfg.Irrindex == 0 {
			return c0
		}
		return 0
	}
	return c0 * math.Pow(hOverR, cfg.Irrindex)
}

// irradiationFlux returns Qx = Cirr * eta * c^2 * Mdot_in / (4*pi*R^2).
func irradiationFlux(cirr, eta, mdotIn, r float64) float64 {
	if r <= 0 || mdotIn <= 0 {
		return 0
	}
	return cirr * eta * units.SpeedOfLight * units.SpeedOfLight * mdotIn / (4 * math.Pi * r * r)
}

// Lx integrates the blackbody flux at TphX over [Emin,Emax] (keV) and
// the active radial window, via Simpson's rule with N=100 sub-intervals.
func Lx(ds *diskstate.State, cfg Config) float64 {
	if ds.Last <= ds.First {
		return 0
	}
	numin := units.KevToHertz(cfg.Emin)
	numax := units.KevToHertz(cfg.Emax)

	integrand := func(r float64) float64 {
		t := tphXAtRadius(ds, r)
		flux := simpson(func(nu float64) float64 { return planckNu(nu, t) }, numin, numax, 100)
		return math.Pi * flux * 4 * math.Pi * r
	}
	total := simpson(integrand, ds.Grid.R[ds.First], ds.Grid.R[ds.Last], 100)
	if cfg.ColourFactor == 0 {
		return total
	}
	return total / math.Pow(cfg.ColourFactor, 4)
}

func tphXAtRadius(ds *diskstate.State, r float64) float64 {
	g := ds.Grid
	for i := ds.First; i < ds.Last; i++ {
		if g.R[i] <= r && r <= g.R[i+1] {
			dr := g.R[i+1] - g.R[i]
			if dr == 0 {
				return ds.TphX[i]
			}
			frac := (r - g.R[i]) / dr
			return ds.TphX[i] + frac*(ds.TphX[i+1]-ds.TphX[i])
		}
	}
	return ds.TphX[ds.Last]
}

func tphAtRadius(ds *diskstate.State, r float64) float64 {
	g := ds.Grid
	for i := ds.First; i < ds.Last; i++ {
		if g.R[i] <= r && r <= g.R[i+1] {
			dr := g.R[i+1] - g.R[i]
			if dr == 0 {
				return ds.Tph[i]
			}
			frac := (r - g.R[i]) / dr
			return ds.Tph[i] + frac*(ds.Tph[i+1]-ds.Tph[i])
		}
	}
	return ds.Tph[ds.Last]
}

// Band identifies one of the standard Johnson-Cousins + 2MASS-J
// photometric bands.
type Band string

const (
	BandU Band = "U"
	BandB Band = "B"
	BandV Band = "V"
	BandR Band = "R"
	BandI Band = "I"
	BandJ Band = "J"
)

func bandLambdaZeroPoint(b Band) (lambda, zeroPoint float64, err error) {
	switch b {
	case BandU:
		return units.LambdaU, units.ZeroPointU, nil
	case BandB:
		return units.LambdaB, units.ZeroPointB, nil
	case BandV:
		return units.LambdaV, units.ZeroPointV, nil
	case BandR:
		return units.LambdaR, units.ZeroPointR, nil
	case BandI:
		return units.LambdaI, units.ZeroPointI, nil
	case BandJ:
		return units.LambdaJ, units.ZeroPointJ, nil
	default:
		return 0, 0, errUnknownBand(b)
	}
}

type errUnknownBand Band

func (e errUnknownBand) Error() string { return "observables: unknown photometric band " + string(e) }

// Magnitude computes m_lambda = -2.5*log10( integral(B_lambda(Tph) *
// 2*pi*R dR) * cos(i) / D^2 * lambda^2/c / F0_nu ) over the active radial
// window: the per-wavelength flux is converted to a per-frequency flux
// before dividing by the band's per-Hz zero point.
func Magnitude(ds *diskstate.State, cfg Config, b Band) (float64, error) {
	lambda, zp, err := bandLambdaZeroPoint(b)
	if err != nil {
		return 0, err
	}
	if ds.Last <= ds.First || cfg.Distance <= 0 {
		return math.Inf(1), nil
	}
	integrand := func(r float64) float64 {
		t := tphAtRadius(ds, r)
		return planckLambda(lambda, t) * 2 * math.Pi * r
	}
	flux := simpson(integrand, ds.Grid.R[ds.First], ds.Grid.R[ds.Last], 100)
	flux *= math.Cos(cfg.Inclination) / (cfg.Distance * cfg.Distance)
	flux *= lambda * lambda / units.SpeedOfLight
	if flux <= 0 {
		return math.Inf(1), nil
	}
	return -2.5 * math.Log10(flux/zp), nil
}
