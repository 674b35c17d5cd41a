// Package boundary implements the boundary-tracking state machine: the
// outer cold-front retreat with rise hysteresis, and the inner
// magnetospheric truncation for the neutron-star variant. Grounded on
// FreddiEvolution::truncateOuterRadius
// (original_source/cpp/src/freddi_evolution.cpp).
package boundary

import (
	"github.com/lisdanil/freddi/internal/diskstate"
	"github.com/lisdanil/freddi/internal/nstar"
)

// BoundCond selects the outer retreat criterion used outside the
// irradiation-dominated branch.
type BoundCond string

const (
	Teff BoundCond = "Teff"
	Tirr BoundCond = "Tirr"
)

// OuterConfig bundles the outer-boundary retreat parameters.
type OuterConfig struct {
	Thot         float64 // K; <=0 disables retreat entirely
	Tirr2Tvishot float64 // irradiation-dominated branch threshold
	BoundCond    BoundCond
	Mx           float64 // compact-object mass, g, for Sigma_minus(R)
	Alpha        float64
}

// Outer applies the outer-boundary retreat rule to ds in place,
// possibly shrinking ds.Last. Returns diskstate.ErrDiskExhausted if the
// walk reaches ds.First.
func Outer(ds *diskstate.State, cfg OuterConfig) error {
	if cfg.Thot <= 0 {
		return nil
	}
	mdotIn := ds.MdotIn()
	if mdotIn > ds.MdotInPrev {
		return nil
	}

	last := ds.Last
	first := ds.First
	irradiationDominated := ds.Tirr[last]/ds.TphVis[last] >= cfg.Tirr2Tvishot

	ii := last + 1
	retreat := func(i int) bool {
		if irradiationDominated {
			sigmaMinus := ds.Opacity.SigmaMinus(ds.Grid.R[i], cfg.Alpha, cfg.Mx)
			return ds.Sigma[i] < sigmaMinus
		}
		switch cfg.BoundCond {
		case Teff:
			return ds.Tph[i] < cfg.Thot
		case Tirr:
			return ds.Tirr[i] < cfg.Thot
		default:
			return false
		}
	}

	for {
		ii--
		if ii <= first {
			return diskstate.ErrDiskExhausted
		}
		if !retreat(ii) {
			break
		}
	}

	if ii <= last-1 {
		ds.Last = ii
	}
	return nil
}

// InnerResult reports the effective accretion fraction applied this
// step, for EvolutionLoop to scale the observed Mdot_in by.
type InnerResult struct {
	Fp float64
	Rm float64
}

// Inner advances ds.First to the smallest grid index whose radius is
// >= the magnetospheric radius R_m, and returns the propeller fraction
// f_p to apply to the raw inner accretion rate. It is a no-op
// (Fp=1, Rm=0) when ns is nil, i.e. the accretor is not a neutron star.
func Inner(ds *diskstate.State, ns *nstar.Config, nsd *nstar.Derived) (InnerResult, error) {
	if ns == nil {
		return InnerResult{Fp: 1}, nil
	}
	mdotRaw := ds.MdotIn()
	if mdotRaw < 0 {
		mdotRaw = 0
	}
	rm := nstar.MagnetosphericRadius(*ns, *nsd, mdotRaw)

	r := ds.Grid.R
	if rm > r[ds.First] {
		newFirst := ds.First
		for newFirst < ds.Last && r[newFirst] < rm {
			newFirst++
		}
		ds.First = newFirst
	}

	fp, err := nstar.Fp(*ns, *nsd, rm)
	if err != nil {
		return InnerResult{}, err
	}
	return InnerResult{Fp: fp, Rm: rm}, nil
}
