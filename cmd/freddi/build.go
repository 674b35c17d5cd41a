package main

import (
	"fmt"
	"math"

	"github.com/lisdanil/freddi/internal/boundary"
	"github.com/lisdanil/freddi/internal/config"
	"github.com/lisdanil/freddi/internal/diffusion"
	"github.com/lisdanil/freddi/internal/diskstate"
	"github.com/lisdanil/freddi/internal/evolve"
	"github.com/lisdanil/freddi/internal/geometry"
	"github.com/lisdanil/freddi/internal/grid"
	"github.com/lisdanil/freddi/internal/initcond"
	"github.com/lisdanil/freddi/internal/metrics"
	"github.com/lisdanil/freddi/internal/nstar"
	"github.com/lisdanil/freddi/internal/observables"
	"github.com/lisdanil/freddi/internal/registry"
	"github.com/lisdanil/freddi/internal/units"
)

// buildLoop wires a validated Config into a ready-to-run evolve.Loop,
// following the data flow geometry -> grid -> opacity -> initial
// condition -> diskstate -> diffusion/boundary/observables configs ->
// evolve.Loop.
func buildLoop(cfg *config.Config, reg *registry.Registry) (*evolve.Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	binParams := geometry.Params{
		Alpha: cfg.Alpha,
		Mx:    cfg.MxGrams(),
		Kerr:  cfg.Kerr,
		Period: cfg.PeriodSeconds(),
		Mopt:  cfg.MoptGrams(),
		Topt:  0,
	}
	if cfg.Rin > 0 {
		binParams.Rin = &cfg.Rin
	}
	if cfg.Rout > 0 {
		binParams.Rout = &cfg.Rout
	}
	if cfg.Risco > 0 {
		binParams.Risco = &cfg.Risco
	}
	if cfg.Ropt > 0 {
		binParams.Ropt = &cfg.Ropt
	}
	bin := geometry.NewBinary(binParams)

	law, err := reg.Opacity(cfg.Opacity)
	if err != nil {
		return nil, &diskstate.ConfigError{Field: "opacity", Message: err.Error()}
	}

	hIn := bin.H(bin.Rin)
	hOut := bin.H(bin.Rout)
	g, err := grid.New(hIn, hOut, cfg.Nx, grid.Scale(cfg.GridScale), bin.GM())
	if err != nil {
		return nil, &diskstate.ConfigError{Field: "grid", Message: err.Error()}
	}

	icFunc, err := reg.InitialCondition(cfg.InitialCond)
	if err != nil {
		return nil, &diskstate.ConfigError{Field: "initialcond", Message: err.Error()}
	}
	f0, err := icFunc(g, law, cfg.Alpha, initcond.Params{
		F0:         cfg.F0,
		Mdot0:      cfg.Mdot0,
		Mdisk0:     cfg.Mdisk0,
		PowerOrder: cfg.PowerOrder,
		GaussMu:    cfg.GaussMu,
		GaussSigma: cfg.GaussSigma,
	})
	if err != nil {
		return nil, fmt.Errorf("building initial condition: %w", err)
	}

	ds := diskstate.New(g, law, cfg.Alpha, f0)

	var nsCfg *nstar.Config
	var nsDerived *nstar.Derived
	if cfg.NS != nil {
		nc := nstar.Config{
			Freqx:         cfg.NS.Freqx,
			Rx:            cfg.NS.Rx,
			Bx:            cfg.NS.Bx,
			HotspotArea:   cfg.NS.HotspotArea,
			EpsilonAlfven: cfg.NS.EpsilonAlfven,
			InverseBeta:   cfg.NS.InverseBeta,
			Rdead:         cfg.NS.Rdead,
			FpType:        cfg.NS.FpType,
			FpParams:      cfg.NS.FpParams,
			Mx:            cfg.MxGrams(),
		}
		derived, err := nstar.NewDerived(nc)
		if err != nil {
			return nil, &diskstate.ConfigError{Field: "ns", Message: err.Error()}
		}
		nsCfg, nsDerived = &nc, &derived
	}

	eta := 1.0
	if bin.Rin > 0 {
		eta = bin.GM() / (bin.Rin * units.SpeedOfLight * units.SpeedOfLight)
	}

	obsCfg := observables.Config{
		ColourFactor:    cfg.ColourFactor,
		Cirr:            cfg.Cirr,
		Irrindex:        cfg.Irrindex,
		AngularDistDisk: observables.AngularDist(cfg.AngularDistDisk),
		Emin:            cfg.Emin,
		Emax:            cfg.Emax,
		Inclination:     cfg.Inclination * math.Pi / 180,
		Distance:        cfg.Distance,
		Mx:              cfg.MxGrams(),
		Eta:             eta,
	}

	outerCfg := boundary.OuterConfig{
		Thot:         cfg.Thot,
		Tirr2Tvishot: cfg.Tirr2Tvishot,
		BoundCond:    boundary.BoundCond(cfg.BoundCond),
		Mx:           cfg.MxGrams(),
		Alpha:        cfg.Alpha,
	}

	observables.Update(ds, obsCfg, ds.MdotIn())

	loop := evolve.New(evolve.Config{
		DiskState: ds,
		Diffusion: diffusion.Config{Eps: cfg.Eps, MaxIter: cfg.MaxIter},
		Obs:       obsCfg,
		Outer:     outerCfg,
		NS:        nsCfg,
		NSD:       nsDerived,
		MdotOut:   cfg.MdotOut,
		FIn:       0,
		FullData:  cfg.FullData,
	})

	loop.AddMetric(metrics.NewMassConservation())
	loop.AddMetric(metrics.NewPeakAccretionRate())

	return loop, nil
}
