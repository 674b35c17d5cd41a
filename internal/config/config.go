// Package config loads and defaults the evolver's run parameters from
// an ini file, via gopkg.in/ini.v1, matching this domain's own on-disk
// naming convention: the config file is named freddi.ini.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/lisdanil/freddi/internal/diskstate"
	"github.com/lisdanil/freddi/internal/grid"
	"github.com/lisdanil/freddi/internal/observables"
	"github.com/lisdanil/freddi/internal/units"
)

// Defaults grounded on the reference CalculationArguments/
// DiskStructureArguments/FluxArguments defaults.
const (
	DefaultAlpha        = 0.25
	DefaultOpacity       = "Kramers"
	DefaultInitialCond   = "powerF"
	DefaultBoundCond     = "Teff"
	DefaultTirr2Tvishot  = 1e30 // stands in for "infinity": irradiation branch never wins by default
	DefaultColourFactor  = 1.7
	DefaultEmin          = 1.0  // keV
	DefaultEmax          = 12.0 // keV
	DefaultNx            = 1000
	DefaultGridScale     = grid.Log
	DefaultEps           = 1e-6
	DefaultMaxIter       = 100
)

// Config is the complete, flat run configuration: the base disk/binary
// parameters plus an optional neutron-star extension, composed rather
// than inherited.
type Config struct {
	Alpha  float64 `ini:"alpha"`
	Mx     float64 `ini:"Mx"`     // M_sun
	Kerr   float64 `ini:"kerr"`
	Mopt   float64 `ini:"Mopt"`   // M_sun
	Period float64 `ini:"period"` // days

	Rin   float64 `ini:"rin"`   // cm, 0 means derive
	Rout  float64 `ini:"rout"`  // cm, 0 means derive
	Risco float64 `ini:"risco"` // cm, 0 means derive
	Ropt  float64 `ini:"Ropt"`  // cm, 0 means derive

	Opacity     string  `ini:"opacity"`
	InitialCond string  `ini:"initialcond"`
	F0          float64 `ini:"F0"`
	Mdisk0      float64 `ini:"Mdisk0"`
	Mdot0       float64 `ini:"Mdot0"`
	PowerOrder  float64 `ini:"powerorder"`
	GaussMu     float64 `ini:"gaussmu"`
	GaussSigma  float64 `ini:"gausssigma"`

	BoundCond    string  `ini:"boundcond"`
	Thot         float64 `ini:"Thot"`
	Tirr2Tvishot float64 `ini:"Tirr2Tvishot"`

	Cirr            float64 `ini:"Cirr"`
	Irrindex        float64 `ini:"irrindex"`
	AngularDistDisk string  `ini:"angular_dist_disk"`

	ColourFactor float64 `ini:"colourfactor"`
	Emin         float64 `ini:"emin"`
	Emax         float64 `ini:"emax"`
	Inclination  float64 `ini:"inclination"` // degrees
	Distance     float64 `ini:"distance"`    // cm

	Time      float64 `ini:"time"` // days
	Tau       float64 `ini:"tau"`  // days
	Nx        int     `ini:"Nx"`
	GridScale string  `ini:"gridscale"`

	// MdotOut is the outer boundary's Neumann outflow rate, cgs, <= 0;
	// 0 disables outer outflow.
	MdotOut float64 `ini:"Mdotout"`

	Eps     float64 `ini:"eps"`
	MaxIter int     `ini:"max_iter"`

	FullData bool `ini:"fulldata"`

	NS *NSConfig `ini:"-"`
}

// NSConfig is the optional neutron-star extension, kept as a
// nil-able pointer on Config rather than a separate subtype hierarchy.
type NSConfig struct {
	Nsprop        string            `ini:"nsprop"`
	Freqx         float64           `ini:"freqx"`
	Rx            float64           `ini:"Rx"`
	Bx            float64           `ini:"Bx"`
	HotspotArea   float64           `ini:"hotspotarea"`
	EpsilonAlfven float64           `ini:"epsilonAlfven"`
	InverseBeta   float64           `ini:"inversebeta"`
	Rdead         float64           `ini:"Rdead"`
	FpType        string            `ini:"fptype"`
	FpParams      map[string]float64 `ini:"-"`
}

// Default returns the reference-grounded default configuration.
func Default() *Config {
	return &Config{
		Alpha:           DefaultAlpha,
		Opacity:         DefaultOpacity,
		InitialCond:     DefaultInitialCond,
		PowerOrder:      1,
		GaussMu:         0.5,
		GaussSigma:      0.1,
		BoundCond:       DefaultBoundCond,
		Tirr2Tvishot:    DefaultTirr2Tvishot,
		AngularDistDisk: string(observables.Plane),
		ColourFactor:    DefaultColourFactor,
		Emin:            DefaultEmin,
		Emax:            DefaultEmax,
		Nx:              DefaultNx,
		GridScale:       string(DefaultGridScale),
		Eps:             DefaultEps,
		MaxIter:         DefaultMaxIter,
	}
}

// Load reads path (an ini file) over the defaults. When path is empty
// it uses the first of ./freddi.ini, $HOME/freddi.ini and
// /etc/freddi.ini that exists. A path that does not exist yields the
// defaults without an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = searchPath()
		if path == "" {
			return cfg, nil
		}
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: loading %s: %w", path, err)
	}
	if err := f.Section("").MapTo(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if sec, err := f.GetSection("ns"); err == nil {
		ns := &NSConfig{}
		if err := sec.MapTo(ns); err != nil {
			return nil, fmt.Errorf("config: parsing [ns] section of %s: %w", path, err)
		}
		cfg.NS = ns
	}
	return cfg, nil
}

// Save writes cfg to path as an ini file.
func Save(path string, cfg *Config) error {
	f := ini.Empty()
	if err := f.Section("").ReflectFrom(cfg); err != nil {
		return err
	}
	if cfg.NS != nil {
		sec, err := f.NewSection("ns")
		if err != nil {
			return err
		}
		if err := sec.ReflectFrom(cfg.NS); err != nil {
			return err
		}
	}
	return f.SaveTo(path)
}

func searchPath() string {
	candidates := []string{"freddi.ini"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, "freddi.ini"))
	}
	candidates = append(candidates, "/etc/freddi.ini")
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Validate reports a *diskstate.ConfigError for any missing required
// field or contradictory combination, run before any derived geometry
// is constructed.
func (c *Config) Validate() error {
	if c.Mx <= 0 {
		return &diskstate.ConfigError{Field: "Mx", Message: "compact-object mass is required and must be > 0"}
	}
	if c.Mopt <= 0 {
		return &diskstate.ConfigError{Field: "Mopt", Message: "donor mass is required and must be > 0"}
	}
	if c.Period <= 0 {
		return &diskstate.ConfigError{Field: "period", Message: "binary period is required and must be > 0"}
	}
	if c.Time <= 0 {
		return &diskstate.ConfigError{Field: "time", Message: "integration time is required and must be > 0"}
	}
	if c.Tau <= 0 {
		return &diskstate.ConfigError{Field: "tau", Message: "substep tau is required and must be > 0"}
	}
	if c.Nx < 3 {
		return &diskstate.ConfigError{Field: "Nx", Message: "Nx must be >= 3"}
	}
	if c.GridScale != string(grid.Log) && c.GridScale != string(grid.Linear) {
		return &diskstate.ConfigError{Field: "gridscale", Message: "must be log or linear"}
	}
	if c.BoundCond != "Teff" && c.BoundCond != "Tirr" {
		return &diskstate.ConfigError{Field: "boundcond", Message: "must be Teff or Tirr"}
	}
	if c.AngularDistDisk != string(observables.Plane) && c.AngularDistDisk != string(observables.Isotropic) {
		return &diskstate.ConfigError{Field: "angular_dist_disk", Message: "must be plane or isotropic"}
	}
	noF0Target := c.F0 == 0 && c.Mdisk0 == 0 && c.Mdot0 == 0
	if noF0Target {
		return &diskstate.ConfigError{Field: "F0", Message: "one of F0, Mdisk0 or Mdot0 must be set"}
	}
	if c.NS != nil && c.NS.Freqx <= 0 {
		return &diskstate.ConfigError{Field: "ns.freqx", Message: "neutron-star spin frequency must be > 0"}
	}
	return nil
}

// MxGrams, MoptGrams, PeriodSeconds, TimeSeconds, TauSeconds convert
// the stored human-unit fields into the CGS quantities the evolver's
// internals consume.
func (c *Config) MxGrams() float64       { return c.Mx * units.SolarMass }
func (c *Config) MoptGrams() float64     { return c.Mopt * units.SolarMass }
func (c *Config) PeriodSeconds() float64 { return c.Period * units.Day }
func (c *Config) TimeSeconds() float64   { return c.Time * units.Day }
func (c *Config) TauSeconds() float64    { return c.Tau * units.Day }
