package config

// Presets are named scenario configurations, each a complete override
// over Default(), keyed by a flat scenario name since this evolver has
// a single model rather than a family of models.
var Presets = map[string]*Config{
	"bh-outburst": preset(func(c *Config) {
		c.Mx = 10
		c.Kerr = 0
		c.Mopt = 0.5
		c.Period = 0.3
		c.Alpha = 0.25
		c.InitialCond = "powerF"
		c.Mdisk0 = 1e24
		c.PowerOrder = 1
		c.BoundCond = "Teff"
		c.Thot = 1e4
		c.Time = 60
		c.Tau = 0.25
	}),
	"kerr-isco": preset(func(c *Config) {
		c.Mx = 10
		c.Kerr = 0.9
		c.Mopt = 0.5
		c.Period = 0.3
		c.F0 = 1e37
		c.InitialCond = "quasistat"
		c.Time = 10
		c.Tau = 0.1
	}),
	"ns-propeller": preset(func(c *Config) {
		c.Mx = 1.4
		c.Mopt = 0.3
		c.Period = 0.2
		c.F0 = 1e36
		c.InitialCond = "powerF"
		c.PowerOrder = 1
		c.Time = 30
		c.Tau = 0.1
		c.NS = &NSConfig{
			Nsprop:        "dummy",
			Freqx:         300,
			Rx:            1e6,
			Bx:            1e9,
			HotspotArea:   1,
			EpsilonAlfven: 1,
			InverseBeta:   0,
			Rdead:         0,
			FpType:        "corotation-block",
			FpParams:      map[string]float64{"k": 5},
		}
	}),
	"tirr-retreat": preset(func(c *Config) {
		c.Mx = 5
		c.Mopt = 0.5
		c.Period = 0.4
		c.F0 = 5e36
		c.InitialCond = "powerF"
		c.PowerOrder = 1
		c.BoundCond = "Tirr"
		c.Thot = 1e4
		c.Tirr2Tvishot = 1.0
		c.Cirr = 5e-4
		c.Irrindex = 0
		c.Time = 90
		c.Tau = 0.5
	}),
	"wind": preset(func(c *Config) {
		c.Mx = 8
		c.Mopt = 1.0
		c.Period = 0.5
		c.Mdot0 = 1e18
		c.InitialCond = "powerF"
		c.PowerOrder = 1
		c.Time = 120
		c.Tau = 1
		c.MdotOut = -0.5 * c.Mdot0
	}),
	"tau-convergence": preset(func(c *Config) {
		c.Mx = 10
		c.Mopt = 0.5
		c.Period = 0.3
		c.F0 = 1e37
		c.InitialCond = "quasistat"
		c.Time = 5
		c.Tau = 0.02
	}),
}

func preset(mutate func(c *Config)) *Config {
	c := Default()
	mutate(c)
	return c
}

// GetPreset looks up a scenario by name, returning a deep-enough copy
// so callers (run's flag overrides, compare's per-preset loop) never
// mutate the shared Presets entry.
func GetPreset(name string) (*Config, bool) {
	c, ok := Presets[name]
	if !ok {
		return nil, false
	}
	clone := *c
	if c.NS != nil {
		ns := *c.NS
		if c.NS.FpParams != nil {
			ns.FpParams = make(map[string]float64, len(c.NS.FpParams))
			for k, v := range c.NS.FpParams {
				ns.FpParams[k] = v
			}
		}
		clone.NS = &ns
	}
	return &clone, true
}

// ListPresets returns the registered scenario names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
