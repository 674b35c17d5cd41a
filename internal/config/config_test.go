package config

import "testing"

func TestDefaultIsValidOnceCoreFieldsAreSet(t *testing.T) {
	cfg := Default()
	cfg.Mx = 10
	cfg.Mopt = 0.5
	cfg.Period = 0.3
	cfg.F0 = 1e37
	cfg.Time = 10
	cfg.Tau = 0.1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config plus required fields to validate, got %v", err)
	}
}

func TestValidateRequiresF0Target(t *testing.T) {
	cfg := Default()
	cfg.Mx = 10
	cfg.Mopt = 0.5
	cfg.Period = 0.3
	cfg.Time = 10
	cfg.Tau = 0.1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when none of F0/Mdisk0/Mdot0 is set")
	}
}

func TestValidateRejectsMissingMx(t *testing.T) {
	cfg := Default()
	cfg.Mopt = 0.5
	cfg.Period = 0.3
	cfg.F0 = 1e37
	cfg.Time = 10
	cfg.Tau = 0.1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing Mx")
	}
}

func TestValidateRejectsBadGridScale(t *testing.T) {
	cfg := Default()
	cfg.Mx, cfg.Mopt, cfg.Period, cfg.F0, cfg.Time, cfg.Tau = 10, 0.5, 0.3, 1e37, 10, 0.1
	cfg.GridScale = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown gridscale")
	}
}

func TestValidateRejectsNSWithoutFreqx(t *testing.T) {
	cfg := Default()
	cfg.Mx, cfg.Mopt, cfg.Period, cfg.F0, cfg.Time, cfg.Tau = 10, 0.5, 0.3, 1e37, 10, 0.1
	cfg.NS = &NSConfig{Freqx: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for NS config with freqx <= 0")
	}
}

func TestUnitConversions(t *testing.T) {
	cfg := Default()
	cfg.Mx = 2
	cfg.Period = 1
	cfg.Time = 1
	cfg.Tau = 1
	if got := cfg.MxGrams(); got <= 0 {
		t.Errorf("expected positive MxGrams, got %g", got)
	}
	if got := cfg.PeriodSeconds(); got != 86400 {
		t.Errorf("expected PeriodSeconds(1 day) = 86400, got %g", got)
	}
	if got := cfg.TimeSeconds(); got != 86400 {
		t.Errorf("expected TimeSeconds(1 day) = 86400, got %g", got)
	}
	if got := cfg.TauSeconds(); got != 86400 {
		t.Errorf("expected TauSeconds(1 day) = 86400, got %g", got)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/to/freddi.ini")
	if err != nil {
		t.Fatalf("expected no error for a missing config file, got %v", err)
	}
	if cfg.Alpha != DefaultAlpha {
		t.Errorf("expected default alpha when no config file is present, got %g", cfg.Alpha)
	}
}
