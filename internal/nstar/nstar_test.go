package nstar

import (
	"math"
	"testing"

	"github.com/lisdanil/freddi/internal/units"
)

func testConfig() Config {
	return Config{
		Freqx:         1.0,
		Rx:            1e6,
		Bx:            1e12,
		EpsilonAlfven: 0.5,
		FpType:        "no-outflow",
		Mx:            1.4 * units.SolarMass,
	}
}

func TestNewDerivedRejectsZeroFreqx(t *testing.T) {
	cfg := testConfig()
	cfg.Freqx = 0
	if _, err := NewDerived(cfg); err == nil {
		t.Error("expected error for freqx <= 0")
	}
}

func TestMagnetosphericRadiusDecreasesWithMdot(t *testing.T) {
	cfg := testConfig()
	d, err := NewDerived(cfg)
	if err != nil {
		t.Fatalf("NewDerived: %v", err)
	}
	low := MagnetosphericRadius(cfg, d, 1e15)
	high := MagnetosphericRadius(cfg, d, 1e18)
	if high >= low {
		t.Errorf("expected R_m to shrink as Mdot grows, got low=%g high=%g", low, high)
	}
}

func TestMagnetosphericRadiusClampedToRmMin(t *testing.T) {
	cfg := testConfig()
	d, err := NewDerived(cfg)
	if err != nil {
		t.Fatalf("NewDerived: %v", err)
	}
	rm := MagnetosphericRadius(cfg, d, 1e30)
	if rm < d.RmMin-1 {
		t.Errorf("expected R_m clamped to RmMin=%g, got %g", d.RmMin, rm)
	}
}

func TestMagnetosphericRadiusClampedToRdead(t *testing.T) {
	cfg := testConfig()
	cfg.Rdead = 1e8
	d, err := NewDerived(cfg)
	if err != nil {
		t.Fatalf("NewDerived: %v", err)
	}
	rm := MagnetosphericRadius(cfg, d, 1e-10)
	if rm > cfg.Rdead {
		t.Errorf("expected R_m clamped to Rdead=%g, got %g", cfg.Rdead, rm)
	}
}

func TestFpNoOutflowAlwaysOne(t *testing.T) {
	cfg := testConfig()
	cfg.FpType = "no-outflow"
	d, err := NewDerived(cfg)
	if err != nil {
		t.Fatalf("NewDerived: %v", err)
	}
	fp, err := Fp(cfg, d, 1e8)
	if err != nil {
		t.Fatalf("Fp: %v", err)
	}
	if fp != 1 {
		t.Errorf("expected fp=1 for no-outflow, got %g", fp)
	}
}

func TestFpPropellerBlocksInsideCorotation(t *testing.T) {
	cfg := testConfig()
	cfg.FpType = "propeller"
	d, err := NewDerived(cfg)
	if err != nil {
		t.Fatalf("NewDerived: %v", err)
	}
	rmSmall := d.Rcor * 0.5 // x = Rcor/Rm = 2 > 1
	fp, err := Fp(cfg, d, rmSmall)
	if err != nil {
		t.Fatalf("Fp: %v", err)
	}
	if fp != 1 {
		t.Errorf("expected full accretion when R_m < R_cor, got fp=%g", fp)
	}

	rmLarge := d.Rcor * 2 // x = 0.5 < 1, propeller regime
	fp, err = Fp(cfg, d, rmLarge)
	if err != nil {
		t.Fatalf("Fp: %v", err)
	}
	if fp != 0 {
		t.Errorf("expected zero accretion when R_m > R_cor (propeller), got fp=%g", fp)
	}
}

func TestFpUnknownTypeErrors(t *testing.T) {
	cfg := testConfig()
	cfg.FpType = "bogus"
	d, _ := NewDerived(cfg)
	if _, err := Fp(cfg, d, 1e8); err == nil {
		t.Error("expected error for unknown fptype")
	}
}

func TestFpClampedToUnitInterval(t *testing.T) {
	cfg := testConfig()
	for _, name := range KnownFpTypes() {
		cfg.FpType = name
		d, err := NewDerived(cfg)
		if err != nil {
			t.Fatalf("NewDerived: %v", err)
		}
		for _, rm := range []float64{1e6, 1e7, 1e8, 1e9, 1e10} {
			fp, err := Fp(cfg, d, rm)
			if err != nil {
				t.Fatalf("Fp(%s, rm=%g): %v", name, rm, err)
			}
			if fp < 0 || fp > 1 || math.IsNaN(fp) {
				t.Errorf("%s: fp out of [0,1] at rm=%g: %g", name, rm, fp)
			}
		}
	}
}

func TestKnownFpTypesNonEmpty(t *testing.T) {
	if len(KnownFpTypes()) == 0 {
		t.Error("expected at least one registered fptype")
	}
}
