package observables

import (
	"math"
	"testing"

	"github.com/lisdanil/freddi/internal/diskstate"
	"github.com/lisdanil/freddi/internal/grid"
	"github.com/lisdanil/freddi/internal/opacity"
	"github.com/lisdanil/freddi/internal/units"
)

func newTestState(t *testing.T) *diskstate.State {
	t.Helper()
	g, err := grid.New(1e8, 1e10, 30, grid.Log, 1e26)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	f0 := make([]float64, g.Len())
	for i, h := range g.H {
		f0[i] = 1e33 * (h - g.H[0]) / (g.H[g.Len()-1] - g.H[0])
	}
	return diskstate.New(g, opacity.Kramers(), 0.3, f0)
}

func testConfig() Config {
	return Config{
		ColourFactor:    1.7,
		Cirr:            1e-3,
		Irrindex:        0,
		AngularDistDisk: Plane,
		Emin:            1,
		Emax:            10,
		Inclination:     0,
		Distance:        units.Parsec,
		Mx:              1.4 * units.SolarMass,
		Eta:             0.1,
	}
}

func TestUpdateFillsActiveWindowOnly(t *testing.T) {
	ds := newTestState(t)
	cfg := testConfig()
	Update(ds, cfg, ds.MdotIn())
	for i := ds.First; i <= ds.Last; i++ {
		if ds.TphVis[i] < 0 || ds.Tph[i] < 0 {
			t.Errorf("expected non-negative temperatures at i=%d, got TphVis=%g Tph=%g", i, ds.TphVis[i], ds.Tph[i])
		}
	}
}

func TestUpdateZeroesOutsideWindow(t *testing.T) {
	ds := newTestState(t)
	ds.First = 3
	ds.Recompute()
	cfg := testConfig()
	Update(ds, cfg, ds.MdotIn())
	if ds.TphVis[0] != 0 || ds.Tph[0] != 0 {
		t.Error("expected zeroed observables outside the active window")
	}
}

func TestIsotropicHalvesCirr(t *testing.T) {
	plane := irradiationCoefficient(Config{Cirr: 1e-3, AngularDistDisk: Plane}, 0.1)
	isotropic := irradiationCoefficient(Config{Cirr: 1e-3, AngularDistDisk: Isotropic}, 0.1)
	if math.Abs(isotropic-0.5*plane) > 1e-12 {
		t.Errorf("expected isotropic Cirr = 0.5*plane, got plane=%g isotropic=%g", plane, isotropic)
	}
}

func TestLxNonNegative(t *testing.T) {
	ds := newTestState(t)
	cfg := testConfig()
	Update(ds, cfg, ds.MdotIn())
	if lx := Lx(ds, cfg); lx < 0 {
		t.Errorf("expected non-negative Lx, got %g", lx)
	}
}

func TestLxZeroForEmptyWindow(t *testing.T) {
	ds := newTestState(t)
	ds.Last = ds.First
	cfg := testConfig()
	if lx := Lx(ds, cfg); lx != 0 {
		t.Errorf("expected Lx=0 for an empty window, got %g", lx)
	}
}

func TestMagnitudeUnknownBand(t *testing.T) {
	ds := newTestState(t)
	cfg := testConfig()
	Update(ds, cfg, ds.MdotIn())
	if _, err := Magnitude(ds, cfg, Band("Z")); err == nil {
		t.Error("expected error for unknown photometric band")
	}
}

func TestMagnitudeKnownBandsFinite(t *testing.T) {
	ds := newTestState(t)
	cfg := testConfig()
	Update(ds, cfg, ds.MdotIn())
	for _, b := range []Band{BandU, BandB, BandV, BandR, BandI, BandJ} {
		m, err := Magnitude(ds, cfg, b)
		if err != nil {
			t.Fatalf("Magnitude(%s): %v", b, err)
		}
		if math.IsNaN(m) {
			t.Errorf("Magnitude(%s) = NaN", b)
		}
	}
}
