package geometry

import (
	"math"
	"testing"

	"github.com/lisdanil/freddi/internal/units"
)

func TestKerrISCOSchwarzschild(t *testing.T) {
	mx := 10 * units.SolarMass
	r := KerrISCORadius(mx, 0)
	rg := units.GravitationalConstant * mx / (units.SpeedOfLight * units.SpeedOfLight)
	want := 6 * rg
	if diff := math.Abs(r-want) / want; diff > 1e-9 {
		t.Errorf("KerrISCORadius(a=0) = %g, want %g (6 Rg)", r, want)
	}
}

func TestKerrISCOProgradeSmallerThanRetrograde(t *testing.T) {
	mx := 10 * units.SolarMass
	prograde := KerrISCORadius(mx, 0.9)
	retrograde := KerrISCORadius(mx, -0.9)
	if prograde >= retrograde {
		t.Errorf("expected prograde ISCO < retrograde ISCO, got %g >= %g", prograde, retrograde)
	}
}

func TestRocheLobeVolumeRadiusPositive(t *testing.T) {
	r := RocheLobeVolumeRadius(1.4*units.SolarMass, 1.0*units.SolarMass, 5*3600)
	if r <= 0 {
		t.Fatalf("expected positive Roche lobe radius, got %g", r)
	}
}

func TestNewBinaryDerivesDefaults(t *testing.T) {
	b := NewBinary(Params{
		Alpha:  0.3,
		Mx:     1.4 * units.SolarMass,
		Kerr:   0,
		Period: 5 * 3600,
		Mopt:   1.0 * units.SolarMass,
	})
	if b.Risco <= 0 {
		t.Error("expected derived Risco > 0")
	}
	if b.Rin != b.Risco {
		t.Errorf("expected Rin to default to Risco, got Rin=%g Risco=%g", b.Rin, b.Risco)
	}
	if b.Rout <= b.Rin {
		t.Errorf("expected Rout > Rin, got Rout=%g Rin=%g", b.Rout, b.Rin)
	}
}

func TestNewBinaryHonoursOverrides(t *testing.T) {
	rin := 1e8
	b := NewBinary(Params{
		Mx:     1.4 * units.SolarMass,
		Period: 5 * 3600,
		Mopt:   1.0 * units.SolarMass,
		Rin:    &rin,
	})
	if b.Rin != rin {
		t.Errorf("expected Rin override honoured, got %g want %g", b.Rin, rin)
	}
}

func TestBinaryHIsMonotone(t *testing.T) {
	b := NewBinary(Params{Mx: units.SolarMass, Period: 3600, Mopt: units.SolarMass})
	if b.H(2e10) <= b.H(1e10) {
		t.Error("expected H(r) to increase with r")
	}
}
