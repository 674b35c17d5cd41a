package initcond

import (
	"math"
	"testing"

	"github.com/lisdanil/freddi/internal/grid"
	"github.com/lisdanil/freddi/internal/opacity"
)

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(1e8, 1e10, 50, grid.Log, 1e26)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	return g
}

func TestPowerFDirectF0(t *testing.T) {
	g := testGrid(t)
	law := opacity.Kramers()
	f, err := PowerF(g, law, 0.3, Params{F0: 1e33, PowerOrder: 1})
	if err != nil {
		t.Fatalf("PowerF: %v", err)
	}
	if f[0] != 0 {
		t.Errorf("expected F=0 at inner edge, got %g", f[0])
	}
	if diff := math.Abs(f[len(f)-1] - 1e33); diff > 1e-6*1e33 {
		t.Errorf("expected F=F0 at outer edge, got %g", f[len(f)-1])
	}
	for i := 1; i < len(f); i++ {
		if f[i] < f[i-1] {
			t.Fatalf("powerF with order 1 should be monotone nondecreasing, F[%d]=%g < F[%d]=%g", i, f[i], i-1, f[i-1])
		}
	}
}

func TestSinusFBounds(t *testing.T) {
	g := testGrid(t)
	law := opacity.OPAL()
	f, err := SinusF(g, law, 0.3, Params{F0: 1e33})
	if err != nil {
		t.Fatalf("SinusF: %v", err)
	}
	if f[0] != 0 {
		t.Errorf("expected F=0 at inner edge, got %g", f[0])
	}
	if diff := math.Abs(f[len(f)-1] - 1e33); diff > 1e-6*1e33 {
		t.Errorf("expected F=F0 at outer edge, got %g", f[len(f)-1])
	}
}

func TestGaussFNonNegative(t *testing.T) {
	g := testGrid(t)
	law := opacity.Kramers()
	f, err := GaussF(g, law, 0.3, Params{F0: 1e33, GaussMu: 0.5, GaussSigma: 0.1})
	if err != nil {
		t.Fatalf("GaussF: %v", err)
	}
	for i, v := range f {
		if v < 0 {
			t.Errorf("GaussF[%d] = %g, expected non-negative", i, v)
		}
	}
}

func TestQuasistatZeroAtInnerEdge(t *testing.T) {
	g := testGrid(t)
	law := opacity.Kramers()
	f, err := Quasistat(g, law, 0.3, Params{F0: 1e33})
	if err != nil {
		t.Fatalf("Quasistat: %v", err)
	}
	if math.Abs(f[0]) > 1e-6*1e33 {
		t.Errorf("expected Quasistat F~0 at inner edge, got %g", f[0])
	}
	if f[len(f)-1] <= f[0] {
		t.Error("expected Quasistat F to increase outward")
	}
}

func TestResolveF0FromMdisk0(t *testing.T) {
	g := testGrid(t)
	law := opacity.Kramers()
	f, err := PowerF(g, law, 0.3, Params{Mdisk0: 1e24, PowerOrder: 1})
	if err != nil {
		t.Fatalf("PowerF with Mdisk0: %v", err)
	}
	mass := diskMass(g, law, 0.3, 1, f)
	if diff := math.Abs(mass-1e24) / 1e24; diff > 1e-4 {
		t.Errorf("expected disk mass ~= 1e24, got %g (relative diff %g)", mass, diff)
	}
}

func TestResolveF0RequiresATarget(t *testing.T) {
	g := testGrid(t)
	law := opacity.Kramers()
	if _, err := PowerF(g, law, 0.3, Params{PowerOrder: 1}); err == nil {
		t.Error("expected error when neither F0, Mdot0 nor Mdisk0 is set")
	}
}
