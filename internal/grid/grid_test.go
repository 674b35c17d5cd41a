package grid

import "testing"

func TestNewLogSpacing(t *testing.T) {
	g, err := New(1e8, 1e10, 10, Log, 1e15)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if g.Len() != 10 {
		t.Fatalf("expected 10 points, got %d", g.Len())
	}
	if g.H[0] != 1e8 || g.H[9] != 1e10 {
		t.Errorf("expected endpoints to match h_in/h_out exactly, got %g/%g", g.H[0], g.H[9])
	}
	for i := 1; i < g.Len(); i++ {
		if g.H[i] <= g.H[i-1] {
			t.Fatalf("H should be strictly increasing, H[%d]=%g <= H[%d]=%g", i, g.H[i], i-1, g.H[i-1])
		}
	}
}

func TestNewLinearSpacing(t *testing.T) {
	g, err := New(1e8, 1e10, 5, Linear, 1e15)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	step := g.H[1] - g.H[0]
	for i := 2; i < g.Len(); i++ {
		if diff := g.H[i] - g.H[i-1]; diffEq(diff, step) == false {
			t.Errorf("expected uniform step %g, got %g at i=%d", step, diff, i)
		}
	}
}

func diffEq(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}

func TestNewRejectsBadInputs(t *testing.T) {
	cases := []struct {
		name         string
		hIn, hOut    float64
		nx           int
		scale        Scale
	}{
		{"too few points", 1e8, 1e10, 2, Log},
		{"hIn >= hOut", 1e10, 1e8, 10, Log},
		{"unknown scale", 1e8, 1e10, 10, Scale("bogus")},
	}
	for _, c := range cases {
		if _, err := New(c.hIn, c.hOut, c.nx, c.scale, 1e15); err == nil {
			t.Errorf("%s: expected error, got none", c.name)
		}
	}
}

func TestRDerivedFromH(t *testing.T) {
	gm := 1e15
	g, err := New(1e8, 1e10, 10, Log, gm)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	for i, h := range g.H {
		want := h * h / gm
		if diffRel := (g.R[i] - want) / want; diffRel > 1e-9 || diffRel < -1e-9 {
			t.Errorf("R[%d] = %g, want %g", i, g.R[i], want)
		}
	}
}
