package evolve

import (
	"context"
	"testing"
)

func TestEnsembleRunsIndependently(t *testing.T) {
	base := newTestConfig(t)
	seed := base.DiskState

	configs := make([]Config, 3)
	for i := range configs {
		c := base
		c.DiskState = seed.Clone()
		configs[i] = c
	}

	ens := NewEnsemble(configs, 1.0, 5.0)
	results, errs := ens.Run(context.Background())

	if len(results) != 3 || len(errs) != 3 {
		t.Fatalf("expected 3 results and 3 errs, got %d and %d", len(results), len(errs))
	}
	for i, err := range errs {
		if err != nil {
			t.Errorf("run %d returned error: %v", i, err)
		}
	}
	for i, r := range results {
		if r == nil || r.StepsTaken == 0 {
			t.Errorf("run %d produced no steps", i)
		}
	}

	// Each run owns its own DiskState; mutating one must not affect another.
	if configs[0].DiskState == configs[1].DiskState {
		t.Error("expected each ensemble member to own an independent DiskState")
	}
}
