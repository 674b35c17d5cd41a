package main

import (
	"context"
	"testing"

	"github.com/lisdanil/freddi/internal/config"
	"github.com/lisdanil/freddi/internal/registry"
)

func TestBuildLoopAcceptsEveryPreset(t *testing.T) {
	reg := registry.New()
	for _, name := range config.ListPresets() {
		cfg, ok := config.GetPreset(name)
		if !ok {
			t.Fatalf("preset %q listed but not found", name)
		}
		loop, err := buildLoop(cfg, reg)
		if err != nil {
			t.Fatalf("buildLoop(%q): %v", name, err)
		}
		if loop.State() == nil {
			t.Fatalf("buildLoop(%q) produced a loop with no state", name)
		}
	}
}

func TestBuildLoopRunsEveryPresetToCompletion(t *testing.T) {
	reg := registry.New()
	for _, name := range config.ListPresets() {
		cfg, ok := config.GetPreset(name)
		if !ok {
			t.Fatalf("preset %q listed but not found", name)
		}
		// Keep the integration fast: a handful of substeps is enough to
		// exercise the full per-step pipeline without running a whole
		// scenario's worth of physical time.
		cfg.Tau = cfg.Time / 5

		loop, err := buildLoop(cfg, reg)
		if err != nil {
			t.Fatalf("buildLoop(%q): %v", name, err)
		}
		result, err := loop.Run(context.Background(), cfg.TauSeconds(), cfg.TauSeconds()*5)
		if err != nil {
			t.Fatalf("preset %q: Run returned error: %v", name, err)
		}
		if result.StepsTaken == 0 {
			t.Errorf("preset %q: expected at least one completed step", name)
		}
		for _, m := range loop.Metrics() {
			if m.Name() == "mass_conservation" && m.Value() > 0.05 {
				t.Errorf("preset %q: mass conservation drift %g exceeds 5%% over a short run", name, m.Value())
			}
		}
	}
}

func TestBuildLoopWiresWindPresetOuterOutflow(t *testing.T) {
	reg := registry.New()
	cfg, ok := config.GetPreset("wind")
	if !ok {
		t.Fatal("expected wind preset to exist")
	}
	loop, err := buildLoop(cfg, reg)
	if err != nil {
		t.Fatalf("buildLoop(wind): %v", err)
	}
	if loop.State().MdotOut >= 0 {
		t.Errorf("expected the wind preset's built loop to carry a negative MdotOut, got %g", loop.State().MdotOut)
	}
}

func TestBuildLoopRejectsInvalidConfig(t *testing.T) {
	reg := registry.New()
	cfg := config.Default()
	if _, err := buildLoop(cfg, reg); err == nil {
		t.Error("expected buildLoop to reject a config missing required fields")
	}
}
