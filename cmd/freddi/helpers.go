package main

import "github.com/lisdanil/freddi/internal/evolve"

// syntheticResultFromSeries rebuilds a minimal evolve.Result from a
// reopened Mdot_in series, letting "analyze" and "export" reuse
// internal/analysis and internal/output without re-running the
// evolver.
func syntheticResultFromSeries(mdotIn []float64, dt float64) *evolve.Result {
	result := &evolve.Result{Snapshots: make([]evolve.Snapshot, len(mdotIn))}
	for i, v := range mdotIn {
		result.Snapshots[i] = evolve.Snapshot{
			StepIndex: i,
			T:         float64(i) * dt,
			MdotIn:    v,
		}
	}
	result.StepsTaken = len(mdotIn)
	return result
}
