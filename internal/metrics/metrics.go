// Package metrics implements the observer hooks internal/evolve feeds
// each step, scalar diagnostics accumulated over a run's diskstate.State.
package metrics

import "github.com/lisdanil/freddi/internal/diskstate"

// Metric accumulates a scalar diagnostic across an evolution's steps.
type Metric interface {
	Name() string
	Observe(ds *diskstate.State, t float64)
	Value() float64
	Reset()
}
