package evolve

import (
	"context"
	"sync"
)

// Ensemble runs N independent evolutions in parallel, each over its own
// diskstate.State.
type Ensemble struct {
	configs []Config
	tau     float64
	time    float64
}

// NewEnsemble builds an Ensemble over one Config per run; each Config
// should carry its own freshly constructed diskstate.State (Clone the
// seed state per run before building Config).
func NewEnsemble(configs []Config, tau, time float64) *Ensemble {
	return &Ensemble{configs: configs, tau: tau, time: time}
}

// Run executes every configured evolution concurrently and returns one
// Result per run, in input order. A single run's fatal error does not
// stop the others; it is returned alongside that run's partial Result.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, []error) {
	n := len(e.configs)
	results := make([]*Result, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			loop := New(e.configs[idx])
			results[idx], errs[idx] = loop.Run(ctx, e.tau, e.time)
		}(i)
	}
	wg.Wait()

	return results, errs
}
