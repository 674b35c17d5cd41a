package metrics

import "github.com/lisdanil/freddi/internal/diskstate"

// PeakAccretionRate tracks the maximum Mdot_in observed.
type PeakAccretionRate struct {
	name string
	peak float64
}

func NewPeakAccretionRate() *PeakAccretionRate {
	return &PeakAccretionRate{name: "peak_accretion_rate"}
}

func (p *PeakAccretionRate) Name() string { return p.name }

func (p *PeakAccretionRate) Observe(ds *diskstate.State, _ float64) {
	if mdot := ds.MdotIn(); mdot > p.peak {
		p.peak = mdot
	}
}

func (p *PeakAccretionRate) Value() float64 { return p.peak }

func (p *PeakAccretionRate) Reset()         { p.peak = 0 }

// RiseTime tracks the elapsed time from the first Observe call until
// Mdot_in first exceeds half the run's eventual peak, a standard
// outburst-rise diagnostic. Requires the peak to be known in advance;
// callers feed it the same run twice or use PeakAccretionRate first.
type RiseTime struct {
	name      string
	threshold float64
	t0        float64
	have0     bool
	riseT     float64
	found     bool
}

func NewRiseTime(peak float64) *RiseTime {
	return &RiseTime{name: "rise_time", threshold: 0.5 * peak}
}

func (r *RiseTime) Name() string { return r.name }

func (r *RiseTime) Observe(ds *diskstate.State, t float64) {
	if !r.have0 {
		r.t0 = t
		r.have0 = true
	}
	if !r.found && ds.MdotIn() >= r.threshold {
		r.riseT = t - r.t0
		r.found = true
	}
}

func (r *RiseTime) Value() float64 { return r.riseT }

func (r *RiseTime) Reset() {
	r.t0, r.riseT = 0, 0
	r.have0, r.found = false, false
}
