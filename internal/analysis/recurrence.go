// Package analysis computes post-run diagnostics over a completed
// evolve.Result. RecurrencePeriod finds the dominant outburst-recurrence
// period of an Mdot_in light curve via FFT, using
// github.com/mjibson/go-dsp/fft.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/lisdanil/freddi/internal/evolve"
)

// Spectrum is the one-sided power spectrum of a light curve, in
// cycles per unit time (the unit of the snapshots' T field, seconds).
type Spectrum struct {
	Freq  []float64
	Power []float64
}

// PowerSpectrum computes the one-sided power spectrum of the Mdot_in
// light curve in result, treating consecutive snapshots as spaced dt
// apart (FFTReal assumes uniform sampling; no resampling is done).
func PowerSpectrum(result *evolve.Result, dt float64) Spectrum {
	n := len(result.Snapshots)
	if n < 2 || dt <= 0 {
		return Spectrum{}
	}
	x := make([]float64, n)
	for i, s := range result.Snapshots {
		x[i] = s.MdotIn
	}
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)
	for i := range x {
		x[i] -= mean
	}

	coeffs := fft.FFTReal(x)
	half := n/2 + 1
	spec := Spectrum{Freq: make([]float64, half), Power: make([]float64, half)}
	for k := 0; k < half; k++ {
		spec.Freq[k] = float64(k) / (float64(n) * dt)
		spec.Power[k] = cmplx.Abs(coeffs[k]) * cmplx.Abs(coeffs[k])
	}
	return spec
}

// RecurrencePeriod returns the period (in the snapshots' time unit)
// of the strongest non-zero-frequency component of the Mdot_in light
// curve, the outburst recurrence timescale for scenarios like
// bh-outburst.
func RecurrencePeriod(result *evolve.Result, dt float64) float64 {
	spec := PowerSpectrum(result, dt)
	if len(spec.Freq) < 2 {
		return 0
	}
	bestK := 1
	bestPower := spec.Power[1]
	for k := 2; k < len(spec.Power); k++ {
		if spec.Power[k] > bestPower {
			bestPower = spec.Power[k]
			bestK = k
		}
	}
	if spec.Freq[bestK] == 0 || math.IsNaN(spec.Freq[bestK]) {
		return 0
	}
	return 1 / spec.Freq[bestK]
}
