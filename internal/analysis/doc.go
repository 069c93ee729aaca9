// Package analysis post-processes recorded flights.
//
// The package includes tools for characterizing a trajectory:
//
//   - [DetectPhugoid]: period and amplitude of the long-period altitude
//     oscillation, from an FFT of the resampled altitude trace
//   - [PowerSpectrum]: one-sided, Hann-windowed power spectrum
//   - [GeneratePhasePortrait]: 2D trajectory over two named [Axes]
//   - [GeneratePoincareSection]: states sampled where an axis crosses a level
//   - [Sweep]: settled values of an axis across a range of one parameter
//   - [Sensitivity]: separation growth rate of two nearby flights
//
// # Phugoid
//
// An aircraft trimmed off its equilibrium speed trades height for speed
// in a slow oscillation:
//
//	ph, err := analysis.DetectPhugoid(result.Times, ys, 10)
//	if err == nil {
//	    fmt.Printf("period %.1fs\n", ph.Period)
//	}
package analysis
