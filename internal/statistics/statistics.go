// Package statistics provides streaming sample statistics.
package statistics

import (
	"fmt"
	"math"
)

// Running accumulates the mean and sum of squared deviations of a sample
// stream using Welford's update, so no samples are retained.
type Running struct {
	n    int
	mean float64
	v    float64 // sum of squared deviations from the mean
}

// Add incorporates x. The variance term is updated before the mean, using
// the deviation from the previous mean.
func (r *Running) Add(x float64) {
	r.n++
	n := float64(r.n)
	d := x - r.mean
	r.v += d * d * (n - 1) / n
	r.mean += d / n
}

// Count returns the number of samples seen.
func (r *Running) Count() int {
	return r.n
}

// Mean returns the sample mean, 0 when empty.
func (r *Running) Mean() float64 {
	return r.mean
}

// SumSquares returns the running sum of squared deviations.
func (r *Running) SumSquares() float64 {
	return r.v
}

// Variance returns the sample variance with n-1 in the denominator.
func (r *Running) Variance() float64 {
	if r.n < 2 {
		return 0
	}
	return r.v / float64(r.n-1)
}

// PopulationVariance returns the variance with n in the denominator.
func (r *Running) PopulationVariance() float64 {
	if r.n == 0 {
		return 0
	}
	return r.v / float64(r.n)
}

// StdDev returns the sample standard deviation.
func (r *Running) StdDev() float64 {
	return math.Sqrt(r.Variance())
}

// StdError returns the standard error of the mean.
func (r *Running) StdError() float64 {
	if r.n == 0 {
		return 0
	}
	return r.StdDev() / math.Sqrt(float64(r.n))
}

// HalfWidth returns z*s/sqrt(n-1) with s the population standard
// deviation, the interval half-width used by the sequential stopping rule.
// It is +Inf until two samples are available.
func (r *Running) HalfWidth(z float64) float64 {
	if r.n < 2 {
		return math.Inf(1)
	}
	return z * math.Sqrt(r.PopulationVariance()) / math.Sqrt(float64(r.n-1))
}

// ConfidenceInterval returns mean -/+ HalfWidth(z).
func (r *Running) ConfidenceInterval(z float64) (float64, float64) {
	h := r.HalfWidth(z)
	return r.mean - h, r.mean + h
}

// Reset clears all accumulated state.
func (r *Running) Reset() {
	*r = Running{}
}

func (r *Running) String() string {
	return fmt.Sprintf("n=%d mean=%.4f var=%.6f", r.n, r.mean, r.Variance())
}
