package tabular

import "math"

// welford accumulates a running mean and sum of squared deviations
// in one pass.  NaN inputs propagate to every statistic.
type welford struct {
	count int
	mean  float64
	m2    float64
}

func (w *welford) update(value float64) {
	w.count++
	delta := value - w.mean
	w.mean += delta / float64(w.count)
	delta2 := value - w.mean
	w.m2 += delta * delta2
}

// sampleVariance returns the n-1 denominator variance, or NaN for
// fewer than two values.
func (w *welford) sampleVariance() float64 {
	if w.count < 2 {
		return math.NaN()
	}
	return w.m2 / float64(w.count-1)
}

func (w *welford) sd() float64 {
	return math.Sqrt(w.sampleVariance())
}
