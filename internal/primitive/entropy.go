package primitive

import "math"

// Entropy returns the Shannon entropy in bits of the distribution formed by
// all bins of all histograms taken together. Each histogram is typically one
// band; pooling them matches libvips hist_entropy on a multi-band histogram.
func Entropy(histograms ...[]int) float64 {
	var total float64
	for _, bins := range histograms {
		for _, n := range bins {
			total += float64(n)
		}
	}
	if total == 0 {
		return 0
	}

	var e float64
	for _, bins := range histograms {
		for _, n := range bins {
			if n == 0 {
				continue
			}
			p := float64(n) / total
			e -= p * math.Log2(p)
		}
	}
	return e
}
