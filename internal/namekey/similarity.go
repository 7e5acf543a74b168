package namekey

import "companyscout/internal/textutil"

// Similarity scores two canonical keys in [0, 1]. Either key being empty
// yields 0 because an empty key carries no usable signal; identical keys
// yield 1. The score is symmetric and no acceptance threshold is applied.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return textutil.Ratio(a, b)
}
