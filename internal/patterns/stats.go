package patterns

import "math"

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev returns the population standard deviation, 0 for fewer than one
// value.
func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	varianceSum := 0.0
	for _, v := range values {
		diff := v - m
		varianceSum += diff * diff
	}
	return math.Sqrt(varianceSum / float64(len(values)))
}
