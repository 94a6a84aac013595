package egp

import (
	"math"
	"slices"
)

// Mean calculates the average of a slice of float64 values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	return SumFloats(values) / float64(len(values))
}

// Stdev calculates the sample standard deviation of values.
func Stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0.0
	}
	mean := Mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)-1))
}

// SumFloats calculates the sum of a slice of float64 values.
func SumFloats(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}

// MaxFloat returns the largest value, or negative infinity if values is empty.
func MaxFloat(values []float64) float64 {
	if len(values) == 0 {
		return math.Inf(-1)
	}
	return slices.Max(values)
}

// MinFloat returns the smallest value, or positive infinity if values is empty.
func MinFloat(values []float64) float64 {
	if len(values) == 0 {
		return math.Inf(1)
	}
	return slices.Min(values)
}

// Median returns the median of values, or NaN if values is empty.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2.0
}

// FitnessStats summarises the fitness of a generation.
type FitnessStats struct {
	Mean  float64
	Stdev float64
	Min   float64
	Max   float64
}

// FitnessStats returns summary statistics over the current individuals.
func (p *Population) FitnessStats() FitnessStats {
	fitness := make([]float64, len(p.Individuals))
	for i, ind := range p.Individuals {
		fitness[i] = ind.Fitness
	}
	return FitnessStats{
		Mean:  Mean(fitness),
		Stdev: Stdev(fitness),
		Min:   MinFloat(fitness),
		Max:   MaxFloat(fitness),
	}
}
