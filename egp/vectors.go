package egp

import (
	"fmt"
	"math"
)

// Vector is a fixed-length real vector. Binding sites and profiles are Vectors
// of length Catalog.TotalActivities.
type Vector []float64

// mustSameLen panics when two vectors disagree in length. A mismatch can only
// come from a bug in the caller, never from runtime data.
func mustSameLen(op string, a, b Vector) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("egp: %s on vectors of different length (%d != %d)", op, len(a), len(b)))
	}
}

// Scale returns a copy of a multiplied by the scalar by.
func Scale(a Vector, by float64) Vector {
	result := make(Vector, len(a))
	for i, v := range a {
		result[i] = v * by
	}
	return result
}

// Sum returns the componentwise sum a + b.
func Sum(a, b Vector) Vector {
	mustSameLen("sum", a, b)
	result := make(Vector, len(a))
	for i := range a {
		result[i] = a[i] + b[i]
	}
	return result
}

// Difference returns the componentwise difference a - b.
func Difference(a, b Vector) Vector {
	mustSameLen("difference", a, b)
	result := make(Vector, len(a))
	for i := range a {
		result[i] = a[i] - b[i]
	}
	return result
}

// Norm returns sqrt(sum(|v_i|)).
//
// This is the square root of the L1 norm, not the Euclidean norm. Matching
// behaviour depends on this exact formula.
func Norm(a Vector) float64 {
	total := 0.0
	for _, v := range a {
		total += math.Abs(v)
	}
	return math.Sqrt(total)
}

// Distance returns Norm(a - b).
func Distance(a, b Vector) float64 {
	return Norm(Difference(a, b))
}

// SumMany folds Sum over xs. xs must not be empty.
func SumMany(xs []Vector) Vector {
	if len(xs) == 0 {
		panic("egp: sum of no vectors")
	}
	total := make(Vector, len(xs[0]))
	for _, x := range xs {
		total = Sum(total, x)
	}
	return total
}

// Average returns the componentwise mean of xs. xs must not be empty.
func Average(xs []Vector) Vector {
	if len(xs) == 0 {
		panic("egp: average of no vectors")
	}
	return Scale(SumMany(xs), 1/float64(len(xs)))
}

// OneHot returns a vector of length n with a single 1 at index.
func OneHot(n, index int) Vector {
	result := make(Vector, n)
	result[index] = 1
	return result
}
