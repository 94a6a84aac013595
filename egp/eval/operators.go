package eval

import (
	"fmt"
	"math"

	"github.com/baldhumanity/egp-go/egp"
)

// Operator computes a node's value from the values of its strong children, in
// binding order.
type Operator func(args []float64) float64

// Operators maps node labels to the operator that evaluates them.
// Labels can be mapped to different operators by editing a copy.
var Operators = map[string]Operator{
	// n-ary
	"add":     egp.SumFloats,
	"sum":     egp.SumFloats,
	"mul":     Product,
	"product": Product,
	"min":     Aggregate(egp.MinFloat),
	"max":     Aggregate(egp.MaxFloat),
	"mean":    egp.Mean,
	"median":  Aggregate(egp.Median),
	"sub":     Subtract,
	"div":     Divide,

	// unary
	"neg":      Unary(func(x float64) float64 { return -x }),
	"identity": Unary(func(x float64) float64 { return x }),
	"abs":      Unary(math.Abs),
	"square":   Unary(func(x float64) float64 { return x * x }),
	"cube":     Unary(func(x float64) float64 { return x * x * x }),
	"sin":      Unary(math.Sin),
	"cos":      Unary(math.Cos),
	"tanh":     Unary(math.Tanh),
	"relu":     Unary(func(x float64) float64 { return math.Max(0, x) }),
	"sigmoid":  Unary(Sigmoid),
	"exp":      Unary(Exp),
	"log":      Unary(Log),
	"inv":      Unary(Inv),

	// constants
	"zero": Const(0),
	"one":  Const(1),
	"two":  Const(2),
}

// Lookup retrieves an operator by label from ops.
func Lookup(ops map[string]Operator, label string) (Operator, error) {
	if fn, ok := ops[label]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown operator: %s", label)
}

// Unary applies fn to the sum of the arguments.
func Unary(fn func(float64) float64) Operator {
	return func(args []float64) float64 {
		return fn(egp.SumFloats(args))
	}
}

// Aggregate wraps fn so that no arguments evaluate to 0 instead of fn's
// empty-input sentinel.
func Aggregate(fn func([]float64) float64) Operator {
	return func(args []float64) float64 {
		if len(args) == 0 {
			return 0
		}
		return fn(args)
	}
}

// Const ignores its arguments.
func Const(v float64) Operator {
	return func([]float64) float64 { return v }
}

// Product multiplies the arguments. No arguments evaluate to 0.
func Product(args []float64) float64 {
	if len(args) == 0 {
		return 0.0
	}
	product := 1.0
	for _, v := range args {
		product *= v
	}
	return product
}

// Subtract returns the first argument minus the rest.
func Subtract(args []float64) float64 {
	if len(args) == 0 {
		return 0.0
	}
	out := args[0]
	for _, v := range args[1:] {
		out -= v
	}
	return out
}

// Divide returns the first argument divided by the rest, with division by
// zero evaluating to 0.
func Divide(args []float64) float64 {
	if len(args) == 0 {
		return 0.0
	}
	out := args[0]
	for _, v := range args[1:] {
		if v == 0 {
			return 0.0
		}
		out /= v
	}
	return out
}

// Sigmoid is the logistic function.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Exp is e^x with the input clamped to avoid overflow.
func Exp(x float64) float64 {
	return math.Exp(math.Max(-60.0, math.Min(x, 60.0)))
}

// Log is the natural logarithm of max(x, 1e-9).
func Log(x float64) float64 {
	return math.Log(math.Max(1e-9, x))
}

// Inv is 1/x, with 0 mapping to 0.
func Inv(x float64) float64 {
	if x == 0.0 {
		return 0.0
	}
	return 1.0 / x
}
