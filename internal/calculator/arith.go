package calculator

import (
	"math"
	"strconv"
)

// Precision is the count of significant decimal digits every arithmetic
// result is rounded to.
const Precision = 15

// Evaluate applies op to the decimal strings a and b. Division by zero yields
// +Inf whatever the sign of a. With OpNone the right operand is returned.
func Evaluate(a, b string, op Operator) float64 {
	x, y := NumericValue(a), NumericValue(b)

	var r float64
	switch op {
	case OpAdd:
		r = x + y
	case OpSub:
		r = x - y
	case OpMul:
		r = x * y
	case OpDiv:
		if y == 0 {
			return math.Inf(1)
		}
		r = x / y
	default:
		r = y
	}
	return RoundSignificant(r, Precision)
}

// RoundSignificant rounds x to the given count of significant decimal digits,
// masking binary fraction noise such as 0.1+0.2. Exact ties round away from
// zero, a zero result is always +0, and NaN and infinities pass through.
func RoundSignificant(x float64, digits int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if x == 0 {
		return 0
	}
	if digits < 1 {
		digits = 1
	}

	r, _ := strconv.ParseFloat(roundHalfUp(math.Abs(x), 'e', digits-1), 64)
	if r == 0 {
		return 0
	}
	return math.Copysign(r, x)
}
