package calculator

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// NumericValue parses a display string the way a browser's Number(string)
// does for the strings the reducer can produce. Blank input is 0; text that is
// not a decimal literal or a signed "Infinity" is NaN.
func NumericValue(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	// Out-of-range literals still yield ±Inf or 0 alongside ErrRange.
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// Stringify renders f as the shortest decimal that round-trips, laid out as
// ECMAScript Number::toString does: plain notation while the decimal exponent
// is in [-6, 21), exponential notation with an explicit exponent sign
// otherwise. Negative zero renders as "0".
func Stringify(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	var buf []byte
	if f < 0 {
		buf = append(buf, '-')
		f = -f
	}

	digits, n := shortestDigits(f)
	k := len(digits)

	switch {
	case k <= n && n <= 21:
		buf = append(buf, digits...)
		buf = append(buf, strings.Repeat("0", n-k)...)
	case 0 < n && n <= 21:
		buf = append(buf, digits[:n]...)
		buf = append(buf, '.')
		buf = append(buf, digits[n:]...)
	case -6 < n && n <= 0:
		buf = append(buf, "0."...)
		buf = append(buf, strings.Repeat("0", -n)...)
		buf = append(buf, digits...)
	default:
		buf = append(buf, digits[0])
		if k > 1 {
			buf = append(buf, '.')
			buf = append(buf, digits[1:]...)
		}
		buf = append(buf, 'e')
		if n-1 >= 0 {
			buf = append(buf, '+')
		}
		buf = strconv.AppendInt(buf, int64(n-1), 10)
	}
	return string(buf)
}

// shortestDigits returns the significand digits of a positive finite f and
// the position of the decimal point relative to them.
func shortestDigits(f float64) (string, int) {
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	e, _ := strconv.Atoi(exp)
	return strings.Replace(mantissa, ".", "", 1), e + 1
}

// roundHalfUp formats the non-negative finite f with prec digits in the given
// strconv format ('e' or 'f'), breaking exact ties away from zero. strconv
// alone rounds exact ties to even.
func roundHalfUp(f float64, format byte, prec int) string {
	s := strconv.FormatFloat(f, format, prec, 64)
	wider := strconv.FormatFloat(f, format, prec+1, 64)
	mantissa, exp, hasExp := strings.Cut(wider, "e")
	if !strings.HasSuffix(mantissa, "5") {
		return s
	}

	tie, ok := new(big.Rat).SetString(wider)
	if !ok || tie.Cmp(new(big.Rat).SetFloat64(f)) != 0 {
		return s
	}

	b := []byte(strings.TrimSuffix(mantissa[:len(mantissa)-1], "."))
	i := len(b) - 1
	for ; i >= 0; i-- {
		if b[i] == '.' {
			continue
		}
		if b[i] != '9' {
			b[i]++
			break
		}
		b[i] = '0'
	}
	if i >= 0 {
		if hasExp {
			return string(b) + "e" + exp
		}
		return string(b)
	}

	// Every digit carried: 9.99e+05 becomes 1.00e+06, 99.9 becomes 100.0.
	if !hasExp {
		return "1" + string(b)
	}
	e, _ := strconv.Atoi(exp)
	out := "1"
	if prec > 0 {
		out += "." + strings.Repeat("0", prec)
	}
	return out + "e" + signedExponent(e+1)
}

func signedExponent(e int) string {
	if e < 0 {
		return strconv.Itoa(e)
	}
	return "+" + strconv.Itoa(e)
}
