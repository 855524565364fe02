package calculator

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display bounds.
const (
	// Magnitudes at or above this switch to exponential notation.
	ExponentialAbove = 1e12
	// Nonzero magnitudes below this switch to exponential notation.
	ExponentialBelow = 1e-6

	fixedFractionDigits       = 10
	exponentialFractionDigits = 6

	// Infinity is shown for every non-finite value.
	Infinity = "∞"
)

// Formatter renders values for display, grouping the integer part with the
// separators of its language.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a Formatter grouping digits as tag does.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

var defaultFormatter = NewFormatter(language.AmericanEnglish)

// Format renders v with the default formatter.
func Format(v float64) string {
	return defaultFormatter.Format(v)
}

// Format renders v as a bounded-length display string. It never fails:
// non-finite values render as "∞".
func (f *Formatter) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Infinity
	}

	abs := math.Abs(v)
	if abs != 0 && (abs >= ExponentialAbove || abs < ExponentialBelow) {
		return formatExponential(v)
	}

	s := fixed(v)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	grouped := f.group(intPart)
	if hasFrac {
		return grouped + "." + fracPart
	}
	return grouped
}

// fixed renders v with a fixed count of fractional digits. A negative value
// keeps its sign even when it rounds to zero.
func fixed(v float64) string {
	s := roundHalfUp(math.Abs(v), 'f', fixedFractionDigits)
	if math.Signbit(v) && v != 0 {
		return "-" + s
	}
	return s
}

func formatExponential(v float64) string {
	s := roundHalfUp(math.Abs(v), 'e', exponentialFractionDigits)
	mantissa, exp, _ := strings.Cut(s, "e")
	e, _ := strconv.Atoi(exp)
	if v < 0 {
		mantissa = "-" + mantissa
	}
	return mantissa + "e" + strconv.Itoa(e)
}

// GroupSeparator returns the separator placed between thousands, or "" when
// the language leaves four-digit numbers ungrouped. The decimal point is
// always ".".
func (f *Formatter) GroupSeparator() string {
	return strings.Trim(f.printer.Sprintf("%d", 1000), "0123456789")
}

func (f *Formatter) group(intPart string) string {
	digits := strings.TrimPrefix(intPart, "-")
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return intPart
	}
	grouped := f.printer.Sprintf("%d", n)
	if len(digits) != len(intPart) {
		return "-" + grouped
	}
	return grouped
}
