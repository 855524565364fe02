package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

// noisySum is 0.1+0.2 evaluated in float64 rather than as an exact constant.
var noisySum = func() float64 {
	a, b := 0.1, 0.2
	return a + b
}()

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "zero", in: 0, want: "0"},
		{name: "negative zero", in: math.Copysign(0, -1), want: "0"},
		{name: "integer", in: 492, want: "492"},
		{name: "thousands", in: 1000, want: "1,000"},
		{name: "grouped with fraction", in: 1234567.25, want: "1,234,567.25"},
		{name: "binary fraction noise shows", in: 1234567.891, want: "1,234,567.8910000001"},
		{name: "negative grouped", in: -1234.5, want: "-1,234.5"},
		{name: "negative below one keeps sign", in: -0.5, want: "-0.5"},
		{name: "ten fractional digits", in: 1.0 / 3, want: "0.3333333333"},
		{name: "fraction rounds up", in: 2.0 / 3, want: "0.6666666667"},
		{name: "trailing zeros trimmed", in: noisySum, want: "0.3"},
		{name: "exact tie rounds away from zero", in: 0.00048828125, want: "0.0004882813"},
		{name: "smallest fixed value", in: 0.000001, want: "0.000001"},
		{name: "largest fixed value", in: 999999999999, want: "999,999,999,999"},
		{name: "exponential at upper bound", in: 1e12, want: "1.000000e12"},
		{name: "exponential large", in: 1.23456789e15, want: "1.234568e15"},
		{name: "exponential large negative", in: -1.23456789e15, want: "-1.234568e15"},
		{name: "exponential small", in: 1e-7, want: "1.000000e-7"},
		{name: "exponential small negative", in: -1.5e-9, want: "-1.500000e-9"},
		{name: "exponential huge", in: 1e21, want: "1.000000e21"},
		{name: "positive infinity", in: math.Inf(1), want: "∞"},
		{name: "negative infinity", in: math.Inf(-1), want: "∞"},
		{name: "not a number", in: math.NaN(), want: "∞"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestFormatRoundTripsTypedDigits(t *testing.T) {
	tests := []struct {
		typed string
		want  string
	}{
		{typed: "7", want: "7"},
		{typed: "1234", want: "1,234"},
		{typed: "123456789012", want: "123,456,789,012"},
		{typed: "0.5", want: "0.5"},
		{typed: "12.50", want: "12.5"},
		{typed: "3.", want: "3"},
		{typed: "0.000001", want: "0.000001"},
	}

	for _, tt := range tests {
		t.Run(tt.typed, func(t *testing.T) {
			tokens, _ := ParseSequence(tt.typed)
			s := Apply(Initial(), tokens...)
			assert.Equal(t, tt.typed, s.Current())
			assert.Equal(t, tt.want, Format(NumericValue(s.Current())))
		})
	}
}

func TestFormatterGroupsByLanguage(t *testing.T) {
	f := NewFormatter(language.German)
	assert.Equal(t, "1.234.567", f.Format(1234567))
	assert.Equal(t, "-12.345", f.Format(-12345))
}

func TestGroupSeparator(t *testing.T) {
	assert.Equal(t, ",", NewFormatter(language.AmericanEnglish).GroupSeparator())
	assert.Equal(t, ".", NewFormatter(language.German).GroupSeparator())
}
