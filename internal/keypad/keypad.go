// Package keypad holds the button grid shared by the calculator front-ends
// and the glyphs they print for operators.
package keypad

import (
	"strings"

	"calcpad/internal/calculator"
)

type Button struct {
	Label string
	Token calculator.Token
}

// Layout is the button grid, top row first.
var Layout = [][]Button{
	{
		{"AC", calculator.Clear()},
		{"DEL", calculator.Delete()},
		{"%", calculator.Percent()},
		{"÷", calculator.Op(calculator.OpDiv)},
	},
	{
		{"7", calculator.Digit(7)},
		{"8", calculator.Digit(8)},
		{"9", calculator.Digit(9)},
		{"×", calculator.Op(calculator.OpMul)},
	},
	{
		{"4", calculator.Digit(4)},
		{"5", calculator.Digit(5)},
		{"6", calculator.Digit(6)},
		{"−", calculator.Op(calculator.OpSub)},
	},
	{
		{"1", calculator.Digit(1)},
		{"2", calculator.Digit(2)},
		{"3", calculator.Digit(3)},
		{"+", calculator.Op(calculator.OpAdd)},
	},
	{
		{"±", calculator.Negate()},
		{"0", calculator.Digit(0)},
		{".", calculator.DecimalPoint()},
		{"=", calculator.Equals()},
	},
}

// Find returns the button carrying label.
func Find(label string) (Button, bool) {
	for _, row := range Layout {
		for _, b := range row {
			if b.Label == label {
				return b, true
			}
		}
	}
	return Button{}, false
}

// Glyph returns the typographic symbol printed for op.
func Glyph(op calculator.Operator) string {
	switch op {
	case calculator.OpAdd:
		return "+"
	case calculator.OpSub:
		return "−"
	case calculator.OpMul:
		return "×"
	case calculator.OpDiv:
		return "÷"
	}
	return ""
}

// PreviousLine is the secondary line of d with the operator glyph in place of
// its ASCII symbol.
func PreviousLine(d calculator.Display) string {
	if d.Previous == "" {
		return ""
	}
	sym := " " + d.Operator.Symbol()
	if !strings.HasSuffix(d.Previous, sym) {
		return d.Previous
	}
	return strings.TrimSuffix(d.Previous, sym) + " " + Glyph(d.Operator)
}
