package calculator

// Display is what a renderer shows for a state: the formatted current value
// and, while an operator is pending, the formatted left operand followed by a
// space and the operator symbol.
type Display struct {
	Current  string
	Previous string
	Operator Operator
}

// Render formats s with the default formatter.
func Render(s State) Display {
	return defaultFormatter.Render(s)
}

func (f *Formatter) Render(s State) Display {
	if s.current == "" {
		s = Initial()
	}
	d := Display{Current: f.Format(NumericValue(s.current))}
	if s.previous != "" && s.operator != OpNone {
		d.Previous = f.Format(NumericValue(s.previous)) + " " + s.operator.Symbol()
		d.Operator = s.operator
	}
	return d
}
