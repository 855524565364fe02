package calculator

import "strings"

// Reduce returns the state that follows s after input t.
func Reduce(s State, t Token) State {
	if s.current == "" {
		s = Initial()
	}

	switch t.kind {
	case KindDigit:
		return appendDigit(s, t.digit)
	case KindDecimalPoint:
		return appendDecimalPoint(s)
	case KindOperator:
		return chooseOperator(s, t.op)
	case KindEquals:
		return equals(s)
	case KindClear:
		return Initial()
	case KindDelete:
		return deleteLast(s)
	case KindNegate:
		s.current = Stringify(-NumericValue(s.current))
		return s
	case KindPercent:
		s.current = Stringify(NumericValue(s.current) / 100)
		return s
	}
	return s
}

// Apply reduces tokens in order starting from s.
func Apply(s State, tokens ...Token) State {
	for _, t := range tokens {
		s = Reduce(s, t)
	}
	return s
}

func appendDigit(s State, d byte) State {
	switch {
	case s.justEvaluated:
		s.current = string(d)
		s.justEvaluated = false
	case s.current == "0":
		s.current = string(d)
	case countDigits(s.current) < MaxDigits:
		s.current += string(d)
	}
	return s
}

func appendDecimalPoint(s State) State {
	switch {
	case s.justEvaluated:
		s.current = "0."
		s.justEvaluated = false
	case !strings.Contains(s.current, "."):
		s.current += "."
	}
	return s
}

// chooseOperator evaluates any pending operation into the left operand before
// recording op, so at most one evaluation happens per operator event.
func chooseOperator(s State, op Operator) State {
	if s.operator != OpNone && !s.justEvaluated {
		s.previous = Stringify(Evaluate(leftOperand(s), s.current, s.operator))
	} else {
		s.previous = s.current
	}
	s.current = "0"
	s.operator = op
	s.justEvaluated = false
	return s
}

func equals(s State) State {
	if s.operator == OpNone {
		return s
	}
	return State{
		current:       Stringify(Evaluate(leftOperand(s), s.current, s.operator)),
		justEvaluated: true,
	}
}

func deleteLast(s State) State {
	switch {
	case s.justEvaluated:
		s.current = "0"
		s.justEvaluated = false
	case len(s.current) > 1:
		s.current = s.current[:len(s.current)-1]
	default:
		s.current = "0"
	}
	return s
}

func leftOperand(s State) string {
	if s.previous == "" {
		return "0"
	}
	return s.previous
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}
