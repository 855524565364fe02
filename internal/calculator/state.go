// Package calculator implements a sequential four-function calculator: a pure
// reducer from (state, input token) to the next state, the arithmetic it
// applies, and the bounded-precision formatting of values for display.
//
// Nothing in this package fails. Division by zero, malformed input and
// digit overflow are all ordinary state transitions.
package calculator

// MaxDigits is the maximum count of digit characters accepted into the
// current entry.
const MaxDigits = 12

// State is an immutable calculator snapshot. The zero value is not a valid
// state; start from Initial and advance with Reduce.
type State struct {
	current       string
	previous      string
	operator      Operator
	justEvaluated bool
}

// Initial returns the state at session start.
func Initial() State {
	return State{current: "0"}
}

// Current is the value being typed or the last result. Never empty.
func (s State) Current() string { return s.current }

// Previous is the left operand captured when an operator was chosen, or "".
func (s State) Previous() string { return s.previous }

// Operator is the pending operator, OpNone when there is none.
func (s State) Operator() Operator { return s.operator }

// JustEvaluated reports whether the last transition was Equals.
func (s State) JustEvaluated() bool { return s.justEvaluated }
