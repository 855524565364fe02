package calculator

import "strconv"

// Operator is a pending binary operation.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// Symbol returns the ASCII symbol of the operator, or "" for OpNone.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return ""
}

func (o Operator) String() string {
	if o == OpNone {
		return "none"
	}
	return o.Symbol()
}

// ParseOperator maps one of "+ - * /" to its Operator.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true
	}
	return OpNone, false
}

// Kind discriminates the logical input tokens. The zero value is not a valid
// token; reducing it leaves the state unchanged.
type Kind int

const (
	kindInvalid Kind = iota
	KindDigit
	KindDecimalPoint
	KindOperator
	KindEquals
	KindClear
	KindDelete
	KindNegate
	KindPercent
)

func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindDecimalPoint:
		return "decimal_point"
	case KindOperator:
		return "operator"
	case KindEquals:
		return "equals"
	case KindClear:
		return "clear"
	case KindDelete:
		return "delete"
	case KindNegate:
		return "negate"
	case KindPercent:
		return "percent"
	}
	return "invalid"
}

// Token is one decoded user action.
type Token struct {
	kind  Kind
	digit byte
	op    Operator
}

// Digit returns the token for d. Values outside 0-9 yield an invalid token.
func Digit(d int) Token {
	if d < 0 || d > 9 {
		return Token{}
	}
	return Token{kind: KindDigit, digit: byte('0' + d)}
}

func DecimalPoint() Token { return Token{kind: KindDecimalPoint} }

// Op returns the token choosing op. OpNone yields an invalid token.
func Op(op Operator) Token {
	if op < OpAdd || op > OpDiv {
		return Token{}
	}
	return Token{kind: KindOperator, op: op}
}

func Equals() Token  { return Token{kind: KindEquals} }
func Clear() Token   { return Token{kind: KindClear} }
func Delete() Token  { return Token{kind: KindDelete} }
func Negate() Token  { return Token{kind: KindNegate} }
func Percent() Token { return Token{kind: KindPercent} }

func (t Token) Kind() Kind { return t.kind }

// Operator returns the operator carried by a KindOperator token.
func (t Token) Operator() Operator { return t.op }

// Valid reports whether t is one of the closed set of input tokens.
func (t Token) Valid() bool { return t.kind != kindInvalid }

// String returns the canonical key name, the inverse of ParseKey.
func (t Token) String() string {
	switch t.kind {
	case KindDigit:
		return string(t.digit)
	case KindDecimalPoint:
		return "."
	case KindOperator:
		return t.op.Symbol()
	case KindEquals:
		return "Enter"
	case KindClear:
		return "Escape"
	case KindDelete:
		return "Backspace"
	case KindNegate:
		return "n"
	case KindPercent:
		return "%"
	}
	return "invalid(" + strconv.Itoa(int(t.kind)) + ")"
}
