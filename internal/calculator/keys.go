package calculator

import "strings"

// ParseKey decodes a keyboard key name into a token. Unrecognised keys report
// false and must be ignored by the caller.
//
//	0-9 .        digits and decimal point
//	+ - * /      operators
//	Enter =      equals
//	Backspace    delete
//	Escape       clear
//	n N          negate
//	%            percent
func ParseKey(key string) (Token, bool) {
	if len(key) == 1 {
		c := key[0]
		switch {
		case c >= '0' && c <= '9':
			return Digit(int(c - '0')), true
		case c == '.':
			return DecimalPoint(), true
		case c == '=':
			return Equals(), true
		case c == 'n' || c == 'N':
			return Negate(), true
		case c == '%':
			return Percent(), true
		}
		if op, ok := ParseOperator(key); ok {
			return Op(op), true
		}
		return Token{}, false
	}

	switch key {
	case "Enter":
		return Equals(), true
	case "Backspace":
		return Delete(), true
	case "Escape":
		return Clear(), true
	}
	return Token{}, false
}

// ParseLabel decodes a keypad button label, falling back to ParseKey.
func ParseLabel(label string) (Token, bool) {
	switch label {
	case "AC":
		return Clear(), true
	case "DEL":
		return Delete(), true
	case "±":
		return Negate(), true
	case "×":
		return Op(OpMul), true
	case "÷":
		return Op(OpDiv), true
	case "−":
		return Op(OpSub), true
	}
	return ParseKey(label)
}

// ParseSequence decodes whitespace-separated keys or labels. A field that is
// not a key as a whole is decoded rune by rune, so "12+3=" and "1 2 + 3 Enter"
// are equivalent. Fragments that decode to nothing are returned in ignored.
func ParseSequence(seq string) (tokens []Token, ignored []string) {
	for _, field := range strings.Fields(seq) {
		if t, ok := ParseLabel(field); ok {
			tokens = append(tokens, t)
			continue
		}
		for _, r := range field {
			if t, ok := ParseLabel(string(r)); ok {
				tokens = append(tokens, t)
			} else {
				ignored = append(ignored, string(r))
			}
		}
	}
	return tokens, ignored
}
