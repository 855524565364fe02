package keypad

import (
	"testing"

	"calcpad/internal/calculator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutLabelsDecodeToTheirTokens(t *testing.T) {
	require.Len(t, Layout, 5)
	seen := map[calculator.Token]bool{}
	for _, row := range Layout {
		require.Len(t, row, 4)
		for _, b := range row {
			assert.True(t, b.Token.Valid(), b.Label)
			tok, ok := calculator.ParseLabel(b.Label)
			require.True(t, ok, b.Label)
			assert.Equal(t, b.Token, tok, b.Label)
			seen[b.Token] = true
		}
	}
	assert.Len(t, seen, 20, "every button is distinct")
}

func TestFind(t *testing.T) {
	b, ok := Find("×")
	require.True(t, ok)
	assert.Equal(t, calculator.Op(calculator.OpMul), b.Token)

	_, ok = Find("*")
	assert.False(t, ok)
}

func TestPreviousLine(t *testing.T) {
	s := calculator.Apply(calculator.Initial(),
		calculator.Digit(1), calculator.Digit(2), calculator.Digit(3),
		calculator.Digit(4), calculator.Op(calculator.OpDiv))

	assert.Equal(t, "1,234 ÷", PreviousLine(calculator.Render(s)))
	assert.Equal(t, "", PreviousLine(calculator.Render(calculator.Initial())))

	s = calculator.Apply(s, calculator.Digit(5), calculator.Op(calculator.OpSub))
	assert.Equal(t, "246.8 −", PreviousLine(calculator.Render(s)))
}
