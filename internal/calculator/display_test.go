package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderInitial(t *testing.T) {
	assert.Equal(t, Display{Current: "0"}, Render(Initial()))
}

func TestRenderPendingOperator(t *testing.T) {
	s := press(t, Initial(), "1", "2", "3", "4", "*")
	assert.Equal(t, Display{Current: "0", Previous: "1,234 *", Operator: OpMul}, Render(s))

	s = press(t, s, "5")
	assert.Equal(t, Display{Current: "5", Previous: "1,234 *", Operator: OpMul}, Render(s))
}

func TestRenderAfterEquals(t *testing.T) {
	s := press(t, Initial(), "1", "/", "3", "=")
	assert.Equal(t, Display{Current: "0.3333333333"}, Render(s))
}

func TestRenderChainedLeftOperand(t *testing.T) {
	s := press(t, Initial(), "1", "/", "0", "+")
	assert.Equal(t, Display{Current: "0", Previous: "∞ +", Operator: OpAdd}, Render(s))
}
