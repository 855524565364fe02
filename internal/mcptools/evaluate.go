package mcptools

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"calcpad/internal/calculator"
)

// EvaluateTool applies one binary operation with the calculator's rounding.
type EvaluateTool struct{}

func NewEvaluateTool() *EvaluateTool {
	return &EvaluateTool{}
}

// GetTool returns the MCP tool definition
func (t *EvaluateTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolEvaluate,
		mcp.WithDescription("Evaluate a op b, rounded to 15 significant digits. Division by zero gives Infinity."),
		mcp.WithString("a", mcp.Required(), mcp.Description("Left operand as a decimal string")),
		mcp.WithString("b", mcp.Required(), mcp.Description("Right operand as a decimal string")),
		mcp.WithString("operator", mcp.Required(), mcp.Description("One of + - * /"),
			mcp.Enum("+", "-", "*", "/")),
	)
}

// Handle processes the tool request
func (t *EvaluateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := strings.TrimSpace(mcp.ParseString(req, "a", ""))
	b := strings.TrimSpace(mcp.ParseString(req, "b", ""))
	for _, operand := range []struct{ name, value string }{{"a", a}, {"b", b}} {
		if operand.value == "" {
			return mcp.NewToolResultError(operand.name + " parameter is required"), nil
		}
		if math.IsNaN(calculator.NumericValue(operand.value)) {
			return mcp.NewToolResultError(fmt.Sprintf("%s is not a number: %q", operand.name, operand.value)), nil
		}
	}

	op, ok := calculator.ParseOperator(mcp.ParseString(req, "operator", ""))
	if !ok {
		return mcp.NewToolResultError("operator must be one of + - * /"), nil
	}

	result := calculator.Evaluate(a, b, op)
	return jsonResult(ValueResult{
		Value:   calculator.Stringify(result),
		Display: calculator.Format(result),
	})
}
