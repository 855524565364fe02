package mcptools

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/text/language"

	"calcpad/internal/calculator"
)

// FormatTool renders a number the way the calculator display does.
type FormatTool struct{}

func NewFormatTool() *FormatTool {
	return &FormatTool{}
}

// GetTool returns the MCP tool definition
func (t *FormatTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolFormat,
		mcp.WithDescription("Format a number for the calculator display: grouped digits, at most 10 decimals, "+
			"exponential notation for very large or small magnitudes"),
		mcp.WithString("value", mcp.Required(), mcp.Description("Number as a decimal string, or Infinity")),
		mcp.WithString("locale", mcp.Description("BCP 47 tag used for digit grouping, default en-US. "+
			"The decimal separator is always '.', so locales grouping with '.' are refused")),
	)
}

// Handle processes the tool request
func (t *FormatTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value := strings.TrimSpace(mcp.ParseString(req, "value", ""))
	if value == "" {
		return mcp.NewToolResultError("value parameter is required"), nil
	}

	v := calculator.NumericValue(value)
	if math.IsNaN(v) {
		return mcp.NewToolResultError(fmt.Sprintf("value is not a number: %q", value)), nil
	}

	display := calculator.Format(v)
	if locale := mcp.ParseString(req, "locale", ""); locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid locale %q: %v", locale, err)), nil
		}
		f := calculator.NewFormatter(tag)
		if f.GroupSeparator() == "." {
			return mcp.NewToolResultError(fmt.Sprintf("Locale %q groups digits with '.', which is the decimal separator", locale)), nil
		}
		display = f.Format(v)
	}

	return jsonResult(ValueResult{
		Value:   calculator.Stringify(v),
		Display: display,
	})
}
