package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"calcpad/internal/calculator"
)

// PressResult is the JSON answer of calculator.press.
type PressResult struct {
	Session       string   `json:"session,omitempty"`
	Current       string   `json:"current"`
	Previous      string   `json:"previous"`
	Operator      string   `json:"operator"`
	JustEvaluated bool     `json:"just_evaluated"`
	Display       string   `json:"display"`
	DisplayAbove  string   `json:"display_previous,omitempty"`
	Ignored       []string `json:"ignored,omitempty"`
}

func newPressResult(id string, s calculator.State, ignored []string) PressResult {
	d := calculator.Render(s)
	return PressResult{
		Session:       id,
		Current:       s.Current(),
		Previous:      s.Previous(),
		Operator:      s.Operator().Symbol(),
		JustEvaluated: s.JustEvaluated(),
		Display:       d.Current,
		DisplayAbove:  d.Previous,
		Ignored:       ignored,
	}
}

// ValueResult is the JSON answer of calculator.evaluate and calculator.format.
type ValueResult struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
