package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"calcpad/internal/calculator"
	"calcpad/internal/session"
)

// PressTool replays keys on a calculator, either a throwaway one or a named
// session that keeps its state between calls.
type PressTool struct {
	store  *session.Store
	logger *zap.Logger
}

func NewPressTool(store *session.Store, logger *zap.Logger) *PressTool {
	return &PressTool{store: store, logger: logger}
}

// GetTool returns the MCP tool definition
func (t *PressTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolPress,
		mcp.WithDescription("Press calculator keys in order and return the resulting display. "+
			"Keys: digits, '.', + - * /, = or Enter, Backspace, Escape (clear), n (negate), %."),
		mcp.WithString("keys", mcp.Required(), mcp.Description("Keys to press, e.g. \"12*3=\" or \"1 2 + 3 Enter\"")),
		mcp.WithString("session", mcp.Description("Session name; state persists across calls with the same name")),
	)
}

// Handle processes the tool request
func (t *PressTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys := mcp.ParseString(req, "keys", "")
	if keys == "" {
		return mcp.NewToolResultError("keys parameter is required"), nil
	}

	tokens, ignored := calculator.ParseSequence(keys)
	id := mcp.ParseString(req, "session", "")
	if id == "" {
		return jsonResult(newPressResult("", calculator.Apply(calculator.Initial(), tokens...), ignored))
	}

	state, err := t.store.Apply(id, tokens...)
	if errors.Is(err, session.ErrNotFound) {
		if _, err = t.store.Open(id); err == nil {
			state, err = t.store.Apply(id, tokens...)
		}
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update session %q: %v", id, err)), nil
	}

	t.logger.Debug("session keys applied",
		zap.String("session", id),
		zap.Int("tokens", len(tokens)),
		zap.Strings("ignored", ignored),
		zap.String("current", state.Current()),
	)
	return jsonResult(newPressResult(id, state, ignored))
}
