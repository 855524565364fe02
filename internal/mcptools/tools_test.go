package mcptools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"calcpad/internal/session"
)

func request(arguments map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = arguments
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func decode(t *testing.T, res *mcp.CallToolResult, dst any) {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), dst))
}

func newStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore(time.Minute, time.Hour)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPressWithoutSession(t *testing.T) {
	tool := NewPressTool(newStore(t), zap.NewNop())

	res, err := tool.Handle(context.Background(), request(map[string]interface{}{"keys": "1/3="}))
	require.NoError(t, err)

	var got PressResult
	decode(t, res, &got)
	assert.Equal(t, "0.333333333333333", got.Current)
	assert.Equal(t, "0.3333333333", got.Display)
	assert.True(t, got.JustEvaluated)
	assert.Empty(t, got.Session)
}

func TestPressReportsIgnoredKeys(t *testing.T) {
	tool := NewPressTool(newStore(t), zap.NewNop())

	res, err := tool.Handle(context.Background(), request(map[string]interface{}{"keys": "12 sqrt +"}))
	require.NoError(t, err)

	var got PressResult
	decode(t, res, &got)
	assert.Equal(t, "12", got.Previous)
	assert.Equal(t, "+", got.Operator)
	assert.Equal(t, "12 +", got.DisplayAbove)
	assert.Equal(t, []string{"s", "q", "r", "t"}, got.Ignored)
}

func TestPressKeepsSessionState(t *testing.T) {
	store := newStore(t)
	tool := NewPressTool(store, zap.NewNop())
	ctx := context.Background()

	_, err := tool.Handle(ctx, request(map[string]interface{}{"keys": "12*", "session": "work"}))
	require.NoError(t, err)
	res, err := tool.Handle(ctx, request(map[string]interface{}{"keys": "3 Enter", "session": "work"}))
	require.NoError(t, err)

	var got PressResult
	decode(t, res, &got)
	assert.Equal(t, "work", got.Session)
	assert.Equal(t, "36", got.Current)
	assert.Equal(t, 1, store.Len())
}

func TestPressRequiresKeys(t *testing.T) {
	tool := NewPressTool(newStore(t), zap.NewNop())

	res, err := tool.Handle(context.Background(), request(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestPressOnClosedStore(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Close())
	tool := NewPressTool(store, zap.NewNop())

	res, err := tool.Handle(context.Background(), request(map[string]interface{}{"keys": "1", "session": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "session store closed")
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		arguments   map[string]interface{}
		wantValue   string
		wantDisplay string
	}{
		{"noise is rounded away", map[string]interface{}{"a": "0.1", "b": "0.2", "operator": "+"}, "0.3", "0.3"},
		{"grouping", map[string]interface{}{"a": "1234", "b": "1000", "operator": "*"}, "1234000", "1,234,000"},
		{"division by zero", map[string]interface{}{"a": "-7", "b": "0", "operator": "/"}, "Infinity", "∞"},
	}

	tool := NewEvaluateTool()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tool.Handle(context.Background(), request(tt.arguments))
			require.NoError(t, err)

			var got ValueResult
			decode(t, res, &got)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantDisplay, got.Display)
		})
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	tool := NewEvaluateTool()

	for _, args := range []map[string]interface{}{
		{"a": "1", "operator": "+"},
		{"a": "one", "b": "1", "operator": "+"},
		{"a": "1", "b": "1", "operator": "^"},
	} {
		res, err := tool.Handle(context.Background(), request(args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "%v", args)
	}
}

func TestFormat(t *testing.T) {
	tool := NewFormatTool()

	tests := []struct {
		arguments   map[string]interface{}
		wantDisplay string
	}{
		{map[string]interface{}{"value": "1234567.25"}, "1,234,567.25"},
		{map[string]interface{}{"value": "1234567.5", "locale": "en-GB"}, "1,234,567.5"},
		{map[string]interface{}{"value": "1e12"}, "1.000000e12"},
		{map[string]interface{}{"value": "Infinity"}, "∞"},
	}
	for _, tt := range tests {
		res, err := tool.Handle(context.Background(), request(tt.arguments))
		require.NoError(t, err)

		var got ValueResult
		decode(t, res, &got)
		assert.Equal(t, tt.wantDisplay, got.Display)
	}

	for _, args := range []map[string]interface{}{
		{"value": "abc"},
		{"value": "1", "locale": "!!"},
		{"value": "1234567.5", "locale": "de-DE"},
		{},
	} {
		res, err := tool.Handle(context.Background(), request(args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "%v", args)
	}
}

func TestServerListsTools(t *testing.T) {
	s := NewServer(newStore(t), zap.NewNop())
	ctx := context.Background()

	s.MCPServer().HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`))
	resp := s.MCPServer().HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var body struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))

	var names []string
	for _, tool := range body.Result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{ToolPress, ToolEvaluate, ToolFormat}, names)
}
