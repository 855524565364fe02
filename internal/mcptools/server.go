// Package mcptools exposes the calculator as Model Context Protocol tools.
package mcptools

import (
	"context"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"calcpad/internal/session"
)

const (
	ServerName    = "calcpad"
	ServerVersion = "0.1.0"
)

// Server is the calculator MCP server.
type Server struct {
	mcpServer *server.MCPServer
	store     *session.Store
	logger    *zap.Logger
}

func NewServer(store *session.Store, logger *zap.Logger) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(ServerName, ServerVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		store:  store,
		logger: logger,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	pressTool := NewPressTool(s.store, s.logger)
	s.mcpServer.AddTool(pressTool.GetTool(), pressTool.Handle)

	evaluateTool := NewEvaluateTool()
	s.mcpServer.AddTool(evaluateTool.GetTool(), evaluateTool.Handle)

	formatTool := NewFormatTool()
	s.mcpServer.AddTool(formatTool.GetTool(), formatTool.Handle)
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Serve speaks MCP over in and out until ctx ends or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))

	s.logger.Info("serving MCP over stdio", zap.String("server", ServerName))
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}
	return nil
}
