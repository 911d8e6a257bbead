package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/prmate/prmate/internal/i18n"
	"github.com/prmate/prmate/internal/models"
	"github.com/prmate/prmate/internal/version"
)

// prAgent defines the operations the server exposes as tools.
type prAgent interface {
	Review(ctx context.Context, rawRef string) (models.ReviewResult, error)
	FindBugs(ctx context.Context, rawRef string) (models.ReviewResult, error)
	Describe(ctx context.Context, rawRef string) (models.PRSummary, error)
	Improve(ctx context.Context, rawRef string) (string, *models.TokenUsage, error)
	Ask(ctx context.Context, rawRef, question string) (string, *models.TokenUsage, error)
}

// Server is the MCP server exposing pull request analysis tools.
type Server struct {
	server *server.MCPServer
	agent  prAgent
	trans  *i18n.Translations
}

func NewServer(agent prAgent, trans *i18n.Translations) *Server {
	s := &Server{
		agent: agent,
		trans: trans,
	}

	mcpServer := server.NewMCPServer(
		"prmate",
		version.Version,
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)
	registerTools(mcpServer, s)
	registerPrompts(mcpServer)

	s.server = mcpServer
	return s
}

// Run serves MCP over stdio until the client disconnects.
func (s *Server) Run() error {
	return server.ServeStdio(s.server)
}

// RunSSE serves MCP over SSE on the given listen address.
func (s *Server) RunSSE(addr string) error {
	sse := server.NewSSEServer(s.server)
	return sse.Start(addr)
}

func registerTools(mcpServer *server.MCPServer, s *Server) {
	mcpServer.AddTools(s.initTools()...)
}

func newServerTool(tool mcp.Tool, handler server.ToolHandlerFunc) server.ServerTool {
	return server.ServerTool{
		Tool:    tool,
		Handler: handler,
	}
}
