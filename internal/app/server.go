package app

import (
	"context"
	"errors"
	"io"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"html2doc/internal/infra/logging"
)

// NewServer creates an MCP server exposing tools.
func NewServer(name, version, instructions string, tools ...server.ServerTool) *server.MCPServer {
	hooks := &server.Hooks{}
	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		logging.Warn("Request failed", "method", string(method), "id", id, "error", err)
	})

	srv := server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions),
		server.WithHooks(hooks),
	)
	srv.AddTools(tools...)

	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Tool.Name)
	}
	logging.Info("MCP server configured", "name", name, "version", version, "tools", strings.Join(names, ","))
	return srv
}

// Serve runs the stdio loop until stdin closes, ctx ends or SIGINT/SIGTERM
// arrives. A signal or EOF is a clean stop.
func Serve(ctx context.Context, srv *server.MCPServer, stdin io.Reader, stdout io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stdio := server.NewStdioServer(srv)
	stdio.SetErrorLogger(log.New(transportLog{}, "", 0))

	logging.Info("Listening on stdio")
	err := stdio.Listen(ctx, stdin, stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error("Server error", "error", err)
		return err
	}
	if ctx.Err() != nil {
		logging.Warn("Shutdown signal received, stopping server")
	}
	logging.Info("Server stopped cleanly")
	return nil
}

// transportLog routes the stdio transport's own messages into the process
// logger so nothing but protocol frames reaches stdout.
type transportLog struct{}

func (transportLog) Write(p []byte) (int, error) {
	logging.Error("MCP transport error", "detail", strings.TrimSpace(string(p)))
	return len(p), nil
}
