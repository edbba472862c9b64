// Package mcpserver exposes the transpiler as a Model Context Protocol tool
// over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/calumari/ts2mbt/internal/generator"
	"github.com/calumari/ts2mbt/internal/tsast"
)

// ToolName is the name of the transpile tool.
const ToolName = "transpile_typescript"

// MCPServer serves the transpile tool.
type MCPServer struct {
	mode   tsast.Mode
	log    *zap.SugaredLogger
	server *server.MCPServer
}

// New creates the server and registers its tools. version is reported to
// clients during initialization.
func New(version string, mode tsast.Mode, log *zap.SugaredLogger) *MCPServer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &MCPServer{mode: mode, log: log}
	s.server = server.NewMCPServer(
		"ts2mbt",
		version,
		server.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

func (s *MCPServer) registerTools() {
	tool := mcp.NewTool(ToolName,
		mcp.WithDescription("Transpile TypeScript declarations (interfaces, type aliases) into MoonBit structs, enums and extern \"js\" bindings"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("TypeScript source text"),
		),
		mcp.WithString("mode",
			mcp.Description("Traversal mode: named (default) or all"),
		),
	)
	s.server.AddTool(tool, s.handleTranspile)
}

// handleTranspile handles transpile_typescript tool calls.
func (s *MCPServer) handleTranspile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode := s.mode
	if name := request.GetString("mode", ""); name != "" {
		m, ok := tsast.ParseMode(name)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown mode %q, use named or all", name)), nil
		}
		mode = m
	}

	res, err := generator.TranspileSource(ctx, "source.ts", []byte(source),
		generator.WithMode(mode), generator.WithLogger(s.log))
	switch {
	case err == nil:
	case generator.IsSyntaxError(err):
		s.log.Debugw("mcp source had syntax errors", "error", err)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("transpile failed: %v", err)), nil
	}

	if strings.TrimSpace(res.Code) == "" {
		return mcp.NewToolResultText("No declarations to generate"), nil
	}
	text := res.Code
	if err != nil {
		text = "// warning: " + err.Error() + "\n" + text
	}
	return mcp.NewToolResultText(text), nil
}

// Serve runs the server on stdin/stdout until the client disconnects.
func (s *MCPServer) Serve() error {
	return server.ServeStdio(s.server)
}
