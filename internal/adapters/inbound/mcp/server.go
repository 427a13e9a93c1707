package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/uikraft/internal/bootstrap"
)

// NewUIKraftMCPServer creates an MCP server with every uikraft tool and
// resource registered against app's services.
func NewUIKraftMCPServer(app *bootstrap.App, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"uikraft",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithRecovery(),
	)

	registerTools(s, app)
	registerResources(s, app)

	return s
}
