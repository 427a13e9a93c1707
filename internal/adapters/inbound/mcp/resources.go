package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/uikraft/internal/bootstrap"
	"github.com/openkraft/uikraft/internal/domain"
)

const (
	uriDefaultTokens = "uikraft://tokens/default"
	uriHistory       = "uikraft://history"
)

// registerResources registers all uikraft MCP resources on the given server.
func registerResources(s *server.MCPServer, app *bootstrap.App) {
	// 1. built-in design tokens
	s.AddResource(
		mcplib.NewResource(
			uriDefaultTokens,
			"Default Design Tokens",
			mcplib.WithResourceDescription("Built-in color, typography and spacing tokens used when none are configured"),
			mcplib.WithMIMEType("application/json"),
		),
		handleDefaultTokensResource(),
	)

	// 2. suite run history
	s.AddResource(
		mcplib.NewResource(
			uriHistory,
			"Run History",
			mcplib.WithResourceDescription("Past validate-all runs for this project, oldest first"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(app),
	)
}

func handleDefaultTokensResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonResource(uriDefaultTokens, domain.DefaultDesignTokens())
	}
}

func handleHistoryResource(app *bootstrap.App) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := app.History.Load(app.ProjectPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		if entries == nil {
			entries = []domain.RunEntry{}
		}
		return jsonResource(uriHistory, entries)
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
