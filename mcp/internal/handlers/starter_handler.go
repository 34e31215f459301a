package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/reportobello/reportobello-go/client/starters"
)

// StarterHandler exposes the embedded starter templates. It needs no client.
type StarterHandler struct{}

// NewStarterHandler returns a new handler.
func NewStarterHandler() *StarterHandler { return &StarterHandler{} }

type starterTemplate struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// RegisterTools registers starter tools.
func (sh *StarterHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_starter_templates",
		mcp.WithDescription("List built-in Typst starter templates with their source; upload one with upload_template"),
	)
	s.AddTool(list, sh.handleListStarters)
	return nil
}

func (sh *StarterHandler) handleListStarters(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := starters.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list starters: %v", err)), nil
	}
	out := make([]starterTemplate, 0, len(names))
	for _, n := range names {
		content, err := starters.Load(n)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load starter %s: %v", n, err)), nil
		}
		out = append(out, starterTemplate{Name: n, Content: content})
	}
	b, _ := json.Marshal(out)
	return mcp.NewToolResultText(string(b)), nil
}
