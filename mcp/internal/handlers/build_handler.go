package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/reportobello/reportobello-go/client"
	"github.com/rs/zerolog/log"
)

// BuildHandler exposes the run_report tool.
type BuildHandler struct {
	client *client.Client
}

// NewBuildHandler returns a new handler.
func NewBuildHandler(c *client.Client) *BuildHandler { return &BuildHandler{client: c} }

// RegisterTools registers build tools.
func (bh *BuildHandler) RegisterTools(s *server.MCPServer) error {
	run := mcp.NewTool("run_report",
		mcp.WithDescription("Render a template with JSON data to PDF; returns the URL of the generated file"),
		mcp.WithString("template_name", mcp.Required(), mcp.Description("Template name")),
		mcp.WithObject("data", mcp.Description("JSON object exposed to the template as data.json")),
		mcp.WithBoolean("preview", mcp.Description("Build a preview instead of a stored report")),
	)
	s.AddTool(run, bh.handleRunReport)
	return nil
}

func (bh *BuildHandler) handleRunReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("template_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := req.GetArguments()
	data := args["data"]
	if data == nil {
		data = map[string]any{}
	}
	preview, _ := args["preview"].(bool)

	log.Debug().Str("template_name", name).Bool("preview", preview).Msg("run_report invoked")

	start := time.Now()
	u, err := bh.client.RunReport(ctx, name, data, preview)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("run_report failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to run report: %v", err)), nil
	}
	log.Debug().Dur("elapsed", elapsed).Str("url", u.String()).Msg("run_report done")
	return mcp.NewToolResultText(u.String()), nil
}
