package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/reportobello/reportobello-go/client"
	"github.com/rs/zerolog/log"
)

// TemplateHandler exposes upload_template and get_template_versions tools.
type TemplateHandler struct {
	client *client.Client
}

// NewTemplateHandler returns a new handler.
func NewTemplateHandler(c *client.Client) *TemplateHandler {
	return &TemplateHandler{client: c}
}

// RegisterTools registers template tools.
func (th *TemplateHandler) RegisterTools(s *server.MCPServer) error {
	upload := mcp.NewTool("upload_template",
		mcp.WithDescription("Upload Typst source as a new version of a named template"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Template name")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Typst template source")),
	)
	versions := mcp.NewTool("get_template_versions",
		mcp.WithDescription("List all stored versions of a template (name, version, templateContent)"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Template name")),
	)
	s.AddTool(upload, th.handleUploadTemplate)
	s.AddTool(versions, th.handleGetTemplateVersions)
	return nil
}

func (th *TemplateHandler) handleUploadTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("name", name).Int("bytes", len(content)).Msg("upload_template invoked")

	start := time.Now()
	err = th.client.UploadTemplate(ctx, name, content)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("upload_template failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to upload template: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("uploaded template %q", name)), nil
}

func (th *TemplateHandler) handleGetTemplateVersions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("name", name).Msg("get_template_versions invoked")

	start := time.Now()
	versions, err := th.client.GetTemplateVersions(ctx, name)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("get_template_versions failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to get template versions: %v", err)), nil
	}

	b, _ := json.Marshal(versions)
	return mcp.NewToolResultText(string(b)), nil
}
