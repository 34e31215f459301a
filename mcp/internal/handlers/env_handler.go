package handlers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/reportobello/reportobello-go/client"
	"github.com/rs/zerolog/log"
)

// EnvHandler exposes tools for the account's template environment variables.
type EnvHandler struct {
	client *client.Client
}

// NewEnvHandler returns a new handler.
func NewEnvHandler(c *client.Client) *EnvHandler { return &EnvHandler{client: c} }

// RegisterTools registers environment variable tools.
func (eh *EnvHandler) RegisterTools(s *server.MCPServer) error {
	set := mcp.NewTool("set_environment_variables",
		mcp.WithDescription("Create or overwrite environment variables available to every template"),
		mcp.WithObject("variables", mcp.Required(), mcp.Description("Object mapping variable names to string values")),
	)
	del := mcp.NewTool("delete_environment_variables",
		mcp.WithDescription("Delete environment variables by name; unknown names are ignored by the server"),
		mcp.WithArray("keys", mcp.Required(), mcp.Description("Variable names to delete"),
			mcp.Items(map[string]any{"type": "string"})),
	)
	s.AddTool(set, eh.handleSetEnv)
	s.AddTool(del, eh.handleDeleteEnv)
	return nil
}

func (eh *EnvHandler) handleSetEnv(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["variables"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("variables must be an object"), nil
	}
	vars := make(map[string]string, len(raw))
	for k, v := range raw {
		switch tv := v.(type) {
		case string:
			vars[k] = tv
		case nil:
			return mcp.NewToolResultError(fmt.Sprintf("variable %q has no value", k)), nil
		default:
			vars[k] = fmt.Sprint(tv)
		}
	}

	log.Debug().Int("count", len(vars)).Msg("set_environment_variables invoked")

	start := time.Now()
	err := eh.client.SetEnvironmentVariables(ctx, vars)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("set_environment_variables failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to set environment variables: %v", err)), nil
	}

	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return mcp.NewToolResultText(fmt.Sprintf("set %d variable(s): %v", len(names), names)), nil
}

func (eh *EnvHandler) handleDeleteEnv(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["keys"].([]any)
	if !ok {
		return mcp.NewToolResultError("keys must be an array of strings"), nil
	}
	keys := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return mcp.NewToolResultError("keys must be an array of strings"), nil
		}
		keys = append(keys, s)
	}

	log.Debug().Strs("keys", keys).Msg("delete_environment_variables invoked")

	start := time.Now()
	err := eh.client.DeleteEnvironmentVariables(ctx, keys)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("delete_environment_variables failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete environment variables: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted %d variable(s)", len(keys))), nil
}
