package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/reportobello/reportobello-go/client/internal/types"
)

// SetEnvironmentVariables sends the whole mapping as a single JSON object.
func SetEnvironmentVariables(ctx context.Context, httpClient HTTPClient, baseURL string, vars map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if vars == nil {
		vars = map[string]string{}
	}
	body, err := json.Marshal(vars)
	if err != nil {
		return err
	}
	resp, err := do(ctx, httpClient, OpSetEnvironmentVars, http.MethodPost, baseURL+"/api/v1/env", bytes.NewReader(body), types.ContentTypeJSON)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

// DeleteEnvironmentVariables removes the given keys. Each key is escaped on
// its own and the results are joined with literal commas, so a comma inside a
// key arrives as %2C.
func DeleteEnvironmentVariables(ctx context.Context, httpClient HTTPClient, baseURL string, keys []string) error {
	resp, err := do(ctx, httpClient, OpDeleteEnvironmentVar, http.MethodDelete, baseURL+"/api/v1/env?keys="+joinKeys(keys), nil, "")
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

func joinKeys(keys []string) string {
	escaped := make([]string, len(keys))
	for i, k := range keys {
		escaped[i] = EscapeDataString(k)
	}
	return strings.Join(escaped, ",")
}
