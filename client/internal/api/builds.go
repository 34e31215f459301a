package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	sdkerrors "github.com/reportobello/reportobello-go/client/internal/errors"
	"github.com/reportobello/reportobello-go/client/internal/types"
)

// buildQuery returns the flag-only query of a build request. justUrl is
// always present; preview only when asked for. Flags carry empty values.
func buildQuery(preview bool) string {
	q := url.Values{"justUrl": {""}}
	if preview {
		q.Set("preview", "")
	}
	return q.Encode()
}

// RunReport builds the named template with data and returns the URL of the
// rendered PDF. The service is always asked for the URL only.
func RunReport(ctx context.Context, httpClient HTTPClient, baseURL, templateName string, data any, preview bool) (*url.URL, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(types.NewBuildPayload(data))
	if err != nil {
		return nil, err
	}
	u := templateURL(baseURL, templateName) + "/build?" + buildQuery(preview)

	resp, err := do(ctx, httpClient, OpRunReport, http.MethodPost, u, bytes.NewReader(payload), types.ContentTypeJSON)
	if err != nil {
		return nil, err
	}
	body, err := readText(resp)
	if err != nil {
		return nil, err
	}

	out, err := url.Parse(strings.TrimSpace(body))
	if err != nil {
		return nil, sdkerrors.NewDecodeError("run report", body, err)
	}
	if !out.IsAbs() || out.Host == "" {
		return nil, sdkerrors.NewDecodeError("run report", body, fmt.Errorf("not an absolute URL: %q", body))
	}
	return out, nil
}
