package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	sdkerrors "github.com/reportobello/reportobello-go/client/internal/errors"
	"github.com/reportobello/reportobello-go/client/internal/types"
)

// UploadTemplate stores content as a new version of the named template. The
// body is sent unaltered.
func UploadTemplate(ctx context.Context, httpClient HTTPClient, baseURL, name, content string) error {
	resp, err := do(ctx, httpClient, OpUploadTemplate, http.MethodPost, templateURL(baseURL, name), strings.NewReader(content), types.ContentTypeTypst)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

// GetTemplateVersions lists the stored versions of a template in the order
// the service returns them.
func GetTemplateVersions(ctx context.Context, httpClient HTTPClient, baseURL, name string) ([]types.Template, error) {
	resp, err := do(ctx, httpClient, OpGetTemplateVersions, http.MethodGet, templateURL(baseURL, name), nil, "")
	if err != nil {
		return nil, err
	}
	body, err := readText(resp)
	if err != nil {
		return nil, err
	}

	var versions []types.Template
	if err := json.Unmarshal([]byte(body), &versions); err != nil {
		return nil, sdkerrors.NewDecodeError("get template versions", body, err)
	}
	return versions, nil
}
