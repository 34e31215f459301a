package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/reportobello/reportobello-go/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	body   string
}

type recorder struct {
	mu   sync.Mutex
	reqs []recorded
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.reqs...)
}

// newStub starts a backend answering every request with status and body and
// recording what it saw.
func newStub(t *testing.T, status int, body string) (*client.Client, *recorder) {
	t.Helper()
	seen := &recorder{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen.mu.Lock()
		seen.reqs = append(seen.reqs, recorded{r.Method, r.URL.EscapedPath(), r.URL.RawQuery, string(b)})
		seen.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	sdk, err := client.New("rpbl_test", client.WithBaseURL(ts.URL))
	require.NoError(t, err)
	return sdk, seen
}

func callReq(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	txt, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "unexpected content type %T", res.Content[0])
	return txt.Text
}

func TestRegisterTools(t *testing.T) {
	sdk, _ := newStub(t, http.StatusOK, "")
	s := server.NewMCPServer("test", "0.0.0", server.WithToolCapabilities(true))

	for _, h := range []interface{ RegisterTools(*server.MCPServer) error }{
		NewTemplateHandler(sdk),
		NewEnvHandler(sdk),
		NewBuildHandler(sdk),
		NewStarterHandler(),
	} {
		require.NoError(t, h.RegisterTools(s))
	}
}

func TestUploadTemplateTool(t *testing.T) {
	sdk, seen := newStub(t, http.StatusOK, "")
	th := NewTemplateHandler(sdk)

	res, err := th.handleUploadTemplate(context.Background(), callReq(map[string]any{
		"name":    "q3 report",
		"content": "= Hello",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError, resultText(t, res))

	require.Len(t, seen.all(), 1)
	got := seen.all()[0]
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/v1/template/q3%20report", got.path)
	assert.Equal(t, "= Hello", got.body)
}

func TestUploadTemplateTool_MissingArgument(t *testing.T) {
	sdk, seen := newStub(t, http.StatusOK, "")
	th := NewTemplateHandler(sdk)

	res, err := th.handleUploadTemplate(context.Background(), callReq(map[string]any{"name": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Empty(t, seen.all())
}

func TestGetTemplateVersionsTool(t *testing.T) {
	sdk, _ := newStub(t, http.StatusOK, `[{"name":"invoice","templateContent":"= A","version":2},{"name":"invoice","templateContent":"= B","version":1}]`)
	th := NewTemplateHandler(sdk)

	res, err := th.handleGetTemplateVersions(context.Background(), callReq(map[string]any{"name": "invoice"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got []client.Template
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, []client.Template{
		{Name: "invoice", TemplateContent: "= A", Version: 2},
		{Name: "invoice", TemplateContent: "= B", Version: 1},
	}, got)
}

func TestGetTemplateVersionsTool_APIError(t *testing.T) {
	sdk, _ := newStub(t, http.StatusNotFound, "template not found")
	th := NewTemplateHandler(sdk)

	res, err := th.handleGetTemplateVersions(context.Background(), callReq(map[string]any{"name": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "template not found")
}

func TestSetEnvironmentVariablesTool(t *testing.T) {
	sdk, seen := newStub(t, http.StatusOK, "")
	eh := NewEnvHandler(sdk)

	res, err := eh.handleSetEnv(context.Background(), callReq(map[string]any{
		"variables": map[string]any{"COMPANY": "Acme", "YEAR": float64(2024)},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	require.Len(t, seen.all(), 1)
	assert.Equal(t, "/api/v1/env", seen.all()[0].path)
	assert.JSONEq(t, `{"COMPANY":"Acme","YEAR":"2024"}`, seen.all()[0].body)
}

func TestSetEnvironmentVariablesTool_NotAnObject(t *testing.T) {
	sdk, seen := newStub(t, http.StatusOK, "")
	eh := NewEnvHandler(sdk)

	res, err := eh.handleSetEnv(context.Background(), callReq(map[string]any{"variables": "A=1"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Empty(t, seen.all())
}

func TestDeleteEnvironmentVariablesTool(t *testing.T) {
	sdk, seen := newStub(t, http.StatusOK, "")
	eh := NewEnvHandler(sdk)

	res, err := eh.handleDeleteEnv(context.Background(), callReq(map[string]any{
		"keys": []any{"a", "b,c"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	require.Len(t, seen.all(), 1)
	assert.Equal(t, http.MethodDelete, seen.all()[0].method)
	assert.Equal(t, "keys=a,b%2Cc", seen.all()[0].query)

	res, err = eh.handleDeleteEnv(context.Background(), callReq(map[string]any{"keys": []any{1}}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Len(t, seen.all(), 1)
}

func TestRunReportTool(t *testing.T) {
	sdk, seen := newStub(t, http.StatusOK, "https://reportobello.com/api/v1/files/1-invoice.pdf\n")
	bh := NewBuildHandler(sdk)

	res, err := bh.handleRunReport(context.Background(), callReq(map[string]any{
		"template_name": "invoice",
		"data":          map[string]any{"total": 10},
		"preview":       true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, "https://reportobello.com/api/v1/files/1-invoice.pdf", resultText(t, res))

	require.Len(t, seen.all(), 1)
	got := seen.all()[0]
	assert.Equal(t, "/api/v1/template/invoice/build", got.path)
	assert.Equal(t, "justUrl=&preview=", got.query)
	assert.JSONEq(t, `{"data":{"total":10},"content_type":"application/json"}`, got.body)
}

func TestRunReportTool_DefaultsToEmptyData(t *testing.T) {
	sdk, seen := newStub(t, http.StatusOK, "https://example.com/a.pdf")
	bh := NewBuildHandler(sdk)

	res, err := bh.handleRunReport(context.Background(), callReq(map[string]any{"template_name": "invoice"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "justUrl=", seen.all()[0].query)
	assert.JSONEq(t, `{"data":{},"content_type":"application/json"}`, seen.all()[0].body)
}

func TestRunReportTool_ServerError(t *testing.T) {
	sdk, _ := newStub(t, http.StatusInternalServerError, "typst compile error")
	bh := NewBuildHandler(sdk)

	res, err := bh.handleRunReport(context.Background(), callReq(map[string]any{"template_name": "broken"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.True(t, strings.HasSuffix(resultText(t, res), "typst compile error"))
}

func TestListStarterTemplatesTool(t *testing.T) {
	sh := NewStarterHandler()

	res, err := sh.handleListStarters(context.Background(), callReq(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got []starterTemplate
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "invoice", got[0].Name)
	assert.Equal(t, "letter", got[1].Name)
	assert.NotEmpty(t, got[0].Content)
}
