package types

// ------------------------------
// Request Types
// ------------------------------

// ContentTypeJSON is the only data encoding the build endpoint is sent.
const ContentTypeJSON = "application/json"

// ContentTypeTypst is the media type of raw template uploads.
const ContentTypeTypst = "application/x-typst"

// BuildPayload wraps caller data for a build request.
type BuildPayload struct {
	Data        any    `json:"data"`
	ContentType string `json:"content_type"`
}

// NewBuildPayload wraps data with the fixed JSON content type.
func NewBuildPayload(data any) BuildPayload {
	return BuildPayload{Data: data, ContentType: ContentTypeJSON}
}
