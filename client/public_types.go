package client

import "github.com/reportobello/reportobello-go/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Template is one stored version of a report template.
	Template = types.Template

	// BuildPayload is the JSON body of a build request.
	BuildPayload = types.BuildPayload
)

// Errors re-exported in errors.go
