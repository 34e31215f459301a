package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// Template is one stored version of a report template. The service owns it;
// the SDK only ever reads it.
type Template struct {
	Name            string `json:"name"`
	TemplateContent string `json:"templateContent"`
	Version         int    `json:"version"`
}
