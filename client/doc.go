// Package client is a Go SDK for the Reportobello report-rendering service.
//
// It uploads Typst templates, manages the environment variables available
// while rendering, and triggers builds that return the URL of the produced
// PDF:
//
//	c, err := client.New(os.Getenv("REPORTOBELLO_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := c.UploadTemplateFile(ctx, "invoice", "invoice.typ"); err != nil {
//	    log.Fatal(err)
//	}
//	pdf, err := c.RunReport(ctx, "invoice", map[string]any{"total": 42}, false)
//
// Every operation issues exactly one HTTP request. Nothing is cached, queued
// or retried. A non-2xx response becomes an *APIError whose message is the
// response body; transport errors are returned unchanged.
package client
