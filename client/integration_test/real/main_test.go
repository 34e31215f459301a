//go:build integration
// +build integration

package client_test

import (
	"os"
	"testing"

	client "github.com/reportobello/reportobello-go/client"
)

// newLiveClient returns a client for the instance named by REPORTOBELLO_HOST
// (default: the public one), skipping the test when REPORTOBELLO_API_KEY is
// unset.
func newLiveClient(t *testing.T) *client.Client {
	t.Helper()
	key := os.Getenv("REPORTOBELLO_API_KEY")
	if key == "" {
		t.Skip("REPORTOBELLO_API_KEY not set")
	}
	opts := []client.Option{}
	if host := os.Getenv("REPORTOBELLO_HOST"); host != "" {
		opts = append(opts, client.WithBaseURL(host))
	}
	c, err := client.New(key, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}
