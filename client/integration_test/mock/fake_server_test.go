package client_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

type storedTemplate struct {
	Name            string `json:"name"`
	TemplateContent string `json:"templateContent"`
	Version         int    `json:"version"`
}

type buildRequest struct {
	Template string
	Preview  bool
	Data     json.RawMessage
}

// fakeReportobello keeps templates, env vars and builds in memory and speaks
// enough of the REST API for the client to run end to end.
type fakeReportobello struct {
	*httptest.Server
	apiKey string

	mu        sync.Mutex
	templates map[string][]storedTemplate
	env       map[string]string
	builds    []buildRequest
}

func newFakeReportobello(t *testing.T, apiKey string) *fakeReportobello {
	t.Helper()
	f := &fakeReportobello{
		apiKey:    apiKey,
		templates: map[string][]storedTemplate{},
		env:       map[string]string{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/template/", f.handleTemplate)
	mux.HandleFunc("/api/v1/env", f.handleEnv)
	f.Server = httptest.NewServer(f.auth(mux))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeReportobello) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.apiKey {
			http.Error(w, "invalid API key", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeReportobello) handleTemplate(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.EscapedPath(), "/api/v1/template/")
	escaped, isBuild := strings.CutSuffix(rest, "/build")
	name, err := url.PathUnescape(escaped)
	if err != nil || name == "" || strings.Contains(escaped, "/") {
		http.Error(w, "bad template name", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case isBuild && r.Method == http.MethodPost:
		if len(f.templates[name]) == 0 {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		var payload struct {
			Data        json.RawMessage `json:"data"`
			ContentType string          `json:"content_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ContentType != "application/json" {
			http.Error(w, "bad build payload", http.StatusUnprocessableEntity)
			return
		}
		q := r.URL.Query()
		_, preview := q["preview"]
		f.builds = append(f.builds, buildRequest{Template: name, Preview: preview, Data: payload.Data})
		fmt.Fprintf(w, "%s/api/v1/files/%d-%s.pdf\n", f.URL, len(f.builds), url.PathEscape(name))

	case r.Method == http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		versions := f.templates[name]
		f.templates[name] = append(versions, storedTemplate{Name: name, TemplateContent: string(body), Version: len(versions) + 1})

	case r.Method == http.MethodGet:
		versions := f.templates[name]
		if len(versions) == 0 {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		out := make([]storedTemplate, 0, len(versions))
		for i := len(versions) - 1; i >= 0; i-- {
			out = append(out, versions[i])
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeReportobello) handleEnv(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPost:
		var vars map[string]string
		if err := json.NewDecoder(r.Body).Decode(&vars); err != nil {
			http.Error(w, "bad env payload", http.StatusUnprocessableEntity)
			return
		}
		for k, v := range vars {
			f.env[k] = v
		}
	case http.MethodDelete:
		raw := strings.TrimPrefix(r.URL.RawQuery, "keys=")
		if raw == "" {
			return
		}
		for _, k := range strings.Split(raw, ",") {
			key, err := url.QueryUnescape(k)
			if err != nil {
				http.Error(w, "bad key", http.StatusBadRequest)
				return
			}
			delete(f.env, key)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeReportobello) envSnapshot() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.env))
	for k, v := range f.env {
		out[k] = v
	}
	return out
}

func (f *fakeReportobello) buildSnapshot() []buildRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]buildRequest(nil), f.builds...)
}
