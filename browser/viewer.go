// Package browser opens or embeds PDFs produced by a report build.
//
// It does no HTTP of its own: it rewrites the artifact URL's query and
// fragment and hands the result to a browser, either the system default one
// or a page driven over the DevTools protocol.
package browser

import (
	"context"
	"fmt"
	"net/url"
)

// DefaultFilename is used by Download when no filename is given.
const DefaultFilename = "report.pdf"

// ViewerFragment is set on iframe URLs so PDF viewers open the document
// fitted to width without toolbars.
const ViewerFragment = "zoom=47&toolbar=0&navpanes=0&view=FitH"

// Opener shows a URL to the user, typically in a new browser tab.
type Opener interface {
	Open(url string) error
}

// Frame is an inline frame whose source can be replaced.
type Frame interface {
	SetSrc(ctx context.Context, src string) error
}

// NewTabURL returns a copy of u for opening in a tab. Its query is replaced:
// downloadAs, when non-empty, names the file the browser saves, and
// forceDownload adds download=true so the file is saved instead of shown.
func NewTabURL(u *url.URL, downloadAs string, forceDownload bool) *url.URL {
	out := *u
	q := url.Values{}
	if downloadAs != "" {
		q.Set("downloadAs", downloadAs)
	}
	if forceDownload {
		q.Set("download", "true")
	}
	out.RawQuery = q.Encode()
	return &out
}

// IframeURL returns a copy of u for embedding: the same query rule as
// NewTabURL without forced download, plus ViewerFragment.
func IframeURL(u *url.URL, downloadAs string) *url.URL {
	out := NewTabURL(u, downloadAs, false)
	out.Fragment = ViewerFragment
	out.RawFragment = ""
	return out
}

// Viewer opens report URLs through an Opener.
type Viewer struct {
	opener Opener
}

// NewViewer returns a Viewer using opener, or the system browser when opener
// is nil.
func NewViewer(opener Opener) *Viewer {
	if opener == nil {
		opener = SystemOpener{}
	}
	return &Viewer{opener: opener}
}

// OpenInNewTab opens u in a new tab. See NewTabURL for downloadAs and
// forceDownload.
func (v *Viewer) OpenInNewTab(u *url.URL, downloadAs string, forceDownload bool) error {
	target := NewTabURL(u, downloadAs, forceDownload)
	if err := v.opener.Open(target.String()); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}

// Download opens u with a forced download saved as filename
// (DefaultFilename when empty).
func (v *Viewer) Download(u *url.URL, filename string) error {
	if filename == "" {
		filename = DefaultFilename
	}
	return v.OpenInNewTab(u, filename, true)
}

// OpenInIframe points frame at u. See IframeURL.
func (v *Viewer) OpenInIframe(ctx context.Context, u *url.URL, frame Frame, downloadAs string) error {
	target := IframeURL(u, downloadAs)
	if err := frame.SetSrc(ctx, target.String()); err != nil {
		return fmt.Errorf("set iframe src: %w", err)
	}
	return nil
}
