package browser

import (
	"html/template"
	"net/url"
	"strings"
)

var iframeTmpl = template.Must(template.New("iframe").Parse(
	`<iframe src="{{.}}" width="100%" height="100%" style="border: none;"></iframe>`))

// IframeHTML renders an iframe element showing u, for pages rendered on the
// server instead of patched in a live browser.
func IframeHTML(u *url.URL, downloadAs string) (string, error) {
	var b strings.Builder
	if err := iframeTmpl.Execute(&b, IframeURL(u, downloadAs).String()); err != nil {
		return "", err
	}
	return b.String(), nil
}
