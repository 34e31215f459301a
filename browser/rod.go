package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// SystemOpener opens URLs in the operating system's default browser.
type SystemOpener struct{}

// Open implements Opener.
func (SystemOpener) Open(u string) error {
	launcher.Open(u)
	return nil
}

// PageFrame is an iframe element in a page controlled through go-rod,
// located by a CSS selector.
type PageFrame struct {
	Page     *rod.Page
	Selector string
}

// SetSrc waits for the element to appear and sets its src attribute.
func (f PageFrame) SetSrc(ctx context.Context, src string) error {
	if f.Page == nil {
		return fmt.Errorf("page frame %q: no page", f.Selector)
	}
	el, err := f.Page.Context(ctx).Element(f.Selector)
	if err != nil {
		return fmt.Errorf("find %q: %w", f.Selector, err)
	}
	if _, err := el.Eval(`(src) => this.setAttribute("src", src)`, src); err != nil {
		return fmt.Errorf("set src on %q: %w", f.Selector, err)
	}
	return nil
}
