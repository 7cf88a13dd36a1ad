package screen

import "github.com/pkg/browser"

// BrowserOpener opens URLs in the system browser.
type BrowserOpener struct{}

// Open implements Opener.
func (BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}
