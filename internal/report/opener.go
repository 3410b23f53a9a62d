package report

import (
	"fmt"
	"log/slog"

	"github.com/pkg/browser"
)

type Opener interface {
	Open(path string) error
}

type OpenerFunc func(path string) error

func (f OpenerFunc) Open(path string) error {
	return f(path)
}

// BrowserOpener opens a local file in the user's default browser.
type BrowserOpener struct{}

func (BrowserOpener) Open(path string) error {
	if err := browser.OpenFile(path); err != nil {
		return fmt.Errorf("[Report] failed to open %s: %w", path, err)
	}
	return nil
}

// NoopOpener logs the path instead of launching anything.
type NoopOpener struct{}

func (NoopOpener) Open(path string) error {
	slog.Info("[Report] Open the report manually", slog.String("path", path))
	return nil
}
