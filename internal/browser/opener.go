// Package browser opens URLs in the user's default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener opens a URL in the default browser
type Opener interface {
	Open(url string) error
}

// DefaultOpener shells out to the platform URL handler
type DefaultOpener struct{}

// NewDefaultOpener creates the platform opener
func NewDefaultOpener() *DefaultOpener {
	return &DefaultOpener{}
}

// Open launches the default browser at the given URL without waiting for it
func (o *DefaultOpener) Open(url string) error {
	name, args := openCommand(runtime.GOOS, url)

	// #nosec G204 — the URL is assembled from the validated configuration
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	// Not waiting: the handler process owns the browser from here.
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("browser opened but release failed: %w", err)
	}

	return nil
}

// openCommand picks the URL-opener binary per platform
func openCommand(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}
