// Package nav moves the user between application routes. The CLI has no
// router of its own, so a route is either printed or opened in the web app.
package nav

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
)

// Navigator sends the user to an application route such as "/login"
type Navigator interface {
	Navigate(route string) error
}

// Printer prints the route it was asked to navigate to
type Printer struct {
	Out io.Writer
}

func (p *Printer) Navigate(route string) error {
	_, err := fmt.Fprintf(p.Out, "→ %s\n", route)
	return err
}

// Browser opens the route of the web application in the default browser
type Browser struct {
	BaseURL string
	Out     io.Writer

	// open is swapped in tests
	open func(url string) error
}

// NewBrowser creates a Browser for the web application at baseURL
func NewBrowser(baseURL string, out io.Writer) *Browser {
	return &Browser{BaseURL: baseURL, Out: out, open: OpenURL}
}

func (b *Browser) Navigate(route string) error {
	target := URL(b.BaseURL, route)
	fmt.Fprintf(b.Out, "Opening %s...\n", target)

	open := b.open
	if open == nil {
		open = OpenURL
	}
	if err := open(target); err != nil {
		return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, target)
	}
	return nil
}

// URL joins a base URL and an application route
func URL(baseURL, route string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(route, "/")
}

// OpenURL opens the URL in the default browser
func OpenURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
