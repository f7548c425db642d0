// Package browser opens the dashboard in the default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// startFunc launches a command without waiting for it. Tests replace it.
var startFunc = func(name string, args ...string) error {
	return exec.Command(name, args...).Start() // #nosec G204 -- target validated by Validate
}

// Validate checks that target is an absolute http or https URL that is safe
// to hand to the system browser.
func Validate(target string) error {
	if strings.ContainsAny(target, "\x00\r\n\t ") {
		return fmt.Errorf("invalid URL: contains whitespace or control characters")
	}
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %q (only http and https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}
	return nil
}

// Command returns the launcher for goos and its arguments.
func Command(goos, target string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "darwin":
		return "open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Open opens target in the default browser.
func Open(target string) error {
	if err := Validate(target); err != nil {
		return err
	}
	name, args, err := Command(runtime.GOOS, target)
	if err != nil {
		return err
	}
	if err := startFunc(name, args...); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
