package common

import (
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens s to at most width terminal cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// IsSafeExternalURL reports whether raw is an absolute http(s) URL.
func IsSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}

// OpenURL opens rawURL in the system browser. Unsafe URLs are ignored.
func OpenURL(rawURL string) tea.Cmd {
	if !IsSafeExternalURL(rawURL) {
		return nil
	}
	return func() tea.Msg {
		opener := "xdg-open"
		switch runtime.GOOS {
		case "darwin":
			opener = "open"
		case "windows":
			_ = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL).Start()
			return nil
		}
		_ = exec.Command(opener, rawURL).Start()
		return nil
	}
}
