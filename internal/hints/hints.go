// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"net"
	"strings"

	"github.com/alnah/go-md2word/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForListen returns hints for a server that cannot bind addr.
// addrInUse reports whether the failure was EADDRINUSE.
func ForListen(addr string, addrInUse bool) string {
	var hints []string

	if addrInUse {
		hints = append(hints, "another process is using "+addr+"; pick a free port with --addr or MD2WORD_ADDR")
	}

	// Loopback inside a container is unreachable from the host.
	if host, _, err := net.SplitHostPort(addr); err == nil && IsInContainer() && isLoopback(host) {
		hints = append(hints, "inside a container listen on 0.0.0.0 to be reachable from the host")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2word/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-md2word) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2word") {
			hint += " or create " + p + " (md2word config --init " + p + ")"
			break
		}
	}

	return format(hint)
}

// ForInputTooLarge returns hints for oversized input.
func ForInputTooLarge(limit int) string {
	return format(fmt.Sprintf("the limit is %d bytes; raise render.maxInputBytes or split the document", limit))
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForHighlightStyle returns hints for unknown highlight style errors.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
