package lifecycle

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSocketPath prefers $XDG_RUNTIME_DIR and falls back to a per-user
// directory under the system temp dir.
func DefaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "webtrace", "lifecycle.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("webtrace-%d", os.Getuid()), "lifecycle.sock")
}
