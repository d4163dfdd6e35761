package toolchain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mattn/go-zglob"
)

// ProxyScriptName is the file name of the WebSocket-to-TCP proxy script.
const ProxyScriptName = "websockify.js"

// ErrProxyScriptNotFound is returned when no websockify.js exists under the root.
var ErrProxyScriptNotFound = errors.New("proxy script not found")

// FindProxyScript searches root recursively for a file named exactly
// websockify.js and returns its absolute path. With several candidates the
// lexically first is used so the choice is stable.
func FindProxyScript(root string) (string, error) {
	matches, err := zglob.Glob(filepath.Join(root, "**", ProxyScriptName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w under %s", ErrProxyScriptNotFound, root)
		}
		return "", fmt.Errorf("failed to search %s for %s: %w", root, ProxyScriptName, err)
	}

	var candidates []string
	for _, m := range matches {
		if filepath.Base(m) == ProxyScriptName {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w under %s", ErrProxyScriptNotFound, root)
	}
	sort.Strings(candidates)
	return filepath.Abs(candidates[0])
}
