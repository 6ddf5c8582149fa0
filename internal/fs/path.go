package fs

import (
	"path/filepath"
	"strings"
)

// IsUnsafePath checks if the given path is unsafe to remove
func IsUnsafePath(path string) (bool, error) {
	// the base of the raw input keeps "." and ".." visible before Clean
	originalBase := filepath.Base(path)
	if originalBase == "." || originalBase == ".." {
		return true, nil
	}

	if filepath.Clean(path) == "/" {
		return true, nil
	}

	if strings.HasPrefix(path, "//") {
		return true, nil
	}

	return false, nil
}

// IsInside reports whether path equals root or lies below it.
// Both are cleaned before the prefix test.
func IsInside(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	if path == root {
		return true
	}
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(path, root)
}
