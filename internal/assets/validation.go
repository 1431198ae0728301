package assets

import (
	"fmt"
	"path"
	"strings"
)

// staticExtensions lists the static file types served by the web interface.
var staticExtensions = map[string]bool{
	".css": true,
	".js":  true,
	".svg": true,
	".png": true,
	".ico": true,
}

// ValidateAssetName checks that a page name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidateStaticName checks that a static file name is a plain file name
// with a supported extension.
func ValidateStaticName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\") || strings.HasPrefix(name, ".") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	if !staticExtensions[strings.ToLower(path.Ext(name))] {
		return fmt.Errorf("%w: unsupported file type %q", ErrInvalidAssetName, name)
	}
	return nil
}
