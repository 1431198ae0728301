package assets

import (
	"embed"
	"fmt"
)

//go:embed web/pages/* web/static/*
var web embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadPage loads an HTML page template from embedded assets by name.
// The name should not include the .html extension.
func (e *EmbeddedLoader) LoadPage(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := web.ReadFile("web/pages/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrPageNotFound, name)
	}

	return string(content), nil
}

// LoadStatic loads a static file from embedded assets.
func (e *EmbeddedLoader) LoadStatic(name string) ([]byte, error) {
	if err := ValidateStaticName(name); err != nil {
		return nil, err
	}

	content, err := web.ReadFile("web/static/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrStaticNotFound, name)
	}

	return content, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
