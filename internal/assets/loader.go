package assets

// AssetLoader defines the contract for loading the web interface assets.
// Implementations may load from embedded assets, filesystem, etc.
type AssetLoader interface {
	// LoadPage loads an HTML page template by name (without .html extension).
	// Returns ErrPageNotFound if the page doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadPage(name string) (string, error)

	// LoadStatic loads a static file by file name (with extension).
	// Returns ErrStaticNotFound if the file doesn't exist.
	// Returns ErrInvalidAssetName if the name is unsafe or of an unsupported type.
	LoadStatic(name string) ([]byte, error)
}
