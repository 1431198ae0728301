// Package assets provides the browser interface served by md2word serve.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in UI)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver lets a deployment replace single files (a branded page or
// stylesheet) while keeping the rest of the built-in interface.
//
// # Directory Structure
//
//	{basePath}/
//	├── pages/
//	│   └── {name}.html          # html/template page (e.g., index.html)
//	└── static/
//	    └── {file}               # .js, .css, .svg, .png, .ico
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
