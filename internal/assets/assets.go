package assets

import (
	"bytes"
	"fmt"
	"html/template"
)

// IndexPage is the name of the page served at the application root.
const IndexPage = "index"

// PageData is the data available to page templates.
type PageData struct {
	BasePath  string // mount point, "/" or "/prefix/"
	FormatURL string // endpoint the form posts to
	StaticURL string // prefix of static files, ends with "/"
	Version   string
}

// RenderPage loads a page template and executes it with data.
func RenderPage(loader AssetLoader, name string, data PageData) ([]byte, error) {
	source, err := loader.LoadPage(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.Bytes(), nil
}
