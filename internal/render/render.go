// Package render builds the HTML pages served by the handlers.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/styles.css
var stylesheet []byte

// Stylesheet returns the site CSS.
func Stylesheet() []byte { return stylesheet }

const layoutFile = "templates/layout.html"

// Renderer implements gin's HTMLRender. Each page is parsed on top of its own
// clone of the layout so the pages' "content" blocks do not collide.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page in the embedded template directory.
func New() (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		clone, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		page, err := clone.ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[strings.TrimSuffix(path.Base(file), ".html")] = page
	}
	return r, nil
}

// Instance resolves a page by name (file name without extension).
func (r *Renderer) Instance(name string, data any) render.Render {
	page, ok := r.pages[name]
	if !ok {
		panic(fmt.Sprintf("render: unknown page %q", name))
	}
	return render.HTML{Template: page, Name: "layout", Data: data}
}

// Has reports whether a page with that name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

var funcs = template.FuncMap{
	"cell": func(v any) string {
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	},
}
