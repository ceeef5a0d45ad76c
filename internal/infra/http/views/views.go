package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"bnb/internal/app/dto"
)

//go:embed templates static
var files embed.FS

type PageName string

const (
	baseTemplatePath     = "templates/base.gohtml"
	partialsTemplateGlob = "templates/partials/*.gohtml"
)

const (
	PageListing      PageName = "listing"
	PageCheckout     PageName = "checkout"
	PageConfirmation PageName = "confirmation"
	PageError        PageName = "error"
)

// Data is everything a page template can use.
type Data struct {
	Title        string
	Site         dto.Site
	Cards        []CardView
	Checkout     *CheckoutView
	Confirmation *dto.Confirmation
	Status       int
	Message      string
}

type Manager struct {
	PageCache map[string]*template.Template
}

func NewManager() (*Manager, error) {
	pages, err := fs.Glob(files, "templates/pages/*.gohtml")
	if err != nil {
		return nil, err
	}
	cache := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("base").Funcs(tmplFuncs).ParseFS(files, baseTemplatePath, partialsTemplateGlob, page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		cache[cacheKeyFromPath(page)] = tmpl
	}
	return &Manager{PageCache: cache}, nil
}

func cacheKeyFromPath(filePath string) string {
	return strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (m *Manager) Render(w io.Writer, page PageName, data *Data) error {
	tmpl := m.PageCache[string(page)]
	if tmpl == nil {
		return fmt.Errorf("page template %q was not found in cache", page)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static is the embedded stylesheet directory.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var tmplFuncs = template.FuncMap{
	"cssColor": func(s string) template.CSS {
		// Only plain hex colours reach the stylesheet.
		if isHexColor(s) {
			return template.CSS(s)
		}
		return template.CSS("inherit")
	},
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
