// Package web holds the embedded page templates and static assets.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/guttosm/coinpulse/internal/dashboard"
	"github.com/guttosm/coinpulse/internal/sparkline"
	"github.com/guttosm/coinpulse/internal/viewctl"
)

// Template names for gin's c.HTML.
const (
	DashboardTemplate = "dashboard"
	DetailTemplate    = "detail"
	liveTemplate      = "dashboard_live"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page carries the fields every page uses.
type Page struct {
	Lang  string
	Title string
}

// DashboardPage is the data of the dashboard template.
type DashboardPage struct {
	Page
	View      dashboard.View
	UpdatedAt string
}

// DetailPage is the data of the detail template.
type DetailPage struct {
	Page
	State viewctl.State
}

var funcs = template.FuncMap{
	"json": func(v any) (template.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(b), nil
	},
	"sparkline": func(s sparkline.Sparkline) template.HTML {
		if len(s.Points) == 0 {
			return ""
		}
		// Built only from numbers and a fixed color table.
		return template.HTML(s.SVG())
	},
}

// Pages is the parsed template set.
type Pages struct {
	tmpl *template.Template
}

// Load parses the embedded templates.
func Load() (*Pages, error) {
	t, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Pages{tmpl: t}, nil
}

// Template returns the set for gin's SetHTMLTemplate.
func (p *Pages) Template() *template.Template { return p.tmpl }

// LiveFragment renders the overview and table part of the dashboard, the
// piece that is replaced in place on every update.
func (p *Pages) LiveFragment(v dashboard.View) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, liveTemplate, v); err != nil {
		return "", fmt.Errorf("render live fragment: %w", err)
	}
	return buf.String(), nil
}

// Static returns the stylesheet and chart script.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
