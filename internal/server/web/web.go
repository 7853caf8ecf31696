// Package web embeds the SnipBoard board page and its static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/yndnr/snipboard/internal/core/domain"
)

//go:embed templates/*.html static
var content embed.FS

// BoardView is the data rendered by the board template.
type BoardView struct {
	Documents []*domain.Document
	ActiveID  domain.DocumentID
	Theme     domain.ThemePreference
	Accept    []string
}

// Dark reports whether the page should start in dark mode. Unset defers
// to the browser's prefers-color-scheme.
func (v BoardView) Dark() bool {
	return v.Theme == domain.ThemeEnabled
}

// BoardTemplate parses the embedded board page.
func BoardTemplate() (*template.Template, error) {
	return template.New("board.html").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(content, "templates/board.html")
}

// Static serves the embedded assets. Mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
