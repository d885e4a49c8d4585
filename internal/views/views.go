// Package views holds the server-rendered HTML templates.
package views

import (
	"embed"
	"html/template"

	"microposts/internal/utils"
)

//go:embed templates/*.tmpl
var files embed.FS

// Load parses every page template. Pages are addressed by file name,
// e.g. "index.tmpl".
func Load() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"formatDate": utils.FormatDate,
	}).ParseFS(files, "templates/*.tmpl")
}
