package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templates, "templates/*.tmpl")
}
