package handler

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// renderPage executes the page template into memory so a failed render never
// leaves a half-written response
func renderPage(view PageView) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "index.html", view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
