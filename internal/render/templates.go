package render

import (
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	homeTemplate   = "home"
	pageTemplate   = "page"
	styleTemplate  = "styles.css.tmpl"
	scriptTemplate = "script.js.tmpl"
)

// Parsed once at init; templates are immutable afterwards and safe for
// concurrent execution.
var (
	documents  = htmltemplate.Must(htmltemplate.New("site").ParseFS(templateFS, "templates/*.html.tmpl"))
	stylesheet = texttemplate.Must(texttemplate.New(styleTemplate).ParseFS(templateFS, "templates/"+styleTemplate))
	script     = texttemplate.Must(texttemplate.New(scriptTemplate).ParseFS(templateFS, "templates/"+scriptTemplate))
)
