package render

import (
	htmltemplate "html/template"
	"strings"

	"github.com/goliatone/go-sitegen/internal/site"
)

// Escape policy:
//   - static copy (catalog services, fallbacks, icons) is template text;
//   - every user-supplied field is a plain string and is escaped by
//     html/template in its context;
//   - page bodies are the only trusted markup and pass through pageBody.

// pageBody turns a page's content into the markup placed in the body region.
func pageBody(page site.Page, cfg Config) (htmltemplate.HTML, error) {
	if strings.TrimSpace(page.Content) == "" {
		return htmltemplate.HTML(fallbackPageBody), nil
	}

	switch page.Format {
	case site.PageFormatMarkdown:
		out, err := renderMarkdown(page.Content, cfg.AllowPageHTML, cfg.MarkdownExtensions)
		if err != nil {
			return "", err
		}
		return htmltemplate.HTML(out), nil
	case site.PageFormatText:
		return textParagraphs(page.Content), nil
	default:
		if cfg.AllowPageHTML {
			return htmltemplate.HTML(page.Content), nil
		}
		return textParagraphs(page.Content), nil
	}
}

// textParagraphs escapes plain text and wraps blank-line separated blocks in <p>.
func textParagraphs(text string) htmltemplate.HTML {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	var b strings.Builder
	for _, block := range strings.Split(normalized, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(htmltemplate.HTMLEscapeString(block), "\n", "<br>"))
		b.WriteString("</p>")
	}
	return htmltemplate.HTML(b.String())
}
