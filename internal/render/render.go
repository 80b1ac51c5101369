package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/internal/theming"
)

// Bundle-relative file names shared by every site.
const (
	IndexFile      = "index.html"
	StylesheetFile = "styles.css"
	ScriptFile     = "script.js"
)

// Document is one rendered file of a bundle.
type Document struct {
	Path        string
	ContentType string
	Kind        string
	Body        string
}

// RenderHome renders index.html for agg. A nil aggregate or company renders
// with every default. cfg.Year must be set.
func RenderHome(agg *site.WebsiteAggregate, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	agg = orEmpty(agg)
	var b strings.Builder
	if err := documents.ExecuteTemplate(&b, homeTemplate, homeViewFor(agg, cfg)); err != nil {
		return "", fmt.Errorf("render home: %w", err)
	}
	return b.String(), nil
}

// RenderPage renders the sub-page document for page.
func RenderPage(agg *site.WebsiteAggregate, page site.Page, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	agg = orEmpty(agg)
	body, err := pageBody(page, cfg)
	if err != nil {
		return "", fmt.Errorf("render page %q: %w", page.Slug, err)
	}

	layout := layoutFor(agg, cfg, IndexFile)
	heading := pageHeading(page)
	layout.Title = heading + " - " + layout.Title

	var b strings.Builder
	if err := documents.ExecuteTemplate(&b, pageTemplate, pageView{layoutView: layout, Heading: heading, Body: body}); err != nil {
		return "", fmt.Errorf("render page %q: %w", page.Slug, err)
	}
	return b.String(), nil
}

// RenderStylesheet renders styles.css from resolved tokens.
func RenderStylesheet(tokens theming.Tokens) (string, error) {
	var b strings.Builder
	if err := stylesheet.Execute(&b, tokens); err != nil {
		return "", fmt.Errorf("render stylesheet: %w", err)
	}
	return b.String(), nil
}

// RenderScript renders script.js. Only the primary color is substituted.
func RenderScript(tokens theming.Tokens) (string, error) {
	var b strings.Builder
	if err := script.Execute(&b, tokens); err != nil {
		return "", fmt.Errorf("render script: %w", err)
	}
	return b.String(), nil
}

// RenderAll renders every document implied by agg in write order: index,
// one file per page, stylesheet, script.
func RenderAll(agg *site.WebsiteAggregate, cfg Config) ([]Document, error) {
	agg = orEmpty(agg)
	docs := make([]Document, 0, len(agg.Pages)+3)

	home, err := RenderHome(agg, cfg)
	if err != nil {
		return nil, err
	}
	docs = append(docs, Document{Path: IndexFile, ContentType: "text/html; charset=utf-8", Kind: "page", Body: home})

	for _, page := range agg.Pages {
		out, err := RenderPage(agg, page, cfg)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Path: page.FileName(), ContentType: "text/html; charset=utf-8", Kind: "page", Body: out})
	}

	tokens := theming.Resolve(agg.Theme)
	css, err := RenderStylesheet(tokens)
	if err != nil {
		return nil, err
	}
	docs = append(docs, Document{Path: StylesheetFile, ContentType: "text/css; charset=utf-8", Kind: "asset", Body: css})

	js, err := RenderScript(tokens)
	if err != nil {
		return nil, err
	}
	docs = append(docs, Document{Path: ScriptFile, ContentType: "text/javascript; charset=utf-8", Kind: "asset", Body: js})

	return docs, nil
}

func orEmpty(agg *site.WebsiteAggregate) *site.WebsiteAggregate {
	if agg == nil {
		return &site.WebsiteAggregate{}
	}
	return agg
}
