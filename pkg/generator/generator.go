// Package generator exposes the in-memory rendering API for hosts that
// manage their own output. Use Render to produce every bundle document for an
// aggregate, or the individual renderers for a single file.
package generator

import (
	"github.com/goliatone/go-sitegen/internal/render"
	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/internal/theming"
)

type (
	Config   = render.Config
	Document = render.Document
	Tokens   = theming.Tokens
)

const (
	IndexFile      = render.IndexFile
	StylesheetFile = render.StylesheetFile
	ScriptFile     = render.ScriptFile
)

// ErrYearRequired is returned by the page renderers when Config.Year is unset.
var ErrYearRequired = render.ErrYearRequired

// Render returns index.html, one document per page, styles.css and script.js.
// Output depends only on agg and cfg; cfg.Year must be set.
func Render(agg *site.WebsiteAggregate, cfg Config) ([]Document, error) {
	return render.RenderAll(agg, cfg)
}

// ResolveTokens merges a theme over the default palette.
func ResolveTokens(theme *site.Theme) Tokens {
	return theming.Resolve(theme)
}

func RenderHome(agg *site.WebsiteAggregate, cfg Config) (string, error) {
	return render.RenderHome(agg, cfg)
}

func RenderPage(agg *site.WebsiteAggregate, page site.Page, cfg Config) (string, error) {
	return render.RenderPage(agg, page, cfg)
}

func RenderStylesheet(tokens Tokens) (string, error) {
	return render.RenderStylesheet(tokens)
}

func RenderScript(tokens Tokens) (string, error) {
	return render.RenderScript(tokens)
}
