package sources

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-sitegen/internal/site"
)

var formatsByExt = map[string]site.PageFormat{
	".md":       site.PageFormatMarkdown,
	".markdown": site.PageFormatMarkdown,
	".html":     site.PageFormatHTML,
	".htm":      site.PageFormatHTML,
	".txt":      site.PageFormatText,
}

type pageFrontMatter struct {
	Title  string `yaml:"title"`
	Slug   string `yaml:"slug"`
	Format string `yaml:"format"`
	Order  int    `yaml:"order"`
}

type loadedPage struct {
	page  site.Page
	order int
	file  string
}

// LoadPages reads every markdown, html and text file directly under dir.
// Frontmatter may set title, slug, format and order; the slug defaults to
// the normalized file name. Pages are returned by order, then file name.
func LoadPages(dir string) ([]site.Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("sources: read pages dir: %w", err)
	}

	loaded := make([]loadedPage, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		format, ok := formatsByExt[ext]
		if !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		page, order, err := parsePageFile(path, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())), format)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, loadedPage{page: page, order: order, file: entry.Name()})
	}

	sort.SliceStable(loaded, func(i, j int) bool {
		if loaded[i].order != loaded[j].order {
			return loaded[i].order < loaded[j].order
		}
		return loaded[i].file < loaded[j].file
	})

	pages := make([]site.Page, 0, len(loaded))
	for _, item := range loaded {
		pages = append(pages, item.page)
	}
	return pages, nil
}

func parsePageFile(path, stem string, format site.PageFormat) (site.Page, int, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return site.Page{}, 0, fmt.Errorf("sources: read page %s: %w", path, err)
	}

	var meta pageFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return site.Page{}, 0, fmt.Errorf("sources: parse frontmatter %s: %w", path, err)
	}

	candidate := strings.TrimSpace(meta.Slug)
	if candidate == "" {
		candidate = stem
	}
	pageSlug, err := slug.Normalize(candidate)
	if err != nil || pageSlug == "" {
		return site.Page{}, 0, fmt.Errorf("sources: page %s: invalid slug %q", path, candidate)
	}

	if meta.Format != "" {
		format = site.PageFormat(strings.ToLower(strings.TrimSpace(meta.Format)))
	}

	return site.Page{
		Slug:    pageSlug,
		Title:   strings.TrimSpace(meta.Title),
		Content: strings.TrimSpace(string(body)),
		Format:  format,
	}, meta.Order, nil
}
