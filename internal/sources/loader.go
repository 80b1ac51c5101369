package sources

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sitegen/internal/identity"
	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

//go:embed schema/website.schema.json
var websiteSchema []byte

const schemaResource = "website.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func documentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaResource, bytes.NewReader(websiteSchema)); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = compiler.Compile(schemaResource)
	})
	return compiled, compileErr
}

// Options selects the inputs of Load.
type Options struct {
	// Input is a JSON or YAML site document.
	Input string
	// PagesDir optionally holds one file per sub-page.
	PagesDir string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for load events.
func WithLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader builds website aggregates from files on disk.
type Loader struct {
	logger interfaces.Logger
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{logger: logging.SourcesLogger(nil)}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load reads the site document and merges pages from PagesDir. Directory
// pages replace document pages sharing a slug. A document without an id gets
// one derived from its path.
func (l *Loader) Load(ctx context.Context, opts Options) (*site.WebsiteAggregate, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Input) == "" {
		return nil, errors.New("sources: input document is required")
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("sources: read %s: %w", opts.Input, err)
	}
	agg, err := Decode(opts.Input, data)
	if err != nil {
		return nil, err
	}
	if agg.ID == "" {
		agg.ID = identity.SiteUUID(filepath.Clean(opts.Input)).String()
	}

	if opts.PagesDir != "" {
		pages, err := LoadPages(opts.PagesDir)
		if err != nil {
			return nil, err
		}
		agg.Pages = mergePages(agg.Pages, pages)
	}

	if err := site.Validate(agg); err != nil {
		return nil, err
	}

	logging.WithSite(l.logger, agg.ID).WithContext(ctx).Info("sources.load.success",
		"input", opts.Input,
		"pages", len(agg.Pages),
		"products", len(agg.Products),
	)
	return agg, nil
}

// Decode parses a JSON or YAML document, chosen by the extension of name,
// and validates it against the site document schema.
func Decode(name string, data []byte) (*site.WebsiteAggregate, error) {
	var raw any
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, invalidDocument(name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, invalidDocument(name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	// Normalise YAML scalars to their JSON forms before validating.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, invalidDocument(name, err)
	}
	var instance any
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	if err := decoder.Decode(&instance); err != nil {
		return nil, invalidDocument(name, err)
	}

	schema, err := documentSchema()
	if err != nil {
		return nil, fmt.Errorf("sources: compile schema: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return nil, invalidDocument(name, &DocumentError{Name: name, Issues: collectIssues(validationErr)})
		}
		return nil, invalidDocument(name, err)
	}

	var agg site.WebsiteAggregate
	if err := json.Unmarshal(encoded, &agg); err != nil {
		return nil, invalidDocument(name, err)
	}
	for i := range agg.Content {
		agg.Content[i].Type = agg.Content[i].Type.Normalize()
	}
	return &agg, nil
}

func mergePages(base, overrides []site.Page) []site.Page {
	if len(overrides) == 0 {
		return base
	}
	index := make(map[string]int, len(base))
	out := append([]site.Page(nil), base...)
	for i, page := range out {
		index[page.Slug] = i
	}
	for _, page := range overrides {
		if i, ok := index[page.Slug]; ok {
			out[i] = page
			continue
		}
		index[page.Slug] = len(out)
		out = append(out, page)
	}
	return out
}
