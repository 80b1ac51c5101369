package sitegen

import (
	"context"
	"io"
	"net/http"

	"github.com/goliatone/go-sitegen/internal/archive"
	"github.com/goliatone/go-sitegen/internal/bundle"
	sitescmd "github.com/goliatone/go-sitegen/internal/commands/sites"
	"github.com/goliatone/go-sitegen/internal/di"
	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/internal/sources"
	"github.com/goliatone/go-sitegen/internal/websites"
)

// WebsiteAggregate exports the generator input model.
type WebsiteAggregate = site.WebsiteAggregate

type (
	Company        = site.Company
	Theme          = site.Theme
	ContentSection = site.ContentSection
	SectionType    = site.SectionType
	Product        = site.Product
	Page           = site.Page
	PageFormat     = site.PageFormat
)

const (
	SectionHero     = site.SectionHero
	SectionAbout    = site.SectionAbout
	SectionServices = site.SectionServices
	SectionContact  = site.SectionContact
	SectionFooter   = site.SectionFooter

	PageFormatHTML     = site.PageFormatHTML
	PageFormatMarkdown = site.PageFormatMarkdown
	PageFormatText     = site.PageFormatText
)

// BuildResult exports the manifest returned by a generation.
type BuildResult = bundle.Result

// BuildFile exports one manifest entry.
type BuildFile = bundle.FileRecord

// Repository exports the aggregate persistence contract.
type Repository = websites.Repository

// SourceOptions locates a site document and its optional page directory.
type SourceOptions = sources.Options

var (
	ErrBundleNotFound   = archive.ErrBundleNotFound
	ErrSiteNotFound     = websites.ErrSiteNotFound
	ErrGenerationFailed = bundle.ErrGenerationFailed
	ErrInvalidAggregate = site.ErrInvalidAggregate
	ErrInvalidDocument  = sources.ErrInvalidDocument
)

// Option customises the container built by New.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithStorage        = di.WithStorage
	WithCache          = di.WithCache
	WithBunDB          = di.WithBunDB
	WithRepository     = di.WithRepository
	WithNow            = di.WithNow
)

// Module represents the top level site generator façade.
type Module struct {
	container *di.Container
}

// New constructs a generator module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Repository returns the aggregate repository.
func (m *Module) Repository() Repository {
	return m.container.Repository()
}

// Import loads a site document, stores the aggregate and returns it.
func (m *Module) Import(ctx context.Context, opts SourceOptions) (*WebsiteAggregate, error) {
	agg, err := m.container.SourceLoader().Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := m.container.Repository().SaveAggregate(ctx, agg); err != nil {
		return nil, err
	}
	return agg, nil
}

// Generate writes the bundle of a stored site and returns its manifest.
func (m *Module) Generate(ctx context.Context, siteID string) (*BuildResult, error) {
	return m.generate(ctx, siteID, false)
}

// DryRun renders a stored site without touching the output directory.
func (m *Module) DryRun(ctx context.Context, siteID string) (*BuildResult, error) {
	return m.generate(ctx, siteID, true)
}

func (m *Module) generate(ctx context.Context, siteID string, dryRun bool) (*BuildResult, error) {
	var result *BuildResult
	err := m.container.GenerateHandler().Execute(ctx, sitescmd.GenerateSiteCommand{
		SiteID: siteID,
		DryRun: dryRun,
		ResultCallback: func(r *bundle.Result) {
			result = r
		},
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Pack streams the zip archive of a generated bundle to w.
func (m *Module) Pack(ctx context.Context, siteID string, w io.Writer) error {
	return m.container.PackHandler().Execute(ctx, sitescmd.PackSiteCommand{SiteID: siteID, Output: w})
}

// DownloadName returns the archive file name for a stored site.
func (m *Module) DownloadName(ctx context.Context, siteID string) string {
	agg, err := m.container.Repository().GetAggregate(ctx, siteID)
	if err != nil || agg == nil || agg.Company == nil {
		return archive.DownloadName("")
	}
	return archive.DownloadName(agg.Company.Name)
}

// Clean removes the bundle directory of a site. Generation never prunes on its own.
func (m *Module) Clean(ctx context.Context, siteID string) error {
	return m.container.CleanHandler().Execute(ctx, sitescmd.CleanSiteCommand{SiteID: siteID})
}

// Handler returns an http.Handler serving the generate, download and preview endpoints.
func (m *Module) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := m.container.SiteAPI().Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// Close releases resources opened by New.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
