package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitegen/internal/adapters/filesystem"
	"github.com/goliatone/go-sitegen/internal/archive"
	"github.com/goliatone/go-sitegen/internal/bundle"
	"github.com/goliatone/go-sitegen/internal/commands"
	sitescmd "github.com/goliatone/go-sitegen/internal/commands/sites"
	sitehttp "github.com/goliatone/go-sitegen/internal/http"
	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/internal/logging/gologger"
	"github.com/goliatone/go-sitegen/internal/render"
	"github.com/goliatone/go-sitegen/internal/runtimeconfig"
	"github.com/goliatone/go-sitegen/internal/sources"
	"github.com/goliatone/go-sitegen/internal/websites"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	storage        interfaces.StorageProvider
	now            func() time.Time

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	repository websites.Repository
	loader     *sources.Loader

	writer       *bundle.Writer
	dryRunWriter *bundle.Writer
	packager     *archive.Packager

	generateHandler *sitescmd.GenerateSiteHandler
	packHandler     *sitescmd.PackSiteHandler
	cleanHandler    *sitescmd.CleanSiteHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithStorage overrides the filesystem storage provider bundles are written through.
func WithStorage(sp interfaces.StorageProvider) Option {
	return func(c *Container) {
		c.storage = sp
	}
}

// WithCache overrides the default cache service used by the bun repository.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithBunDB supplies an open database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithRepository overrides the aggregate repository selected by the storage config.
func WithRepository(repo websites.Repository) Option {
	return func(c *Container) {
		c.repository = repo
	}
}

// WithNow overrides the clock used for footer years and record timestamps.
func WithNow(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureRepository(context.Background()); err != nil {
		return nil, err
	}
	c.configureServices()

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	// "noop" and empty leave the provider nil; module loggers fall back to no-ops.
	if strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) != "gologger" {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("di: configure logger provider: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.TTL > 0 {
			cfg.TTL = c.Config.Cache.TTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepository(ctx context.Context) error {
	if c.repository != nil {
		return nil
	}

	driver := c.Config.StorageDriver()
	if c.bunDB == nil && driver != runtimeconfig.StorageDriverMemory {
		db, err := websites.OpenDB(ctx, driver, c.Config.Storage.DSN)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	if c.bunDB == nil {
		c.repository = websites.NewMemoryRepository()
		return nil
	}

	if err := websites.CreateSchema(ctx, c.bunDB); err != nil {
		return err
	}

	repoOpts := []websites.BunOption{websites.WithNow(c.now)}
	if c.cacheService != nil {
		repoOpts = append(repoOpts, websites.WithCache(c.cacheService, c.keySerializer))
	}
	c.repository = websites.NewBunRepository(c.bunDB, repoOpts...)
	return nil
}

func (c *Container) configureServices() {
	root := c.Config.Output.Root
	if c.storage == nil {
		c.storage = filesystem.New(root,
			filesystem.WithDirPerm(c.Config.Output.DirPerm),
			filesystem.WithFilePerm(c.Config.Output.FilePerm),
		)
	}

	renderCfg := render.Config{
		Year:               c.Config.Render.Year,
		AllowPageHTML:      c.Config.Render.AllowPageHTML,
		MarkdownExtensions: c.Config.Render.MarkdownExtensions,
	}
	bundleLogger := logging.BundleLogger(c.loggerProvider)
	writerOpts := []bundle.Option{
		bundle.WithLogger(bundleLogger),
		bundle.WithNow(c.now),
		bundle.WithRenderConfig(renderCfg),
	}
	c.writer = bundle.NewWriter(root, c.storage, writerOpts...)
	c.dryRunWriter = bundle.NewWriter(root, c.storage, append(writerOpts, bundle.WithDryRun(true))...)

	c.packager = archive.NewPackager(root,
		archive.WithLevel(c.Config.Archive.Level),
		archive.WithLogger(logging.ArchiveLogger(c.loggerProvider)),
	)

	c.loader = sources.NewLoader(sources.WithLogger(logging.SourcesLogger(c.loggerProvider)))

	sitesLogger := commands.CommandLogger(c.loggerProvider, "sites")
	c.generateHandler = sitescmd.NewGenerateSiteHandler(c.repository, c.writer, c.dryRunWriter, sitesLogger)
	c.packHandler = sitescmd.NewPackSiteHandler(c.packager, sitesLogger)
	c.cleanHandler = sitescmd.NewCleanSiteHandler(c.storage, sitesLogger)
}

// LoggerProvider returns the configured logger provider; nil means logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// StorageProvider returns the provider bundles are written through.
func (c *Container) StorageProvider() interfaces.StorageProvider {
	return c.storage
}

// Repository returns the aggregate repository.
func (c *Container) Repository() websites.Repository {
	return c.repository
}

// SourceLoader returns the document loader used to import aggregates.
func (c *Container) SourceLoader() *sources.Loader {
	return c.loader
}

// BundleWriter returns the writer used for real generations.
func (c *Container) BundleWriter() *bundle.Writer {
	return c.writer
}

// Packager returns the archive packager.
func (c *Container) Packager() *archive.Packager {
	return c.packager
}

func (c *Container) GenerateHandler() *sitescmd.GenerateSiteHandler {
	return c.generateHandler
}

func (c *Container) PackHandler() *sitescmd.PackSiteHandler {
	return c.packHandler
}

func (c *Container) CleanHandler() *sitescmd.CleanSiteHandler {
	return c.cleanHandler
}

// SiteAPI builds the HTTP adapter over the container services.
func (c *Container) SiteAPI() *sitehttp.SiteAPI {
	return sitehttp.NewSiteAPI(
		sitehttp.WithBasePath(c.Config.HTTP.BasePath),
		sitehttp.WithAggregateSource(c.repository),
		sitehttp.WithGenerateHandler(c.generateHandler),
		sitehttp.WithPackager(c.packager),
		sitehttp.WithPreviewRoot(c.Config.Output.Root),
		sitehttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	)
}

// Close releases the database opened from the storage config.
func (c *Container) Close() error {
	if c.ownsDB && c.bunDB != nil {
		return c.bunDB.Close()
	}
	return nil
}
