package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

var ErrOutputRootRequired = errors.New("sitegen config: output root directory is required")
var ErrArchiveLevelInvalid = errors.New("sitegen config: archive compression level must be between 0 and 9")

// ErrStorageDriverUnknown is returned for drivers other than memory, sqlite3 or postgres.
var ErrStorageDriverUnknown = errors.New("sitegen config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("sitegen config: storage dsn is required for database drivers")
var ErrCacheTTLInvalid = errors.New("sitegen config: cache ttl must be positive when cache is enabled")
var ErrLoggingProviderUnknown = errors.New("sitegen config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sitegen config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitegen config: logging format is invalid")

const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite3"
	StorageDriverPostgres = "postgres"
)

// Config aggregates the knobs of the site generator. Fields use simple types
// so host applications can populate them from flags, env or files.
type Config struct {
	Output  OutputConfig
	Archive ArchiveConfig
	Render  RenderConfig
	Storage StorageConfig
	Cache   CacheConfig
	Logging LoggingConfig
	HTTP    HTTPConfig
}

// OutputConfig locates generated bundles. Each site is written to Root/<site id>.
type OutputConfig struct {
	Root     string
	DirPerm  os.FileMode
	FilePerm os.FileMode
}

// ArchiveConfig controls download packaging.
type ArchiveConfig struct {
	Level int
}

// RenderConfig tunes page rendering.
type RenderConfig struct {
	// Year pins the footer copyright year. Zero uses the injected clock.
	Year int
	// AllowPageHTML passes html-format page content through unescaped.
	AllowPageHTML bool
	// MarkdownExtensions lists goldmark extensions for markdown pages; empty uses GFM defaults.
	MarkdownExtensions []string
}

// StorageConfig selects the aggregate repository backend.
type StorageConfig struct {
	Driver string
	DSN    string
}

// CacheConfig captures read-through cache toggles for database repositories.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// HTTPConfig configures the download and preview endpoints.
type HTTPConfig struct {
	Addr     string
	BasePath string
}

// DefaultConfig returns defaults suitable for local generation.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Root:     "generated-websites",
			DirPerm:  0o755,
			FilePerm: 0o644,
		},
		Archive: ArchiveConfig{
			Level: 9,
		},
		Render: RenderConfig{
			AllowPageHTML: true,
		},
		Storage: StorageConfig{
			Driver: StorageDriverMemory,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
		HTTP: HTTPConfig{
			Addr:     ":8080",
			BasePath: "/api",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Output.Root) == "" {
		return ErrOutputRootRequired
	}
	if cfg.Archive.Level < 0 || cfg.Archive.Level > 9 {
		return fmt.Errorf("%w: %d", ErrArchiveLevelInvalid, cfg.Archive.Level)
	}

	switch driver := normalize(cfg.Storage.Driver); driver {
	case "", StorageDriverMemory:
	case StorageDriverSQLite, StorageDriverPostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, driver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}

	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}

	if provider := normalize(cfg.Logging.Provider); provider != "" {
		if provider != "gologger" && provider != "noop" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// StorageDriver returns the normalized driver name, defaulting to memory.
func (cfg Config) StorageDriver() string {
	if driver := normalize(cfg.Storage.Driver); driver != "" {
		return driver
	}
	return StorageDriverMemory
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
