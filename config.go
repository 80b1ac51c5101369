package sitegen

import "github.com/goliatone/go-sitegen/internal/runtimeconfig"

var (
	ErrOutputRootRequired     = runtimeconfig.ErrOutputRootRequired
	ErrArchiveLevelInvalid    = runtimeconfig.ErrArchiveLevelInvalid
	ErrStorageDriverUnknown   = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired     = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid        = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

const (
	StorageDriverMemory   = runtimeconfig.StorageDriverMemory
	StorageDriverSQLite   = runtimeconfig.StorageDriverSQLite
	StorageDriverPostgres = runtimeconfig.StorageDriverPostgres
)

type (
	Config        = runtimeconfig.Config
	OutputConfig  = runtimeconfig.OutputConfig
	ArchiveConfig = runtimeconfig.ArchiveConfig
	RenderConfig  = runtimeconfig.RenderConfig
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	HTTPConfig    = runtimeconfig.HTTPConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
