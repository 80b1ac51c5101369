package bootstrap

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-sitegen"
	"github.com/goliatone/go-sitegen/commands"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// Options captures the tunable configuration for the sitegen CLI.
type Options struct {
	OutputRoot     string
	StorageDriver  string
	StorageDSN     string
	LogLevel       string
	LogFormat      string
	BasePath       string
	Logger         interfaces.LoggerProvider
	Storage        interfaces.StorageProvider
	EnableCommands bool // collect command handlers for CLI execution when true
}

// Resources groups the module runtime and optional command registry used by CLI commands.
type Resources struct {
	Module    *sitegen.Module
	Collector *CommandCollector
}

// Close releases the module.
func (r *Resources) Close() error {
	if r == nil || r.Module == nil {
		return nil
	}
	return r.Module.Close()
}

// CommandCollector records handlers registered by the DI container so CLI commands can
// invoke them directly.
type CommandCollector struct {
	handlers []any
}

// RegisterCommand satisfies commands.CommandRegistry.
func (c *CommandCollector) RegisterCommand(handler any) error {
	c.handlers = append(c.handlers, handler)
	return nil
}

// Handlers returns the collected handlers.
func (c *CommandCollector) Handlers() []any {
	if len(c.handlers) == 0 {
		return nil
	}
	out := make([]any, len(c.handlers))
	copy(out, c.handlers)
	return out
}

// BuildModule initialises a sitegen.Module from CLI options and, when requested,
// collects command handlers for CLI invocation.
func BuildModule(opts Options) (*Resources, error) {
	cfg := sitegen.DefaultConfig()
	if trimmed := strings.TrimSpace(opts.OutputRoot); trimmed != "" {
		cfg.Output.Root = trimmed
	}
	if trimmed := strings.TrimSpace(opts.StorageDriver); trimmed != "" {
		cfg.Storage.Driver = trimmed
	}
	if trimmed := strings.TrimSpace(opts.StorageDSN); trimmed != "" {
		cfg.Storage.DSN = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogFormat); trimmed != "" {
		cfg.Logging.Format = trimmed
	}
	if trimmed := strings.TrimSpace(opts.BasePath); trimmed != "" {
		cfg.HTTP.BasePath = trimmed
	}

	var moduleOpts []sitegen.Option
	if opts.Logger != nil {
		moduleOpts = append(moduleOpts, sitegen.WithLoggerProvider(opts.Logger))
	}
	if opts.Storage != nil {
		moduleOpts = append(moduleOpts, sitegen.WithStorage(opts.Storage))
	}

	module, err := sitegen.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise sitegen module: %w", err)
	}

	var collector *CommandCollector
	if opts.EnableCommands {
		collector = &CommandCollector{
			handlers: make([]any, 0),
		}
		if _, err := commands.RegisterContainerCommands(module.Container(), commands.RegistrationOptions{
			Registry: collector,
		}); err != nil {
			_ = module.Close()
			return nil, fmt.Errorf("register site commands: %w", err)
		}
	}

	return &Resources{
		Module:    module,
		Collector: collector,
	}, nil
}
