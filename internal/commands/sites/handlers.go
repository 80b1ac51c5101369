package sitescmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitegen/internal/archive"
	"github.com/goliatone/go-sitegen/internal/bundle"
	"github.com/goliatone/go-sitegen/internal/commands"
	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
	"github.com/goliatone/go-sitegen/pkg/storage"
)

// ErrDependencyMissing is returned when a handler was built without a collaborator.
var ErrDependencyMissing = errors.New("sites: handler dependency missing")

// AggregateSource supplies website aggregates by site identifier.
type AggregateSource interface {
	GetAggregate(ctx context.Context, id string) (*site.WebsiteAggregate, error)
}

// BundleWriter persists a rendered bundle.
type BundleWriter interface {
	Write(ctx context.Context, agg *site.WebsiteAggregate) (*bundle.Result, error)
}

// Packager streams the archive of a bundle.
type Packager interface {
	Pack(ctx context.Context, siteID string, w io.Writer) error
}

// GenerateSiteHandler loads an aggregate and writes its bundle.
type GenerateSiteHandler struct {
	inner *commands.Handler[GenerateSiteCommand]
}

// NewGenerateSiteHandler wires the handler to its source and writer. Dry runs
// require a writer built with bundle.WithDryRun; dryRunWriter may be nil.
func NewGenerateSiteHandler(source AggregateSource, writer, dryRunWriter BundleWriter, logger interfaces.Logger, opts ...commands.HandlerOption[GenerateSiteCommand]) *GenerateSiteHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg GenerateSiteCommand) error {
		if source == nil || writer == nil {
			return ErrDependencyMissing
		}
		target := writer
		if msg.DryRun {
			if dryRunWriter == nil {
				return fmt.Errorf("%w: dry run writer", ErrDependencyMissing)
			}
			target = dryRunWriter
		}

		agg, err := source.GetAggregate(ctx, msg.SiteID)
		if err != nil {
			return err
		}
		result, err := target.Write(ctx, agg)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[GenerateSiteCommand]{
		commands.WithLogger[GenerateSiteCommand](baseLogger),
		commands.WithOperation[GenerateSiteCommand]("sites.generate"),
		commands.WithMessageFields(func(msg GenerateSiteCommand) map[string]any {
			fields := map[string]any{"site_id": msg.SiteID}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[GenerateSiteCommand](nil)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &GenerateSiteHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[GenerateSiteCommand].
func (h *GenerateSiteHandler) Execute(ctx context.Context, msg GenerateSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PackSiteHandler streams bundle archives.
type PackSiteHandler struct {
	inner *commands.Handler[PackSiteCommand]
}

func NewPackSiteHandler(packager Packager, logger interfaces.Logger, opts ...commands.HandlerOption[PackSiteCommand]) *PackSiteHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg PackSiteCommand) error {
		if packager == nil {
			return ErrDependencyMissing
		}
		return packager.Pack(ctx, msg.SiteID, msg.Output)
	}

	handlerOpts := []commands.HandlerOption[PackSiteCommand]{
		commands.WithLogger[PackSiteCommand](baseLogger),
		commands.WithOperation[PackSiteCommand]("sites.pack"),
		commands.WithMessageFields(func(msg PackSiteCommand) map[string]any {
			return map[string]any{"site_id": msg.SiteID}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PackSiteHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[PackSiteCommand].
func (h *PackSiteHandler) Execute(ctx context.Context, msg PackSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CleanSiteHandler removes bundle directories through the storage provider.
type CleanSiteHandler struct {
	inner *commands.Handler[CleanSiteCommand]
}

func NewCleanSiteHandler(provider interfaces.StorageProvider, logger interfaces.Logger, opts ...commands.HandlerOption[CleanSiteCommand]) *CleanSiteHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CleanSiteCommand) error {
		if provider == nil {
			return ErrDependencyMissing
		}
		rows, err := provider.Query(ctx, storage.OpStat, msg.SiteID)
		if err != nil {
			return err
		}
		if rows == nil {
			return goerrors.Wrap(fmt.Errorf("%w: %s", archive.ErrBundleNotFound, msg.SiteID), goerrors.CategoryNotFound, "website files not found")
		}
		_ = rows.Close()
		_, err = provider.Exec(ctx, storage.OpRemove, msg.SiteID)
		return err
	}

	handlerOpts := []commands.HandlerOption[CleanSiteCommand]{
		commands.WithLogger[CleanSiteCommand](baseLogger),
		commands.WithOperation[CleanSiteCommand]("sites.clean"),
		commands.WithMessageFields(func(msg CleanSiteCommand) map[string]any {
			return map[string]any{"site_id": msg.SiteID}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CleanSiteHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CleanSiteCommand].
func (h *CleanSiteHandler) Execute(ctx context.Context, msg CleanSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
