package sitescmd

import (
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sitegen/internal/bundle"
	"github.com/goliatone/go-sitegen/internal/site"
)

const (
	generateSiteMessageType = "sitegen.sites.generate"
	packSiteMessageType     = "sitegen.sites.pack"
	cleanSiteMessageType    = "sitegen.sites.clean"
)

// ResultCallback receives the bundle result of a generation run.
type ResultCallback func(*bundle.Result)

// GenerateSiteCommand loads the aggregate for SiteID and writes its bundle.
type GenerateSiteCommand struct {
	SiteID         string         `json:"site_id"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (GenerateSiteCommand) Type() string { return generateSiteMessageType }

func (m GenerateSiteCommand) Validate() error {
	return validateSiteID("sitegen.sites.generate", m.SiteID)
}

// PackSiteCommand streams the archive of an existing bundle to Output.
type PackSiteCommand struct {
	SiteID string    `json:"site_id"`
	Output io.Writer `json:"-"`
}

// Type implements command.Message.
func (PackSiteCommand) Type() string { return packSiteMessageType }

func (m PackSiteCommand) Validate() error {
	errs := validation.Errors{}
	if err := validateSiteID("sitegen.sites.pack", m.SiteID); err != nil {
		errs["site_id"] = err
	}
	if m.Output == nil {
		errs["output"] = validation.NewError("sitegen.sites.pack.output_required", "output writer is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CleanSiteCommand removes the bundle directory of SiteID. Generation never
// issues it on its own.
type CleanSiteCommand struct {
	SiteID string `json:"site_id"`
}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

func (m CleanSiteCommand) Validate() error {
	return validateSiteID("sitegen.sites.clean", m.SiteID)
}

func validateSiteID(prefix, id string) error {
	if err := site.ValidateSiteID(id); err != nil {
		return validation.Errors{
			"site_id": validation.NewError(prefix+".site_id_invalid", err.Error()),
		}
	}
	return nil
}
