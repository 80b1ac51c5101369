package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitegen/internal/archive"
	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/internal/websites"
)

// Text codes attached to errors leaving a site command.
const (
	TextCodeInvalidMessage = "SITEGEN_COMMAND_INVALID"
	TextCodeCanceled       = "SITEGEN_COMMAND_CANCELED"
	TextCodeTimeout        = "SITEGEN_COMMAND_TIMEOUT"
	TextCodeSiteNotFound   = "SITEGEN_SITE_NOT_FOUND"
	TextCodeBundleNotFound = "SITEGEN_BUNDLE_NOT_FOUND"
	TextCodeInvalidSite    = "SITEGEN_SITE_INVALID"
	TextCodeCommandFailed  = "SITEGEN_COMMAND_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "site command rejected").
		WithTextCode(TextCodeInvalidMessage)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "site command timed out").
			WithTextCode(TextCodeTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "site command canceled").
		WithTextCode(TextCodeCanceled)
}

// wrapExecuteError keeps the category of errors already tagged by the site
// packages and classifies bare site sentinels before falling back to a
// command failure.
func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, websites.ErrSiteNotFound):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "website not found").
			WithTextCode(TextCodeSiteNotFound)
	case errors.Is(err, archive.ErrBundleNotFound):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "website files not found").
			WithTextCode(TextCodeBundleNotFound)
	case errors.Is(err, site.ErrInvalidAggregate):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "website aggregate failed validation").
			WithTextCode(TextCodeInvalidSite)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "site command failed").
			WithTextCode(TextCodeCommandFailed)
	}
}
