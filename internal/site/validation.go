package site

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"
)

// ErrInvalidAggregate is wrapped by every validation failure returned from Validate.
var ErrInvalidAggregate = errors.New("site: invalid website aggregate")

const invalidAggregateCode = "SITE_AGGREGATE_INVALID"

var siteIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// reservedSlugs would overwrite files the bundle already owns.
var reservedSlugs = map[string]struct{}{
	"index": {},
}

// ValidateSiteID checks that id is safe to use as a single directory name.
func ValidateSiteID(id string) error {
	if strings.TrimSpace(id) == "" {
		return validation.NewError("site.id.required", "site id is required")
	}
	if !siteIDPattern.MatchString(id) {
		return validation.NewError("site.id.invalid", "site id must contain only letters, digits, '-' or '_'")
	}
	return nil
}

// Validate checks the structural invariants the generator relies on. Absent
// optional data is never an error.
func Validate(agg *WebsiteAggregate) error {
	if agg == nil {
		return wrapInvalid(validation.Errors{"aggregate": validation.NewError("site.required", "aggregate is required")})
	}

	errs := validation.Errors{}
	if err := ValidateSiteID(agg.ID); err != nil {
		errs["id"] = err
	}

	for i, section := range agg.Content {
		if !section.Type.Normalize().Valid() {
			errs[fmt.Sprintf("content[%d].type", i)] = validation.NewError("site.section.type_invalid", fmt.Sprintf("unsupported section type %q", section.Type))
		}
	}

	for i, product := range agg.Products {
		if math.IsNaN(product.Price) || math.IsInf(product.Price, 0) || product.Price < 0 {
			errs[fmt.Sprintf("products[%d].price", i)] = validation.NewError("site.product.price_invalid", "price must be a finite non-negative number")
		}
	}

	seen := map[string]int{}
	for i, page := range agg.Pages {
		key := fmt.Sprintf("pages[%d].slug", i)
		switch {
		case !slug.IsValid(page.Slug):
			errs[key] = validation.NewError("site.page.slug_invalid", fmt.Sprintf("slug %q is not url-safe", page.Slug))
		case isReserved(page.Slug):
			errs[key] = validation.NewError("site.page.slug_reserved", fmt.Sprintf("slug %q is reserved", page.Slug))
		default:
			if prev, dup := seen[page.Slug]; dup {
				errs[key] = validation.NewError("site.page.slug_duplicate", fmt.Sprintf("slug %q already used by pages[%d]", page.Slug, prev))
			} else {
				seen[page.Slug] = i
			}
		}
		switch page.Format {
		case "", PageFormatHTML, PageFormatMarkdown, PageFormatText:
		default:
			errs[fmt.Sprintf("pages[%d].format", i)] = validation.NewError("site.page.format_invalid", fmt.Sprintf("unsupported page format %q", page.Format))
		}
	}

	if len(errs) > 0 {
		return wrapInvalid(errs)
	}
	return nil
}

func isReserved(value string) bool {
	_, ok := reservedSlugs[strings.ToLower(value)]
	return ok
}

func wrapInvalid(errs validation.Errors) error {
	return goerrors.Wrap(fmt.Errorf("%w: %w", ErrInvalidAggregate, errs), goerrors.CategoryValidation, "website aggregate failed validation").
		WithTextCode(invalidAggregateCode)
}
