package bundle

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// ErrGenerationFailed is wrapped by every storage or render failure raised
// while writing a bundle. Callers map it to a server error.
var ErrGenerationFailed = errors.New("bundle: generation failed")

const generationFailedCode = "SITE_GENERATION_FAILED"

func generationFailed(siteID, stage string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: site %s: %s: %w", ErrGenerationFailed, siteID, stage, err), goerrors.CategoryInternal, "site generation failed").
		WithTextCode(generationFailedCode)
}
