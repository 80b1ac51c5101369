package render

import (
	"errors"
	"fmt"
)

// ErrYearRequired is returned when a document renders without a footer year.
var ErrYearRequired = errors.New("render: copyright year is required")

// Config carries the rendering knobs. Rendering reads no clock, so Year must
// be set by the caller; html page content is escaped unless AllowPageHTML.
type Config struct {
	// Year printed in the default copyright line.
	Year int
	// AllowPageHTML passes html-format page content through verbatim and lets
	// markdown pages embed raw HTML.
	AllowPageHTML bool
	// MarkdownExtensions selects goldmark extensions by name. Empty enables GFM,
	// linkify and task lists.
	MarkdownExtensions []string
}

// Validate reports a missing footer year.
func (c Config) Validate() error {
	if c.Year <= 0 {
		return fmt.Errorf("%w: got %d", ErrYearRequired, c.Year)
	}
	return nil
}
