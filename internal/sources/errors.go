package sources

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrInvalidDocument wraps decode and schema failures of a site document.
	ErrInvalidDocument = errors.New("sources: invalid site document")
	// ErrUnsupportedFormat is returned for document extensions other than json, yaml and yml.
	ErrUnsupportedFormat = errors.New("sources: unsupported document format")
)

const invalidDocumentCode = "SITE_SOURCE_INVALID"

// Issue is one schema violation, located by JSON pointer.
type Issue struct {
	Location string
	Message  string
}

// DocumentError lists the schema violations of a document.
type DocumentError struct {
	Name   string
	Issues []Issue
}

func (e *DocumentError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s", e.Name, strings.Join(parts, "; "))
}

func (e *DocumentError) Unwrap() error {
	return ErrInvalidDocument
}

func invalidDocument(name string, err error) error {
	var docErr *DocumentError
	if !errors.As(err, &docErr) {
		err = fmt.Errorf("%w: %s: %w", ErrInvalidDocument, name, err)
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "site document is invalid").
		WithTextCode(invalidDocumentCode)
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	if err == nil {
		return nil
	}
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
