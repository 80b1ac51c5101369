package websites

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-sitegen/internal/site"
)

// ErrSiteNotFound is matched by every NotFoundError.
var ErrSiteNotFound = errors.New("websites: site not found")

// Repository loads and stores website aggregates keyed by site identifier.
type Repository interface {
	GetAggregate(ctx context.Context, id string) (*site.WebsiteAggregate, error)
	SaveAggregate(ctx context.Context, agg *site.WebsiteAggregate) error
	DeleteAggregate(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
}

// NotFoundError is returned when a requested record does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrSiteNotFound
}
