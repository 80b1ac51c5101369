package storage

import "context"

// Provider executes named operations against an artifact store. Bundle
// writers route directory creation, writes, reads and removals through Exec
// and Query so the same code path serves disk, memory or remote backends.
type Provider interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	Transaction(ctx context.Context, fn func(tx Transaction) error) error
}

// Operation names understood by site storage providers.
const (
	OpEnsureDir = "site.ensure_dir"
	OpWrite     = "site.write"
	OpRead      = "site.read"
	OpStat      = "site.stat"
	OpRemove    = "site.remove"
)

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

type Result interface {
	RowsAffected() (int64, error)
	LastInsertId() (int64, error)
}

type Transaction interface {
	Provider
	Commit() error
	Rollback() error
}
