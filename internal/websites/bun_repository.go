package websites

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitegen/internal/site"
)

const websiteNamespace = "website"

// BunOption configures a BunRepository.
type BunOption func(*BunRepository)

// WithCache enables read-through caching of website lookups.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) BunOption {
	return func(r *BunRepository) {
		if service != nil && serializer != nil {
			r.cacheService = service
			r.keySerializer = serializer
		}
	}
}

// WithNow overrides the clock used for created/updated timestamps.
func WithNow(now func() time.Time) BunOption {
	return func(r *BunRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// BunRepository stores aggregates across the websites, companies,
// color_themes, content_sections, products and pages tables.
type BunRepository struct {
	db            *bun.DB
	websites      repository.Repository[*Website]
	companies     repository.Repository[*CompanyRecord]
	themes        repository.Repository[*ColorTheme]
	sections      repository.Repository[*ContentSectionRecord]
	products      repository.Repository[*ProductRecord]
	pages         repository.Repository[*PageRecord]
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	cachePrefix   string
	now           func() time.Time
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository wires the table repositories over db.
func NewBunRepository(db *bun.DB, opts ...BunOption) *BunRepository {
	r := &BunRepository{db: db, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	// Child rows are filtered by closures, which the cache keys by code
	// pointer alone, so they are always read from the database.
	r.websites = wrapWithCache(NewWebsiteRepository(db), r.cacheService, r.keySerializer)
	r.companies = NewCompanyRepository(db)
	r.themes = NewColorThemeRepository(db)
	r.sections = NewContentSectionRepository(db)
	r.products = NewProductRepository(db)
	r.pages = NewPageRepository(db)
	if r.cacheService != nil {
		r.cachePrefix = cachePrefix(websiteNamespace)
	}
	return r
}

func (r *BunRepository) GetAggregate(ctx context.Context, id string) (*site.WebsiteAggregate, error) {
	website, err := r.websites.GetByIdentifier(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, "website", id)
	}

	rows := records{website: website}
	byWebsite := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.website_id = ?", website.ID)
	})
	byPosition := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.website_id = ?", website.ID).
			OrderExpr("?TableAlias.position ASC")
	})

	companies, _, err := r.companies.List(ctx, byWebsite, repository.SelectPaginate(1, 0))
	if err != nil {
		return nil, fmt.Errorf("website %s: list companies: %w", id, err)
	}
	if len(companies) > 0 {
		rows.company = companies[0]
	}

	themes, _, err := r.themes.List(ctx, byWebsite, repository.SelectPaginate(1, 0))
	if err != nil {
		return nil, fmt.Errorf("website %s: list color themes: %w", id, err)
	}
	if len(themes) > 0 {
		rows.theme = themes[0]
	}

	if rows.sections, _, err = r.sections.List(ctx, byPosition); err != nil {
		return nil, fmt.Errorf("website %s: list content sections: %w", id, err)
	}
	if rows.products, _, err = r.products.List(ctx, byPosition); err != nil {
		return nil, fmt.Errorf("website %s: list products: %w", id, err)
	}
	if rows.pages, _, err = r.pages.List(ctx, byPosition); err != nil {
		return nil, fmt.Errorf("website %s: list pages: %w", id, err)
	}

	return rows.aggregate(), nil
}

// SaveAggregate replaces every row of the aggregate in one transaction.
func (r *BunRepository) SaveAggregate(ctx context.Context, agg *site.WebsiteAggregate) error {
	if err := site.ValidateSiteID(agg.GetID()); err != nil {
		return err
	}
	now := r.now().UTC()
	rows := toRecords(agg, now)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var existing Website
		err := tx.NewSelect().Model(&existing).Where("?TableAlias.id = ?", rows.website.ID).Limit(1).Scan(ctx)
		if err == nil && !existing.CreatedAt.IsZero() {
			rows.website.CreatedAt = existing.CreatedAt
		}

		if err := deleteWebsiteRows(ctx, tx, rows.website.ID); err != nil {
			return err
		}

		if _, err := tx.NewInsert().Model(rows.website).Exec(ctx); err != nil {
			return fmt.Errorf("insert website: %w", err)
		}
		if rows.company != nil {
			if _, err := tx.NewInsert().Model(rows.company).Exec(ctx); err != nil {
				return fmt.Errorf("insert company: %w", err)
			}
		}
		if rows.theme != nil {
			if _, err := tx.NewInsert().Model(rows.theme).Exec(ctx); err != nil {
				return fmt.Errorf("insert color theme: %w", err)
			}
		}
		if len(rows.sections) > 0 {
			if _, err := tx.NewInsert().Model(&rows.sections).Exec(ctx); err != nil {
				return fmt.Errorf("insert content sections: %w", err)
			}
		}
		if len(rows.products) > 0 {
			if _, err := tx.NewInsert().Model(&rows.products).Exec(ctx); err != nil {
				return fmt.Errorf("insert products: %w", err)
			}
		}
		if len(rows.pages) > 0 {
			if _, err := tx.NewInsert().Model(&rows.pages).Exec(ctx); err != nil {
				return fmt.Errorf("insert pages: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save website %s: %w", agg.ID, err)
	}
	return r.InvalidateCache(ctx)
}

func (r *BunRepository) DeleteAggregate(ctx context.Context, id string) error {
	website, err := r.websites.GetByIdentifier(ctx, id)
	if err != nil {
		return mapRepositoryError(err, "website", id)
	}
	if err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return deleteWebsiteRows(ctx, tx, website.ID)
	}); err != nil {
		return fmt.Errorf("delete website %s: %w", id, err)
	}
	return r.InvalidateCache(ctx)
}

// ListIDs returns every stored site handle in lexical order.
func (r *BunRepository) ListIDs(ctx context.Context) ([]string, error) {
	records, _, err := r.websites.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.handle ASC")
		}),
	)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.Handle)
	}
	return ids, nil
}

// InvalidateCache drops every cached website lookup.
func (r *BunRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func deleteWebsiteRows(ctx context.Context, tx bun.Tx, id uuid.UUID) error {
	children := []struct {
		name  string
		model any
	}{
		{"pages", (*PageRecord)(nil)},
		{"products", (*ProductRecord)(nil)},
		{"content sections", (*ContentSectionRecord)(nil)},
		{"color themes", (*ColorTheme)(nil)},
		{"companies", (*CompanyRecord)(nil)},
	}
	for _, child := range children {
		if _, err := tx.NewDelete().
			Model(child.model).
			Where("?TableAlias.website_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete %s: %w", child.name, err)
		}
	}
	if _, err := tx.NewDelete().
		Model((*Website)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete website: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

func cachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
}
