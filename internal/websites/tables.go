package websites

import (
	"context"
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewWebsiteRepository(db *bun.DB) repository.Repository[*Website] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Website]{
		NewRecord: func() *Website { return &Website{} },
		GetID: func(w *Website) uuid.UUID {
			return w.ID
		},
		SetID: func(w *Website, id uuid.UUID) {
			w.ID = id
		},
		GetIdentifier: func() string {
			return "handle"
		},
		GetIdentifierValue: func(w *Website) string {
			return w.Handle
		},
	})
}

func NewCompanyRepository(db *bun.DB) repository.Repository[*CompanyRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*CompanyRecord]{
		NewRecord: func() *CompanyRecord { return &CompanyRecord{} },
		GetID: func(c *CompanyRecord) uuid.UUID {
			return c.ID
		},
		SetID: func(c *CompanyRecord, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "website_id"
		},
		GetIdentifierValue: func(c *CompanyRecord) string {
			return c.WebsiteID.String()
		},
	})
}

func NewColorThemeRepository(db *bun.DB) repository.Repository[*ColorTheme] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ColorTheme]{
		NewRecord: func() *ColorTheme { return &ColorTheme{} },
		GetID: func(t *ColorTheme) uuid.UUID {
			return t.ID
		},
		SetID: func(t *ColorTheme, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "website_id"
		},
		GetIdentifierValue: func(t *ColorTheme) string {
			return t.WebsiteID.String()
		},
	})
}

func NewContentSectionRepository(db *bun.DB) repository.Repository[*ContentSectionRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ContentSectionRecord]{
		NewRecord: func() *ContentSectionRecord { return &ContentSectionRecord{} },
		GetID: func(s *ContentSectionRecord) uuid.UUID {
			return s.ID
		},
		SetID: func(s *ContentSectionRecord, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(s *ContentSectionRecord) string {
			return s.ID.String()
		},
	})
}

func NewProductRepository(db *bun.DB) repository.Repository[*ProductRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ProductRecord]{
		NewRecord: func() *ProductRecord { return &ProductRecord{} },
		GetID: func(p *ProductRecord) uuid.UUID {
			return p.ID
		},
		SetID: func(p *ProductRecord, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "sku"
		},
		GetIdentifierValue: func(p *ProductRecord) string {
			return p.SKU
		},
	})
}

func NewPageRepository(db *bun.DB) repository.Repository[*PageRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PageRecord]{
		NewRecord: func() *PageRecord { return &PageRecord{} },
		GetID: func(p *PageRecord) uuid.UUID {
			return p.ID
		},
		SetID: func(p *PageRecord, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *PageRecord) string {
			return p.Slug
		},
	})
}

// CreateSchema creates every website table when missing.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	models := []any{
		(*Website)(nil),
		(*CompanyRecord)(nil),
		(*ColorTheme)(nil),
		(*ContentSectionRecord)(nil),
		(*ProductRecord)(nil),
		(*PageRecord)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}
